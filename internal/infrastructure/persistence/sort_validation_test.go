package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE tz_user;--", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	allowedFields := map[string]string{
		"seq":     "seq",
		"recTime": "rec_time",
	}

	tests := []struct {
		name         string
		input        string
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", "seq", "seq"},
		{"valid field maps to column", "recTime", "seq", "rec_time"},
		{"invalid field returns default", "invalid_field", "seq", "seq"},
		{"sql injection attempt returns default", "seq; DROP TABLE tz_user;--", "seq", "seq"},
		{"case sensitive", "RECTIME", "seq", "seq"},
		{"whitespace around valid field", "  recTime  ", "seq", "rec_time"},
		{"empty default with invalid field", "invalid", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, allowedFields, tt.defaultField))
		})
	}
}
