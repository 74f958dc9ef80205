package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenRevoked, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{shared.ErrNotFound.Code, ErrCodeNotFound},
		{shared.ErrAlreadyExists.Code, ErrCodeAlreadyExists},
		{shared.ErrInvalidInput.Code, ErrCodeInvalidInput},
		{shared.ErrInvalidState.Code, ErrCodeInvalidState},
		{shared.ErrUnauthorized.Code, ErrCodeUnauthorized},
		{shared.ErrForbidden.Code, ErrCodeForbidden},
		{shared.ErrHasChildren.Code, ErrCodeConflict},
		{"INVALID_EMAIL", ErrCodeValidation},
		{"INVALID_PASSWORD", ErrCodeValidation},
		{ErrCodeNotFound, ErrCodeNotFound},
		{"CUSTOM_ERROR", "CUSTOM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestEveryDomainCodeHasAStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "%s maps to %s which has no status", domainCode, apiCode)
	}
}

func TestNewValidationErrorResponse_JSON(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "areaName", Message: "This field is required"},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "data")

	errObj := decoded["error"].(map[string]interface{})
	assert.Equal(t, ErrCodeValidation, errObj["code"])
	assert.Equal(t, "req-1", errObj["request_id"])
	details := errObj["details"].([]interface{})
	require.Len(t, details, 1)
	assert.Equal(t, "areaName", details[0].(map[string]interface{})["field"])
}

func TestPageQuery_Filter(t *testing.T) {
	f := PageQuery{}.Filter()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.PageSize)

	f = PageQuery{Current: 3, Size: 10000}.Filter()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 500, f.PageSize)

	f = PageQuery{Current: -2, Size: -1}.Filter()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.PageSize)
}
