package adminclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_AppliesOptions(t *testing.T) {
	opts := []ClientOption{
		WithLogger(zap.NewNop()),
		WithTimeout(5 * time.Second),
	}
	opts = append(opts, WithToken("access"), WithRefreshToken("refresh"))

	c, err := New("http://admin.example.com/", opts...)
	require.NoError(t, err)

	access, refresh := c.Tokens()
	assert.Equal(t, "access", access)
	assert.Equal(t, "refresh", refresh)
	assert.Equal(t, 5*time.Second, c.http.GetClient().Timeout)
	assert.Equal(t, "http://admin.example.com", c.baseURL.String())
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New("/api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be absolute")
}
