package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWTToken("inst-001", "instructor", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWTToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "inst-001", claims.UserID)
	assert.Equal(t, "instructor", claims.Role)
	assert.Equal(t, "inst-001", claims.Subject)
}

func TestJWTRejects(t *testing.T) {
	expired, err := GenerateJWTToken("stu-001", "student", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWTToken(expired, "secret")
	assert.Error(t, err)

	anonymous, err := GenerateJWTToken("", "student", "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWTToken(anonymous, "secret")
	assert.Error(t, err)

	_, err = ParseJWTToken("not.a.token", "secret")
	assert.Error(t, err)
}

func TestInitLoggerModes(t *testing.T) {
	for _, mode := range []string{"test", "development", "production", ""} {
		logger, err := InitLogger(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, logger)
		logger.With("mode", mode).Info("logger ready")
	}
}
