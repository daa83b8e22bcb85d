package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefault_BeforeInitializeIsUsable(t *testing.T) {
	require.NotNil(t, Default())
	assert.NotPanics(t, func() {
		Info("not initialized yet")
		Error(errors.New("boom"))
		WarnCtx(context.Background(), "warn")
	})
}

func TestInitialize_WithoutSentry(t *testing.T) {
	require.NoError(t, Initialize(Config{Debug: true}))
	assert.True(t, Default().Core().Enabled(zapcore.DebugLevel), "debug level should be enabled")

	require.NoError(t, Initialize(Config{Debug: false}))
	assert.False(t, Default().Core().Enabled(zapcore.DebugLevel), "debug level should be disabled")
}

func TestFromContext_NilContext(t *testing.T) {
	require.NoError(t, Initialize(Config{}))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Equal(t, Default(), FromContext(nil))
}

func TestError_NilError(t *testing.T) {
	require.NoError(t, Initialize(Config{}))
	assert.NotPanics(t, func() {
		Error(nil)
		ErrorCtx(context.Background(), nil)
	})
}
