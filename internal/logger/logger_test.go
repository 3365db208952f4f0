package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestDeriveRequestLogger(t *testing.T) {
	base := slog.Default()

	t.Run("no request scope", func(t *testing.T) {
		assert.Same(t, base, DeriveRequestLogger(context.Background(), base))
	})

	t.Run("context request ID", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-123")
		assert.NotSame(t, base, DeriveRequestLogger(ctx, base))
	})

	t.Run("lambda request ID fallback", func(t *testing.T) {
		ctx := lambdacontext.NewContext(context.Background(),
			&lambdacontext.LambdaContext{AwsRequestID: "lambda-req"})
		assert.NotSame(t, base, DeriveRequestLogger(ctx, base))
	})
}
