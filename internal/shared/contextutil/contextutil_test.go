package contextutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMetadataRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "user-9")

	md := ExtractMetadata(ctx)
	assert.Equal(t, "req-1", md.RequestID)
	assert.Equal(t, "user-9", md.UserID)
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetLoggerFallbacks(t *testing.T) {
	base := zap.NewNop().Named("base")
	scoped := zap.NewNop().Named("scoped")

	assert.Same(t, scoped, GetLogger(WithLogger(context.Background(), scoped), base))
	assert.Same(t, base, GetLogger(context.Background(), base))
	assert.NotNil(t, GetLogger(context.Background(), nil))
}
