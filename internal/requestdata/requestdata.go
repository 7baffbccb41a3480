package requestdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type ctxKey struct{}

var requestDataKey ctxKey

// RequestData is what the auth middleware attaches to the request context.
// Handlers and services treat the user id as an opaque, already-verified
// input.
type RequestData struct {
	TokenString string
	UserID      uuid.UUID
	Role        types.UserRole
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
