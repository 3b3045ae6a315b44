package helpers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/meetnearme/identity-api/functions/gateway/constants"
)

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ResolveRequestID prefers the API Gateway request id so log lines can be
// joined with the gateway access logs, then the X-Request-Id header, and
// finally mints a new id.
func ResolveRequestID(r *http.Request) string {
	if apiGwReq, ok := r.Context().Value(constants.ApiGwReqKey).(events.APIGatewayProxyRequest); ok {
		if apiGwReq.RequestContext.RequestID != "" {
			return apiGwReq.RequestContext.RequestID
		}
	}
	if id := r.Header.Get(constants.REQUEST_ID_HEADER); id != "" {
		return id
	}
	return uuid.NewString()
}
