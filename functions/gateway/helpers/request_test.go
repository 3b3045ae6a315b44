package helpers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/meetnearme/identity-api/functions/gateway/constants"
)

func TestResolveRequestID_FromApiGateway(t *testing.T) {
	req := httptest.NewRequest("GET", "/user/111", nil)
	req.Header.Set(constants.REQUEST_ID_HEADER, "header-id")
	ctx := context.WithValue(req.Context(), constants.ApiGwReqKey, events.APIGatewayProxyRequest{
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: "c6af9ac6-7b61-11e6-9a41-93e8deadbeef",
		},
	})
	req = req.WithContext(ctx)

	if got := ResolveRequestID(req); got != "c6af9ac6-7b61-11e6-9a41-93e8deadbeef" {
		t.Errorf("ResolveRequestID() = %q, want the API Gateway request id", got)
	}
}

func TestResolveRequestID_FromHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/user/111", nil)
	req.Header.Set(constants.REQUEST_ID_HEADER, "header-id")

	if got := ResolveRequestID(req); got != "header-id" {
		t.Errorf("ResolveRequestID() = %q, want header-id", got)
	}
}

func TestResolveRequestID_Generated(t *testing.T) {
	req := httptest.NewRequest("GET", "/user/111", nil)

	got := ResolveRequestID(req)
	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("ResolveRequestID() = %q, want a uuid: %v", got, err)
	}
}

func TestRequestIDContext(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}

	ctx := WithRequestID(context.Background(), "abc")
	if got := RequestIDFromContext(ctx); got != "abc" {
		t.Errorf("RequestIDFromContext() = %q, want abc", got)
	}
}
