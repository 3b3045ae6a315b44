package transport

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/meetnearme/identity-api/functions/gateway/logging"
	internal_types "github.com/meetnearme/identity-api/functions/gateway/types"
)

// SendJSONRes writes payload as a JSON body. `err` is logged with the request
// logger when status is 400 or greater and is never written to the client.
func SendJSONRes(w http.ResponseWriter, r *http.Request, payload interface{}, status int, err error) {
	logger := logging.FromContext(r.Context())
	if status >= 400 {
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		if status >= 500 {
			logger.Error("request failed", fields...)
		} else {
			logger.Info("request rejected", fields...)
		}
	}

	body, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		logger.Error("ERR: failed to marshal response", zap.Error(marshalErr))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, writeErr := w.Write(body); writeErr != nil {
		logger.Warn("ERR: error writing response", zap.Error(writeErr))
	}
}

func SendMessage(w http.ResponseWriter, r *http.Request, message interface{}, status int) {
	SendJSONRes(w, r, internal_types.MessageResponse{Message: message}, status, nil)
}

func SendError(w http.ResponseWriter, r *http.Request, message string, status int, err error) {
	SendJSONRes(w, r, internal_types.ErrorResponse{Error: message}, status, err)
}
