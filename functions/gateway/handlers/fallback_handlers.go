package handlers

import (
	"net/http"
	"strings"

	"github.com/meetnearme/identity-api/functions/gateway/constants"
	"github.com/meetnearme/identity-api/functions/gateway/transport"
)

var allowedMethods = []string{http.MethodGet, http.MethodPost}

// MethodNotAllowed answers every method the API does not serve, whatever the
// path.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", strings.Join(allowedMethods, ", "))
	transport.SendMessage(w, r, constants.MSG_METHOD_NOT_ALLOWED, http.StatusMethodNotAllowed)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	for _, method := range allowedMethods {
		if r.Method == method {
			transport.SendMessage(w, r, constants.MSG_NOT_FOUND, http.StatusNotFound)
			return
		}
	}
	MethodNotAllowed(w, r)
}
