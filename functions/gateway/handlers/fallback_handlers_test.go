package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest("DELETE", "/user", nil)
	rr := httptest.NewRecorder()

	MethodNotAllowed(rr, req)

	if status := rr.Code; status != http.StatusMethodNotAllowed {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusMethodNotAllowed)
	}
	if allow := rr.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Allow header = %q, want %q", allow, "GET, POST")
	}
	if got := decodeBody(t, rr)["message"]; got != "Method not allowed" {
		t.Errorf("handler returned unexpected message: got %v", got)
	}
}

func TestNotFound(t *testing.T) {
	tests := []struct {
		method         string
		expectedStatus int
		expectedMsg    string
	}{
		{"GET", http.StatusNotFound, "Not found"},
		{"POST", http.StatusNotFound, "Not found"},
		{"PUT", http.StatusMethodNotAllowed, "Method not allowed"},
		{"DELETE", http.StatusMethodNotAllowed, "Method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/nowhere", nil)
			rr := httptest.NewRecorder()

			NotFound(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", status, tt.expectedStatus)
			}
			if got := decodeBody(t, rr)["message"]; got != tt.expectedMsg {
				t.Errorf("handler returned unexpected message: got %v want %v", got, tt.expectedMsg)
			}
		})
	}
}
