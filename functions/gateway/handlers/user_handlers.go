package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/meetnearme/identity-api/functions/gateway/constants"
	"github.com/meetnearme/identity-api/functions/gateway/services/cognito_service"
	"github.com/meetnearme/identity-api/functions/gateway/transport"
	internal_types "github.com/meetnearme/identity-api/functions/gateway/types"
)

// UserHandler handles user-related requests
type UserHandler struct {
	UserService cognito_service.UserServiceInterface
	// ExposeUpstreamErrors returns the provider's raw error text in 500
	// bodies instead of an opaque message.
	ExposeUpstreamErrors bool
}

func NewUserHandler(userService cognito_service.UserServiceInterface, exposeUpstreamErrors bool) *UserHandler {
	return &UserHandler{UserService: userService, ExposeUpstreamErrors: exposeUpstreamErrors}
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var createUser internal_types.UserInsert
	body, err := io.ReadAll(r.Body)
	if err != nil {
		transport.SendError(w, r, "Failed to read request body", http.StatusBadRequest, err)
		return
	}

	err = json.Unmarshal(body, &createUser)
	if err != nil {
		transport.SendError(w, r, constants.MSG_INVALID_JSON, http.StatusUnprocessableEntity, err)
		return
	}

	err = h.UserService.CreateUser(r.Context(), createUser)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	transport.SendMessage(w, r, constants.MSG_USER_CREATED, http.StatusCreated)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cpf := vars[constants.CPF_KEY]
	if cpf == "" {
		transport.SendError(w, r, "Missing cpf", http.StatusBadRequest, nil)
		return
	}

	profile, err := h.UserService.GetUserByCPF(r.Context(), cpf)
	if errors.Is(err, internal_types.ErrUserNotFound) {
		transport.SendMessage(w, r, constants.MSG_USER_NOT_FOUND, http.StatusNotFound)
		return
	}
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	transport.SendMessage(w, r, profile, http.StatusOK)
}

func (h *UserHandler) sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, internal_types.ErrInvalidUser) {
		transport.SendError(w, r, constants.MSG_INVALID_BODY+": "+err.Error(), http.StatusBadRequest, err)
		return
	}

	msg := constants.MSG_INTERNAL_ERROR
	var upstream *internal_types.UpstreamError
	if h.ExposeUpstreamErrors && errors.As(err, &upstream) {
		msg = upstream.Err.Error()
	}
	transport.SendError(w, r, msg, http.StatusInternalServerError, err)
}
