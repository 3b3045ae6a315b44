package types

// UserInsert is the create payload. Fields are pointers so that a key which is
// absent from the body can be told apart from one that is present but empty.
type UserInsert struct {
	CPF   *string `json:"cpf" validate:"required"`
	Name  *string `json:"name" validate:"required"`
	Email *string `json:"email" validate:"required"`
}

// UserProfile is the flat attribute-name to string-value projection of a
// directory record returned to callers.
type UserProfile map[string]string

type UserCreatedEvent struct {
	Username   string `json:"username"`
	UserStatus string `json:"user_status,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

type MessageResponse struct {
	Message interface{} `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
