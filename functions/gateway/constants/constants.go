package constants

type AWSReqKey string

const ApiGwReqKey AWSReqKey = "ApiGwReq"

const CPF_KEY string = "cpf"

// Cognito attribute names written on create and read back on lookup
const (
	EMAIL_ATTRIBUTE = "email"
	NAME_ATTRIBUTE  = "name"
	CPF_ATTRIBUTE   = "custom:cpf"
)

// Top-level record fields copied into a normalized user profile
const (
	USERNAME_FIELD           = "Username"
	USER_STATUS_FIELD        = "UserStatus"
	ENABLED_FIELD            = "Enabled"
	USER_CREATE_DATE_FIELD   = "UserCreateDate"
	USER_LAST_MODIFIED_FIELD = "UserLastModifiedDate"
)

// Cognito rejects ListUsers limits above 60
const MAX_LIST_USERS_PAGE_SIZE int32 = 60

const (
	MSG_USER_CREATED       = "Created user successfully"
	MSG_USER_NOT_FOUND     = "User not found"
	MSG_METHOD_NOT_ALLOWED = "Method not allowed"
	MSG_NOT_FOUND          = "Not found"
	MSG_INTERNAL_ERROR     = "Internal server error"
	MSG_INVALID_JSON       = "Invalid JSON payload"
	MSG_INVALID_BODY       = "Invalid body"
)

const REQUEST_ID_HEADER = "X-Request-Id"
