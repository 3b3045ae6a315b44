package cognito_service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognito_types "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/go-playground/validator"
	"go.uber.org/zap"

	"github.com/meetnearme/identity-api/functions/gateway/constants"
	"github.com/meetnearme/identity-api/functions/gateway/helpers"
	"github.com/meetnearme/identity-api/functions/gateway/interfaces"
	"github.com/meetnearme/identity-api/functions/gateway/logging"
	internal_types "github.com/meetnearme/identity-api/functions/gateway/types"
)

// Validator instance for struct validation
var validate *validator.Validate = validator.New()

// UserServiceInterface defines the methods required for the user service.
type UserServiceInterface interface {
	CreateUser(ctx context.Context, user internal_types.UserInsert) error
	GetUserByCPF(ctx context.Context, cpf string) (internal_types.UserProfile, error)
}

type UserServiceConfig struct {
	UserPoolID            string
	IdentifierAttribute   string
	PageSize              int32
	Timeout               time.Duration
	SuppressInviteMessage bool
}

// UserService talks to a single Cognito user pool. It holds no directory
// state between calls.
type UserService struct {
	client    internal_types.CognitoAPI
	publisher interfaces.UserEventPublisher
	cfg       UserServiceConfig
}

func NewUserService(client internal_types.CognitoAPI, publisher interfaces.UserEventPublisher, cfg UserServiceConfig) *UserService {
	if cfg.IdentifierAttribute == "" {
		cfg.IdentifierAttribute = constants.CPF_ATTRIBUTE
	}
	return &UserService{client: client, publisher: publisher, cfg: cfg}
}

// CreateUser registers the user keyed by email. Duplicate detection is left
// to the user pool; its error is returned wrapped in an UpstreamError.
func (s *UserService) CreateUser(ctx context.Context, user internal_types.UserInsert) error {
	if err := ValidateUserInsert(user); err != nil {
		return err
	}

	input := &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId: aws.String(s.cfg.UserPoolID),
		Username:   user.Email,
		UserAttributes: []cognito_types.AttributeType{
			{Name: aws.String(constants.EMAIL_ATTRIBUTE), Value: user.Email},
			{Name: aws.String(s.cfg.IdentifierAttribute), Value: user.CPF},
			{Name: aws.String(constants.NAME_ATTRIBUTE), Value: user.Name},
		},
	}
	if s.cfg.SuppressInviteMessage {
		input.MessageAction = cognito_types.MessageActionTypeSuppress
	}

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.client.AdminCreateUser(callCtx, input)
	if err != nil {
		return s.upstreamError(ctx, "AdminCreateUser", err)
	}

	s.publishCreated(ctx, res, aws.ToString(user.Email))
	return nil
}

// GetUserByCPF scans the whole pool in provider order and returns the first
// user whose identifier attribute equals cpf byte for byte. The pool is never
// asked to filter: ListUsers filters do not cover custom attributes and would
// need the identifier spliced into a filter expression.
func (s *UserService) GetUserByCPF(ctx context.Context, cpf string) (internal_types.UserProfile, error) {
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	input := &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(s.cfg.UserPoolID),
	}
	if s.cfg.PageSize > 0 {
		input.Limit = aws.Int32(s.cfg.PageSize)
	}

	pages := 0
	paginator := cognitoidentityprovider.NewListUsersPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(callCtx)
		if err != nil {
			return nil, s.upstreamError(ctx, "ListUsers", err)
		}
		pages++

		if user, ok := FindUserByAttribute(page.Users, s.cfg.IdentifierAttribute, cpf); ok {
			logging.FromContext(ctx).Debug("user resolved", zap.Int("pages_scanned", pages))
			return NormalizeUser(user), nil
		}
	}

	logging.FromContext(ctx).Debug("user not found", zap.Int("pages_scanned", pages))
	return nil, internal_types.ErrUserNotFound
}

func (s *UserService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, s.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func (s *UserService) upstreamError(ctx context.Context, op string, err error) error {
	logging.FromContext(ctx).Error("cognito call failed",
		zap.String("op", op),
		zap.String("aws_error_code", ErrorCode(err)),
		zap.Error(err),
	)
	return &internal_types.UpstreamError{Op: op, Err: err}
}

// publishCreated is best effort: the user already exists in the pool, so a
// failed publish is logged and swallowed.
func (s *UserService) publishCreated(ctx context.Context, res *cognitoidentityprovider.AdminCreateUserOutput, email string) {
	if s.publisher == nil {
		return
	}

	event := internal_types.UserCreatedEvent{
		Username:  email,
		RequestID: helpers.RequestIDFromContext(ctx),
	}
	if res != nil && res.User != nil {
		if res.User.Username != nil {
			event.Username = *res.User.Username
		}
		event.UserStatus = string(res.User.UserStatus)
		if res.User.UserCreateDate != nil {
			event.CreatedAt = FormatTimestamp(*res.User.UserCreateDate)
		}
	}

	if err := s.publisher.PublishUserCreated(ctx, event); err != nil {
		logging.FromContext(ctx).Warn("failed to publish user created event", zap.Error(err))
	}
}

// ErrorCode extracts the AWS error code (e.g. UsernameExistsException), or
// returns an empty string for non-API errors.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// ValidationError lists the required keys missing from a create payload.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required field(s): " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == internal_types.ErrInvalidUser
}

// ValidateUserInsert checks key presence only. Values are not format checked.
func ValidateUserInsert(user internal_types.UserInsert) error {
	err := validate.Struct(user)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, jsonFieldName(fe.Field()))
	}
	return &ValidationError{Fields: missing}
}

func jsonFieldName(field string) string {
	switch field {
	case "CPF":
		return "cpf"
	case "Name":
		return "name"
	case "Email":
		return "email"
	}
	return strings.ToLower(field)
}

type MockUserService struct {
	CreateUserFunc   func(ctx context.Context, user internal_types.UserInsert) error
	GetUserByCPFFunc func(ctx context.Context, cpf string) (internal_types.UserProfile, error)
}

func (m *MockUserService) CreateUser(ctx context.Context, user internal_types.UserInsert) error {
	return m.CreateUserFunc(ctx, user)
}

func (m *MockUserService) GetUserByCPF(ctx context.Context, cpf string) (internal_types.UserProfile, error) {
	return m.GetUserByCPFFunc(ctx, cpf)
}
