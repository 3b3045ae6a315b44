package test_helpers

import (
	"context"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognito_types "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/meetnearme/identity-api/functions/gateway/types"
)

type MockCognitoClient struct {
	ListUsersFunc       func(ctx context.Context, params *cognitoidentityprovider.ListUsersInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ListUsersOutput, error)
	AdminCreateUserFunc func(ctx context.Context, params *cognitoidentityprovider.AdminCreateUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminCreateUserOutput, error)

	mu                   sync.Mutex
	ListUsersCalls       []*cognitoidentityprovider.ListUsersInput
	AdminCreateUserCalls []*cognitoidentityprovider.AdminCreateUserInput
}

func (m *MockCognitoClient) ListUsers(ctx context.Context, params *cognitoidentityprovider.ListUsersInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ListUsersOutput, error) {
	m.mu.Lock()
	m.ListUsersCalls = append(m.ListUsersCalls, params)
	m.mu.Unlock()
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, params, optFns...)
	}
	return &cognitoidentityprovider.ListUsersOutput{}, nil
}

func (m *MockCognitoClient) AdminCreateUser(ctx context.Context, params *cognitoidentityprovider.AdminCreateUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminCreateUserOutput, error) {
	m.mu.Lock()
	m.AdminCreateUserCalls = append(m.AdminCreateUserCalls, params)
	m.mu.Unlock()
	if m.AdminCreateUserFunc != nil {
		return m.AdminCreateUserFunc(ctx, params, optFns...)
	}
	return &cognitoidentityprovider.AdminCreateUserOutput{User: &cognito_types.UserType{Username: params.Username}}, nil
}

// NewPagedCognitoClient serves users from ListUsers in pages of the given size,
// using the page index as pagination token.
func NewPagedCognitoClient(users []cognito_types.UserType, pageSize int) *MockCognitoClient {
	return &MockCognitoClient{
		ListUsersFunc: func(ctx context.Context, params *cognitoidentityprovider.ListUsersInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ListUsersOutput, error) {
			start := 0
			if params.PaginationToken != nil {
				for i := 0; i < len(users); i += pageSize {
					if pageToken(i) == *params.PaginationToken {
						start = i
					}
				}
			}
			end := start + pageSize
			if end >= len(users) {
				return &cognitoidentityprovider.ListUsersOutput{Users: users[start:]}, nil
			}
			return &cognitoidentityprovider.ListUsersOutput{
				Users:           users[start:end],
				PaginationToken: aws.String(pageToken(end)),
			}, nil
		},
	}
}

func pageToken(offset int) string {
	return "page-" + strconv.Itoa(offset)
}

// NewCognitoUser builds a directory record with attributes in the given order.
func NewCognitoUser(username string, attrs ...[2]string) cognito_types.UserType {
	user := cognito_types.UserType{Username: aws.String(username)}
	for _, attr := range attrs {
		user.Attributes = append(user.Attributes, cognito_types.AttributeType{
			Name:  aws.String(attr[0]),
			Value: aws.String(attr[1]),
		})
	}
	return user
}

type MockUserEventPublisher struct {
	PublishUserCreatedFunc func(ctx context.Context, event types.UserCreatedEvent) error

	mu     sync.Mutex
	Events []types.UserCreatedEvent
	Closed bool
}

func (m *MockUserEventPublisher) PublishUserCreated(ctx context.Context, event types.UserCreatedEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()
	if m.PublishUserCreatedFunc != nil {
		return m.PublishUserCreatedFunc(ctx, event)
	}
	return nil
}

func (m *MockUserEventPublisher) Close() error {
	m.Closed = true
	return nil
}
