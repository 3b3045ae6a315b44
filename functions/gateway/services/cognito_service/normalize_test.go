package cognito_service

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito_types "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetnearme/identity-api/functions/gateway/test_helpers"
)

func TestFormatTimestamp_RoundTrips(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	stamps := []time.Time{
		time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 1, saoPaulo),
	}

	for _, ts := range stamps {
		formatted := FormatTimestamp(ts)
		parsed, err := time.Parse(time.RFC3339Nano, formatted)
		require.NoError(t, err, formatted)
		assert.True(t, ts.Equal(parsed), "round trip of %s gave %s", ts, parsed)
	}

	assert.Equal(t, "2024-05-01T10:00:00Z", FormatTimestamp(stamps[0]))
	assert.Equal(t, "1999-12-31T23:59:59.000000001-03:00", FormatTimestamp(stamps[2]))
}

func TestNormalizeUser(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	modified := time.Date(2024, 6, 2, 11, 30, 0, 500000000, time.UTC)

	user := test_helpers.NewCognitoUser("test-user",
		[2]string{"email", "john@example.com"},
		[2]string{"name", "John Doe"},
		[2]string{"custom:cpf", "01234567891"},
	)
	user.UserCreateDate = &created
	user.UserLastModifiedDate = &modified
	user.Enabled = true
	user.UserStatus = cognito_types.UserStatusTypeForceChangePassword

	profile := NormalizeUser(user)

	assert.Equal(t, "test-user", profile["Username"])
	assert.Equal(t, "john@example.com", profile["email"])
	assert.Equal(t, "John Doe", profile["name"])
	assert.Equal(t, "01234567891", profile["custom:cpf"])
	assert.Equal(t, "true", profile["Enabled"])
	assert.Equal(t, "FORCE_CHANGE_PASSWORD", profile["UserStatus"])
	assert.Equal(t, "2024-05-01T10:00:00Z", profile["UserCreateDate"])
	assert.Equal(t, "2024-06-02T11:30:00.5Z", profile["UserLastModifiedDate"])
	assert.Len(t, profile, 8)
}

func TestNormalizeUser_SparseRecord(t *testing.T) {
	user := cognito_types.UserType{
		Attributes: []cognito_types.AttributeType{
			{Name: nil, Value: aws.String("orphan")},
			{Name: aws.String("nickname"), Value: nil},
		},
	}

	profile := NormalizeUser(user)

	assert.Equal(t, map[string]string{"nickname": "", "Enabled": "false"}, map[string]string(profile))
}

func TestNormalizeUser_RecordFieldsWin(t *testing.T) {
	user := test_helpers.NewCognitoUser("real-handle", [2]string{"Username", "spoofed"})

	profile := NormalizeUser(user)

	assert.Equal(t, "real-handle", profile["Username"])
}

func TestFindUserByAttribute(t *testing.T) {
	users := []cognito_types.UserType{
		test_helpers.NewCognitoUser("u1", [2]string{"email", "a@x.com"}, [2]string{"custom:cpf", "111"}),
		test_helpers.NewCognitoUser("u2", [2]string{"email", "b@x.com"}, [2]string{"custom:cpf", "222"}),
		test_helpers.NewCognitoUser("u3", [2]string{"email", "c@x.com"}, [2]string{"custom:cpf", "222"}),
		test_helpers.NewCognitoUser("u4", [2]string{"email", "333"}),
	}

	tests := []struct {
		name      string
		value     string
		wantFound bool
		wantUser  string
	}{
		{"exact match", "111", true, "u1"},
		{"first match wins", "222", true, "u2"},
		{"other attributes are ignored", "333", false, ""},
		{"no case folding or trimming", " 111", false, ""},
		{"prefix is not a match", "11", false, ""},
		{"empty value", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, found := FindUserByAttribute(users, "custom:cpf", tt.value)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantUser, aws.ToString(user.Username))
			}
		})
	}
}

func TestFindUserByAttribute_EmptyCollection(t *testing.T) {
	_, found := FindUserByAttribute(nil, "custom:cpf", "111")
	assert.False(t, found)
}
