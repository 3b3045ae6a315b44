package cognito_service

import (
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito_types "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/meetnearme/identity-api/functions/gateway/constants"
	internal_types "github.com/meetnearme/identity-api/functions/gateway/types"
)

// FormatTimestamp renders t as ISO-8601 keeping the provider's offset.
// The output round-trips through time.Parse(time.RFC3339Nano, ...).
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// NormalizeUser flattens a directory record into a UserProfile: every
// attribute by name, followed by the record's own scalar fields. Record
// fields win on a name clash. MFAOptions is a nested list and is skipped.
func NormalizeUser(user cognito_types.UserType) internal_types.UserProfile {
	profile := make(internal_types.UserProfile, len(user.Attributes)+5)

	for _, attr := range user.Attributes {
		if attr.Name == nil {
			continue
		}
		profile[*attr.Name] = aws.ToString(attr.Value)
	}

	if user.Username != nil {
		profile[constants.USERNAME_FIELD] = *user.Username
	}
	if user.UserStatus != "" {
		profile[constants.USER_STATUS_FIELD] = string(user.UserStatus)
	}
	// the SDK decodes a missing Enabled as false
	profile[constants.ENABLED_FIELD] = strconv.FormatBool(user.Enabled)
	if user.UserCreateDate != nil {
		profile[constants.USER_CREATE_DATE_FIELD] = FormatTimestamp(*user.UserCreateDate)
	}
	if user.UserLastModifiedDate != nil {
		profile[constants.USER_LAST_MODIFIED_FIELD] = FormatTimestamp(*user.UserLastModifiedDate)
	}

	return profile
}

// FindUserByAttribute returns the first user, in slice order, carrying an
// attribute called name whose value is exactly value.
func FindUserByAttribute(users []cognito_types.UserType, name, value string) (cognito_types.UserType, bool) {
	for _, user := range users {
		for _, attr := range user.Attributes {
			if aws.ToString(attr.Name) != name || attr.Value == nil {
				continue
			}
			if *attr.Value == value {
				return user, true
			}
		}
	}
	return cognito_types.UserType{}, false
}
