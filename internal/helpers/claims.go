package helpers

import "github.com/golang-jwt/jwt/v5"

// Claims is the subset of an identity-provider access token the API relies on.
type Claims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	AppMetadata struct {
		Provider  string   `json:"provider"`
		Providers []string `json:"providers"`
	} `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

// UID is the identity-provider user id carried in the subject claim.
func (c *Claims) UID() string {
	return c.Subject
}

// MetadataString reads a string value from user metadata, returning "" when absent.
func (c *Claims) MetadataString(key string) string {
	if c.UserMetadata == nil {
		return ""
	}
	v, _ := c.UserMetadata[key].(string)
	return v
}
