package internal

import (
	"fmt"
	"os"
)

// Environment variables carrying secrets. They are supplied out-of-band
// (shell or .env via godotenv) and are never logged.
const (
	EnvToken           = "FLOMO_TOKEN"
	EnvAccessKeyID     = "OSS_ACCESS_KEY_ID"
	EnvAccessKeySecret = "OSS_ACCESS_KEY_SECRET"
)

// Credentials holds the bearer token for the note API and the object
// storage key pair.
type Credentials struct {
	Token           string
	AccessKeyID     string
	AccessKeySecret string
}

// LoadCredentials reads credentials from the environment. Missing values
// are a configuration error and abort before any network call.
func LoadCredentials() (*Credentials, error) {
	c := &Credentials{
		Token:           os.Getenv(EnvToken),
		AccessKeyID:     os.Getenv(EnvAccessKeyID),
		AccessKeySecret: os.Getenv(EnvAccessKeySecret),
	}
	if c.Token == "" {
		return nil, fmt.Errorf("environment variable %s is not set", EnvToken)
	}
	if c.AccessKeyID == "" || c.AccessKeySecret == "" {
		return nil, fmt.Errorf("environment variables %s and %s are required", EnvAccessKeyID, EnvAccessKeySecret)
	}
	return c, nil
}
