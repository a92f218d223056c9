package googleauth

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/xeipuuv/gojsonschema"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

const DefaultTokenURI = "https://oauth2.googleapis.com/token"

var credentialsSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["client_email", "private_key"],
	"properties": {
		"type":         {"type": "string"},
		"client_email": {"type": "string", "minLength": 3},
		"private_key":  {"type": "string", "minLength": 1},
		"token_uri":    {"type": "string"}
	}
}`)

// Credentials is the subset of a Google service-account key file we need.
// Never log it.
type Credentials struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// ParseCredentials decodes the service-account JSON secret. Any problem with
// the blob is reported as MalformedCredentials.
func ParseCredentials(raw string) (*Credentials, error) {
	result, err := gojsonschema.Validate(credentialsSchema, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, &entity.AuthError{Kind: entity.MalformedCredentials, Err: err}
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, &entity.AuthError{
			Kind: entity.MalformedCredentials,
			Err:  fmt.Errorf("%s", strings.Join(msgs, "; ")),
		}
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, &entity.AuthError{Kind: entity.MalformedCredentials, Err: err}
	}

	// Secrets pasted through dashboards often carry the PEM newlines escaped.
	creds.PrivateKey = strings.ReplaceAll(creds.PrivateKey, `\n`, "\n")
	if creds.TokenURI == "" {
		creds.TokenURI = DefaultTokenURI
	}
	return &creds, nil
}

func (c *Credentials) signingKey() (*rsa.PrivateKey, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(c.PrivateKey))
	if err != nil {
		return nil, &entity.AuthError{Kind: entity.MalformedCredentials, Err: fmt.Errorf("private key: %w", err)}
	}
	return key, nil
}
