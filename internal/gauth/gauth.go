// Package gauth builds service-account token sources for Google APIs and
// classifies Google API errors into the bridge's error taxonomy.
package gauth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"

	"whatsapp-media-bridge/internal/apperr"
)

const service = "google"

// Credentials identifies a service account, either inline or through a
// credentials.json key file. Inline values win when both are set.
type Credentials struct {
	ClientEmail string
	PrivateKey  string
	File        string
}

// ExpandKey turns literal "\n" sequences, as stored in .env files, into newlines.
func ExpandKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// TokenSource returns a JWT token source for the service account and scopes.
func TokenSource(ctx context.Context, creds Credentials, scopes ...string) (oauth2.TokenSource, error) {
	if creds.ClientEmail != "" && creds.PrivateKey != "" {
		cfg := &jwt.Config{
			Email:      creds.ClientEmail,
			PrivateKey: []byte(ExpandKey(creds.PrivateKey)),
			Scopes:     scopes,
			TokenURL:   google.JWTTokenURL,
		}
		return cfg.TokenSource(ctx), nil
	}

	if creds.File == "" {
		return nil, apperr.Auth(service, errors.New("GOOGLE_CLIENT_EMAIL/GOOGLE_PRIVATE_KEY or GOOGLE_CREDENTIALS_FILE must be set"))
	}
	data, err := os.ReadFile(creds.File)
	if err != nil {
		return nil, apperr.Auth(service, fmt.Errorf("read credentials file: %w", err))
	}
	cfg, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, apperr.Auth(service, fmt.Errorf("parse credentials file: %w", err))
	}
	return cfg.TokenSource(ctx), nil
}

// Authorize fetches a first token so bad credentials fail at startup rather
// than on the first event.
func Authorize(ts oauth2.TokenSource) error {
	if _, err := ts.Token(); err != nil {
		return apperr.Auth(service, err)
	}
	return nil
}

// Classify wraps a Google API error: 401/403 become AuthError, anything else
// a TransportError.
func Classify(api, op string, err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return apperr.FromStatus(api, op, gerr.Code, err)
	}
	return apperr.Transport(api, op, err)
}
