package configs

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
	CSRFKey []byte
}

func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" {
		return nil, errors.New("APP_AUTH_KEY environment variable not set")
	}
	if env.AppEncKey == "" {
		return nil, errors.New("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}

	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}

	keys := &SessionKeys{AuthKey: authKey, EncKey: encKey}

	if env.AppCSRFKey != "" {
		csrfKey, err := base64.URLEncoding.DecodeString(env.AppCSRFKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode APP_CSRF_KEY from Base64: %w", err)
		}
		if len(csrfKey) != 32 {
			return nil, fmt.Errorf("APP_CSRF_KEY has invalid length %d after decoding. Must be 32 bytes", len(csrfKey))
		}
		keys.CSRFKey = csrfKey
	}

	return keys, nil
}

// GenerateSessionKeys writes a fresh set of keys in .env format.
func GenerateSessionKeys(w io.Writer) error {
	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return errors.New("could not generate authentication key")
	}

	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return errors.New("could not generate encryption key")
	}

	csrfKey := securecookie.GenerateRandomKey(32)
	if csrfKey == nil {
		return errors.New("could not generate csrf key")
	}

	_, err := fmt.Fprintf(w, "APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\nAPP_CSRF_KEY=%s\n",
		base64.URLEncoding.EncodeToString(authKey),
		base64.URLEncoding.EncodeToString(encKey),
		base64.URLEncoding.EncodeToString(csrfKey),
	)
	return err
}
