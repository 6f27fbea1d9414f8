// Package security derives the purpose-bound keys used to sign and seal
// session tokens from the single configured secret.
package security

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	KeySize = 32

	PurposeTokenSigning = "wellness.session-token.v1"
	PurposeCookieSeal   = "wellness.secure-cookie.v1"
)

var (
	errEmptySecret  = errors.New("secret must not be empty")
	errEmptyPurpose = errors.New("key purpose must not be empty")
)

// DeriveKey expands secret into a KeySize key bound to purpose. Distinct
// purposes yield independent keys.
func DeriveKey(secret []byte, purpose string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, errEmptyPurpose
	}

	key := make([]byte, KeySize)
	reader := hkdf.New(sha256.New, secret, nil, []byte(purpose))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return key, nil
}

type SessionKeys struct {
	Signing []byte
	Sealing []byte
}

func DeriveSessionKeys(secret []byte) (SessionKeys, error) {
	signing, err := DeriveKey(secret, PurposeTokenSigning)
	if err != nil {
		return SessionKeys{}, err
	}
	sealing, err := DeriveKey(secret, PurposeCookieSeal)
	if err != nil {
		return SessionKeys{}, err
	}
	return SessionKeys{Signing: signing, Sealing: sealing}, nil
}
