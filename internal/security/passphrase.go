package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// PassphraseAlphabet leaves out characters that are easy to misread.
	PassphraseAlphabet      = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	MinGeneratedPassphrase  = 12
	maxBcryptPassphraseSize = 72
)

var (
	ErrPassphraseRequired = errors.New("passphrase is required")
	ErrPassphraseTooLong  = errors.New("passphrase exceeds 72 bytes")
	ErrPassphraseMismatch = errors.New("passphrase does not match")

	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// HashPassphrase returns the bcrypt hash stored as the access passphrase.
func HashPassphrase(passphrase string) (string, error) {
	if strings.TrimSpace(passphrase) == "" {
		return "", ErrPassphraseRequired
	}
	if len(passphrase) > maxBcryptPassphraseSize {
		return "", ErrPassphraseTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassphrase(hash string, passphrase string) error {
	if strings.TrimSpace(hash) == "" || passphrase == "" {
		return ErrPassphraseMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)); err != nil {
		return ErrPassphraseMismatch
	}
	return nil
}

// GeneratePassphrase returns a random passphrase of at least MinGeneratedPassphrase characters.
func GeneratePassphrase(length int) (string, error) {
	if length < MinGeneratedPassphrase {
		length = MinGeneratedPassphrase
	}
	return RandomString(length, PassphraseAlphabet)
}

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}
