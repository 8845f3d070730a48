package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrAccessDenied = errors.New("access code does not match")

func HashAccessCode(code string) (string, error) {
	if code == "" {
		return "", errors.New("access code is empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckAccessCode accepts any code when hash is empty.
func CheckAccessCode(hash, code string) error {
	if hash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return ErrAccessDenied
	}
	return nil
}
