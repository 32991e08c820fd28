package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/embercoffee/contact-service/internal/config"
)

// ErrPasswordMismatch is returned when the supplied password fails the gate.
var ErrPasswordMismatch = errors.New("password mismatch")

// VerifyAdminPassword checks the supplied password against the configured
// gate. A bcrypt hash takes precedence when present; otherwise the plain
// configured value is compared in constant time. No gate configured at all
// means nobody gets in.
func VerifyAdminPassword(cfg config.AuthConfig, password string) error {
	if cfg.AdminPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(password)); err != nil {
			return ErrPasswordMismatch
		}
		return nil
	}
	if cfg.AdminPassword == "" {
		return ErrPasswordMismatch
	}
	if subtle.ConstantTimeCompare([]byte(cfg.AdminPassword), []byte(password)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

// HashPassword hashes a plaintext password for use as ADMIN_PASSWORD_HASH.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
