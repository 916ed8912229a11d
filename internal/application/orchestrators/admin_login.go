package orchestrators

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
)

// ErrBadSecret is returned when the supplied admin secret does not match.
var ErrBadSecret = errors.New("admin secret does not match")

// AdminLoginInput carries input for the admin login orchestrator.
type AdminLoginInput struct {
	Secret string
}

// AdminLoginDeps holds dependencies for AdminLogin.
type AdminLoginDeps struct {
	AdminSecret string
}

// ExecuteAdminLogin checks the shared admin secret. The secret is a static
// string compared for equality; there are no accounts, hashes, or lockouts.
// Comparison is constant-time so the check leaks nothing about the secret.
// PRE: deps.AdminSecret is non-empty
// POST: Returns nil on match, ErrBadSecret otherwise
func ExecuteAdminLogin(_ context.Context, input AdminLoginInput, deps AdminLoginDeps) error {
	if subtle.ConstantTimeCompare([]byte(input.Secret), []byte(deps.AdminSecret)) != 1 {
		slog.Warn("admin_event", "event", "login_rejected")
		return ErrBadSecret
	}
	slog.Info("admin_event", "event", "login_ok")
	return nil
}
