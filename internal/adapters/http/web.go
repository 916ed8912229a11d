// Package web wires the HTTP surface of the shift board: the kiosk page, the
// JSON API the page polls, and the admin endpoints behind the shared secret.
package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"shiftboard/internal/adapters/email"
	"shiftboard/internal/adapters/http/middleware"
	"shiftboard/internal/application/tracker"
	"shiftboard/internal/config"
	"shiftboard/internal/domain/shift"
)

// loadCSRFKey reads the CSRF secret from SHIFTBOARD_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("SHIFTBOARD_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("SHIFTBOARD_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("SHIFTBOARD_ENV") == "production" {
		log.Fatal("SHIFTBOARD_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set SHIFTBOARD_CSRF_KEY for production.")
	return key
}

// Global board tracker (set by NewMux)
var board *tracker.Tracker

// Global event configuration (set by NewMux)
var cfg config.Config

// schedule is cfg's shift plan converted once at startup.
var schedule []shift.Day

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// NewMux wires HTTP handlers for the app.
func NewMux(t *tracker.Tracker, c config.Config) http.Handler {
	board = t
	cfg = c
	schedule = c.ShiftDays()
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("SHIFTBOARD_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
