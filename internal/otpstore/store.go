// Package otpstore keeps one-time code sessions keyed by phone number.
package otpstore

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("otp session not found")

// Session is a pending verification. Only the hash of the code is kept.
type Session struct {
	CodeHash  string    `json:"code_hash"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists sessions, failed attempt counters and request counters.
type Store interface {
	// Save replaces any pending session for phone and resets its attempts.
	Save(ctx context.Context, phone string, s Session, ttl time.Duration) error
	// Get returns ErrNotFound when no live session exists.
	Get(ctx context.Context, phone string) (*Session, error)
	// Consume deletes the session and reports whether this call removed it.
	Consume(ctx context.Context, phone string) (bool, error)
	// IncrementAttempts counts a failed verification and returns the total.
	IncrementAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error)
	// CountRequest counts a code request inside a fixed window and returns the total.
	CountRequest(ctx context.Context, phone string, window time.Duration) (int64, error)
}

func sessionKey(phone string) string  { return "otp:session:" + phone }
func attemptsKey(phone string) string { return "otp:attempts:" + phone }
func rateKey(phone string) string     { return "otp:rate:" + phone }
