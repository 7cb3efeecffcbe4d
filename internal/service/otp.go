// internal/service/otp.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dangerclosesec/onboarding/internal/auth"
	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/metrics"
	"github.com/dangerclosesec/onboarding/internal/otpstore"
	"github.com/dangerclosesec/onboarding/internal/repository"
	"github.com/go-playground/validator/v10"
)

const otpDigits = 4

type OTPConfig struct {
	TTL          time.Duration
	MaxAttempts  int
	MaxPerMinute int
}

type OTPRequestInput struct {
	Phone string `json:"phone" validate:"required,min=7,max=20"`
}

type OTPRequestOutput struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int       `json:"expires_in_seconds"`
}

type OTPVerifyInput struct {
	Phone string `json:"phone" validate:"required,min=7,max=20"`
	Code  string `json:"code" validate:"required,len=4,numeric"`
}

type OTPVerifyOutput struct {
	Verified bool `json:"verified"`
	// Records is the number of stored submissions marked verified.
	Records int64 `json:"records"`
}

// OTPService issues and checks single-use phone verification codes. Codes
// are stored only as argon2id hashes.
type OTPService struct {
	store    otpstore.Store
	hasher   *auth.Hasher
	sender   TextSender
	repo     repository.SubmissionRepositoryIface
	cfg      OTPConfig
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

func NewOTPService(
	store otpstore.Store,
	hasher *auth.Hasher,
	sender TextSender,
	repo repository.SubmissionRepositoryIface,
	cfg OTPConfig,
	logger *slog.Logger,
) *OTPService {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.MaxPerMinute <= 0 {
		cfg.MaxPerMinute = 3
	}
	return &OTPService{
		store:    store,
		hasher:   hasher,
		sender:   sender,
		repo:     repo,
		cfg:      cfg,
		logger:   logger,
		validate: newValidator(),
		now:      time.Now,
	}
}

// SetClock replaces the time source. Intended for tests.
func (s *OTPService) SetClock(now func() time.Time) {
	s.now = now
}

// Request generates a code for the phone, stores its hash and texts it.
// Requesting again replaces the pending code.
func (s *OTPService) Request(ctx context.Context, in OTPRequestInput) (*OTPRequestOutput, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	phone := NormalizePhone(in.Phone)

	n, err := s.store.CountRequest(ctx, phone, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("counting otp requests: %w", err)
	}
	if n > int64(s.cfg.MaxPerMinute) {
		return nil, domain.ErrOTPRateLimited
	}

	code, err := auth.GenerateCode(otpDigits)
	if err != nil {
		return nil, fmt.Errorf("generating otp: %w", err)
	}
	hash, err := s.hasher.Hash(code)
	if err != nil {
		return nil, fmt.Errorf("hashing otp: %w", err)
	}

	now := s.now().UTC()
	session := otpstore.Session{CodeHash: hash, CreatedAt: now, ExpiresAt: now.Add(s.cfg.TTL)}
	if err := s.store.Save(ctx, phone, session, s.cfg.TTL); err != nil {
		return nil, fmt.Errorf("saving otp session: %w", err)
	}

	message := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(s.cfg.TTL.Minutes()))
	if err := s.sender.SendText(ctx, phone, message); err != nil {
		return nil, fmt.Errorf("sending otp: %w", err)
	}

	metrics.RecordOTPGenerated()
	s.logger.InfoContext(ctx, "otp issued", "phone", phone, "expires_at", session.ExpiresAt)

	return &OTPRequestOutput{
		Phone:     phone,
		ExpiresAt: session.ExpiresAt,
		ExpiresIn: int(s.cfg.TTL.Seconds()),
	}, nil
}

// Verify checks code against the pending session. A correct code consumes the
// session and marks the phone's submissions verified. Too many wrong codes
// discard the session.
func (s *OTPService) Verify(ctx context.Context, in OTPVerifyInput) (*OTPVerifyOutput, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	phone := NormalizePhone(in.Phone)

	session, err := s.store.Get(ctx, phone)
	if errors.Is(err, otpstore.ErrNotFound) {
		metrics.RecordOTPVerified(false)
		return nil, domain.ErrOTPNotRequested
	}
	if err != nil {
		return nil, fmt.Errorf("loading otp session: %w", err)
	}

	now := s.now().UTC()
	if !now.Before(session.ExpiresAt) {
		_, _ = s.store.Consume(ctx, phone)
		metrics.RecordOTPVerified(false)
		return nil, domain.ErrOTPExpired
	}

	ok, err := s.hasher.Verify(in.Code, session.CodeHash)
	if err != nil {
		return nil, fmt.Errorf("checking otp: %w", err)
	}
	if !ok {
		metrics.RecordOTPVerified(false)
		attempts, err := s.store.IncrementAttempts(ctx, phone, session.ExpiresAt.Sub(now))
		if err != nil {
			return nil, fmt.Errorf("counting otp attempts: %w", err)
		}
		if attempts >= int64(s.cfg.MaxAttempts) {
			_, _ = s.store.Consume(ctx, phone)
			s.logger.WarnContext(ctx, "otp attempts exhausted", "phone", phone)
			return nil, domain.ErrOTPAttemptsExceeded
		}
		return nil, domain.ErrInvalidOTP
	}

	consumed, err := s.store.Consume(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("consuming otp session: %w", err)
	}
	if !consumed {
		// Another verification used the code first.
		metrics.RecordOTPVerified(false)
		return nil, domain.ErrOTPNotRequested
	}
	metrics.RecordOTPVerified(true)

	// Submissions keep the phone as typed; try that first, then the
	// normalised form.
	raw := strings.TrimSpace(in.Phone)
	records, err := s.repo.MarkOTPVerified(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("marking submissions verified: %w", err)
	}
	if records == 0 && phone != raw {
		if records, err = s.repo.MarkOTPVerified(ctx, phone); err != nil {
			return nil, fmt.Errorf("marking submissions verified: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "otp verified", "phone", phone, "records", records)
	return &OTPVerifyOutput{Verified: true, Records: records}, nil
}

func (s *OTPService) validateInput(in any) error {
	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		verr := domain.NewValidationError()
		for _, fe := range fieldErrs {
			if fe.Field() == "code" {
				verr.Add("code", "must be a 4 digit code")
				continue
			}
			verr.Add(fe.Field(), validationMessage(fe))
		}
		return verr
	}
	return nil
}
