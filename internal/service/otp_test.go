package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/dangerclosesec/onboarding/internal/cache"
	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/mocks"
	"github.com/dangerclosesec/onboarding/internal/otpstore"
	"github.com/dangerclosesec/onboarding/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var codePattern = regexp.MustCompile(`\b\d{4}\b`)

type otpFixture struct {
	svc   *service.OTPService
	repo  *mocks.MockSubmissionRepositoryIface
	texts *mocks.MockTextSender
	codes []string
}

func newOTPFixture(t *testing.T, cfg service.OTPConfig) *otpFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &otpFixture{
		repo:  mocks.NewMockSubmissionRepositoryIface(ctrl),
		texts: mocks.NewMockTextSender(ctrl),
	}
	store := otpstore.NewMemoryStore(cache.NewInMemoryCache(time.Minute, 0))
	f.svc = service.NewOTPService(store, fastHasher(), f.texts, f.repo, cfg, discardLogger())
	return f
}

// request issues a code and returns it as texted.
func (f *otpFixture) request(t *testing.T, phone string) string {
	t.Helper()
	f.texts.EXPECT().SendText(gomock.Any(), service.NormalizePhone(phone), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, message string) error {
			f.codes = append(f.codes, codePattern.FindString(message))
			return nil
		})

	out, err := f.svc.Request(context.Background(), service.OTPRequestInput{Phone: phone})
	require.NoError(t, err)
	require.NotEmpty(t, f.codes)
	assert.Equal(t, service.NormalizePhone(phone), out.Phone)
	return f.codes[len(f.codes)-1]
}

func wrongCode(code string) string {
	if code == "0000" {
		return "1111"
	}
	return "0000"
}

func TestOTPService_RequestAndVerify(t *testing.T) {
	f := newOTPFixture(t, service.OTPConfig{})
	phone := "+1 (555) 555-0100"

	code := f.request(t, phone)
	assert.Len(t, code, 4)

	gomock.InOrder(
		f.repo.EXPECT().MarkOTPVerified(gomock.Any(), phone).Return(int64(0), nil),
		f.repo.EXPECT().MarkOTPVerified(gomock.Any(), "+15555550100").Return(int64(2), nil),
	)

	out, err := f.svc.Verify(context.Background(), service.OTPVerifyInput{Phone: phone, Code: code})
	require.NoError(t, err)
	assert.True(t, out.Verified)
	assert.Equal(t, int64(2), out.Records)

	t.Run("code is single use", func(t *testing.T) {
		_, err := f.svc.Verify(context.Background(), service.OTPVerifyInput{Phone: phone, Code: code})
		assert.ErrorIs(t, err, domain.ErrOTPNotRequested)
	})
}

func TestOTPService_RequestReportsExpiry(t *testing.T) {
	f := newOTPFixture(t, service.OTPConfig{TTL: 5 * time.Minute})
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	f.svc.SetClock(func() time.Time { return fixed })

	f.texts.EXPECT().SendText(gomock.Any(), "5555550100", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, message string) error {
			assert.Contains(t, message, "expires in 5 minutes")
			return nil
		})

	out, err := f.svc.Request(context.Background(), service.OTPRequestInput{Phone: "555-555-0100"})
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(5*time.Minute), out.ExpiresAt)
	assert.Equal(t, 300, out.ExpiresIn)
}

func TestOTPService_VerifyFailures(t *testing.T) {
	ctx := context.Background()
	phone := "5555550100"

	t.Run("not requested", func(t *testing.T) {
		f := newOTPFixture(t, service.OTPConfig{})
		_, err := f.svc.Verify(ctx, service.OTPVerifyInput{Phone: phone, Code: "1234"})
		assert.ErrorIs(t, err, domain.ErrOTPNotRequested)
	})

	t.Run("malformed code", func(t *testing.T) {
		f := newOTPFixture(t, service.OTPConfig{})
		_, err := f.svc.Verify(ctx, service.OTPVerifyInput{Phone: phone, Code: "12a4"})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must be a 4 digit code", verr.Fields["code"])
	})

	t.Run("wrong code", func(t *testing.T) {
		f := newOTPFixture(t, service.OTPConfig{})
		code := f.request(t, phone)

		_, err := f.svc.Verify(ctx, service.OTPVerifyInput{Phone: phone, Code: wrongCode(code)})
		assert.ErrorIs(t, err, domain.ErrInvalidOTP)

		f.repo.EXPECT().MarkOTPVerified(gomock.Any(), phone).Return(int64(1), nil)
		out, err := f.svc.Verify(ctx, service.OTPVerifyInput{Phone: phone, Code: code})
		require.NoError(t, err)
		assert.True(t, out.Verified)
	})

	t.Run("attempts exhausted discard the code", func(t *testing.T) {
		f := newOTPFixture(t, service.OTPConfig{MaxAttempts: 2})
		code := f.request(t, phone)

		_, err := f.svc.Verify(ctx, service.OTPVerifyInput{Phone: phone, Code: wrongCode(code)})
		assert.ErrorIs(t, err, domain.ErrInvalidOTP)
		_, err = f.svc.Verify(ctx, service.OTPVerifyInput{Phone: phone, Code: wrongCode(code)})
		assert.ErrorIs(t, err, domain.ErrOTPAttemptsExceeded)

		_, err = f.svc.Verify(ctx, service.OTPVerifyInput{Phone: phone, Code: code})
		assert.ErrorIs(t, err, domain.ErrOTPNotRequested)
	})

	t.Run("expired", func(t *testing.T) {
		f := newOTPFixture(t, service.OTPConfig{TTL: time.Minute})
		code := f.request(t, phone)

		f.svc.SetClock(func() time.Time { return time.Now().Add(2 * time.Minute) })
		_, err := f.svc.Verify(ctx, service.OTPVerifyInput{Phone: phone, Code: code})
		assert.ErrorIs(t, err, domain.ErrOTPExpired)
	})

	t.Run("new request replaces the pending code", func(t *testing.T) {
		f := newOTPFixture(t, service.OTPConfig{})
		first := f.request(t, phone)
		second := f.request(t, phone)
		if first == second {
			t.Skip("both requests drew the same code")
		}

		_, err := f.svc.Verify(ctx, service.OTPVerifyInput{Phone: phone, Code: first})
		assert.ErrorIs(t, err, domain.ErrInvalidOTP)
	})
}

func TestOTPService_RequestRateLimited(t *testing.T) {
	f := newOTPFixture(t, service.OTPConfig{MaxPerMinute: 1})
	phone := "5555550100"

	f.request(t, phone)

	_, err := f.svc.Request(context.Background(), service.OTPRequestInput{Phone: "555 555 0100"})
	assert.ErrorIs(t, err, domain.ErrOTPRateLimited)
}
