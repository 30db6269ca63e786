package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/gucci1909/regis/internal/config"
	"github.com/gucci1909/regis/pkg/apperr"
	"github.com/gucci1909/regis/pkg/notify"
)

var (
	ErrInvalid     = apperr.New(apperr.Validation, "Invalid OTP")
	ErrAlreadyUsed = apperr.New(apperr.Validation, "OTP already used")
	ErrExpired     = apperr.New(apperr.Validation, "OTP expired")
)

type Service interface {
	Issue(ctx context.Context, email, phone string) error
	Verify(ctx context.Context, email, code string) error
}

type service struct {
	repo   Repository
	sender notify.Sender
	cfg    config.OTPConfig
	mode   config.Mode
	logger *zap.Logger
}

func NewService(repo Repository, sender notify.Sender, cfg config.OTPConfig, mode config.Mode, logger *zap.Logger) Service {
	return &service{repo: repo, sender: sender, cfg: cfg, mode: mode, logger: logger}
}

// Issue supersedes any previous codes for the email, stores a fresh one with
// a 5-minute expiry, and hands it to the delivery channel. Delivery is
// best-effort: the stored code stays valid even when the channel fails.
func (s *service) Issue(ctx context.Context, email, phone string) error {
	if email == "" || phone == "" {
		return apperr.New(apperr.Validation, "Email and phone are required")
	}

	code, err := s.generateCode()
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to generate OTP", err)
	}

	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to supersede previous OTPs", err)
	}

	now := time.Now().UTC()
	v := &Verification{
		Email:     email,
		Phone:     phone,
		OTP:       code,
		ExpiresAt: now.Add(s.cfg.TTL),
		Verified:  false,
		CreatedAt: now,
	}
	if err := s.repo.Insert(ctx, v); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to store OTP", err)
	}

	if err := s.sender.SendOTP(ctx, email, phone, code); err != nil {
		s.logger.Warn("OTP delivery failed",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return nil
}

func (s *service) Verify(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return apperr.New(apperr.Validation, "Email and OTP are required")
	}

	record, err := s.repo.FindByEmailAndCode(ctx, email, code)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up OTP", err)
	}
	if record == nil {
		return ErrInvalid
	}
	if record.Verified {
		return ErrAlreadyUsed
	}
	if record.ExpiresAt.Before(time.Now().UTC()) {
		return ErrExpired
	}

	if err := s.repo.MarkVerified(ctx, record.ID); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to consume OTP", err)
	}
	return nil
}

// generateCode returns a 6-digit code. Development mode always returns the
// fixed code so flows are deterministic to test against.
func (s *service) generateCode() (string, error) {
	if s.mode == config.ModeDevelopment {
		return s.cfg.DevCode, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
