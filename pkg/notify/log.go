package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes the code to the log instead of delivering it. Development
// mode only.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendOTP(ctx context.Context, email, phone, code string) error {
	s.logger.Info("sending OTP",
		zap.String("email", email),
		zap.String("phone", phone),
		zap.String("otp", code),
	)
	return nil
}
