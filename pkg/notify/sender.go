// Package notify delivers one-time codes out-of-band. The Sender capability
// is pluggable: SES for email, SNS for SMS, a zap-backed sender for
// development.
package notify

import (
	"context"
	"errors"
)

type Sender interface {
	SendOTP(ctx context.Context, email, phone, code string) error
}

// Multi fans one code out to every configured channel. Channel failures are
// joined so a dead SMS route does not hide a dead email route.
type Multi []Sender

func (m Multi) SendOTP(ctx context.Context, email, phone, code string) error {
	var errs []error
	for _, s := range m {
		if err := s.SendOTP(ctx, email, phone, code); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
