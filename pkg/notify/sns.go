package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSSender delivers OTP codes by SMS through Amazon SNS.
type SNSSender struct {
	client *sns.Client
}

func NewSNSSender(cfg aws.Config) *SNSSender {
	return &SNSSender{client: sns.NewFromConfig(cfg)}
}

func (s *SNSSender) SendOTP(ctx context.Context, email, phone, code string) error {
	message := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)

	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to send OTP SMS: %w", err)
	}
	return nil
}
