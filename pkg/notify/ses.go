package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESSender delivers OTP codes by email through Amazon SES.
type SESSender struct {
	client *sesv2.Client
	from   string
}

func NewSESSender(cfg aws.Config, from string) *SESSender {
	return &SESSender{
		client: sesv2.NewFromConfig(cfg),
		from:   from,
	}
}

func (s *SESSender) SendOTP(ctx context.Context, email, phone, code string) error {
	subject := "Your verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}
