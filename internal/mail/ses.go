package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESMailer sends mail through Amazon SES v2 as a raw message, so
// attachments work exactly as they do over SMTP.
type SESMailer struct {
	client   sesAPI
	fromName string
	fromAddr string
	logger   *zap.Logger
}

// NewSESMailer wraps an SES v2 client.
func NewSESMailer(client *sesv2.Client, fromName, fromAddr string, logger *zap.Logger) *SESMailer {
	return &SESMailer{client: client, fromName: fromName, fromAddr: fromAddr, logger: logger}
}

// Send delivers the message via the SES SendEmail raw path.
func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}

	raw := buildMIME(m.fromName, m.fromAddr, msg)
	out, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.fromAddr),
		Destination:      &types.Destination{ToAddresses: msg.To},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("ses delivery failed: %w", err)
	}

	m.logger.Info("Email sent",
		zap.String("transport", "ses"),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("messageId", aws.ToString(out.MessageId)))
	return nil
}
