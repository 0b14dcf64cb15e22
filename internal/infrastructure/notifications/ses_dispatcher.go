package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"estate-hub.backend/internal/domain/notifications"
	domainRepos "estate-hub.backend/internal/domain/repositories"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/google/uuid"
)

var subjects = map[string]string{
	notifications.EventOfferReceived:  "You received a new offer",
	notifications.EventOfferApproved:  "Your offer was approved",
	notifications.EventOfferRejected:  "Your offer was rejected",
	notifications.EventOfferWithdrawn: "An offer was withdrawn",
	notifications.EventOfferExpired:   "Your offer expired",
}

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESDispatcher delivers notifications as email through AWS SES. Recipient
// addresses are resolved from the user store.
type SESDispatcher struct {
	client   sesAPI
	userRepo domainRepos.UserRepository
	sender   string
}

func NewSESDispatcher(ctx context.Context, region, sender string, userRepo domainRepos.UserRepository) (*SESDispatcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESDispatcher{
		client:   ses.NewFromConfig(cfg),
		userRepo: userRepo,
		sender:   sender,
	}, nil
}

func (d *SESDispatcher) Notify(ctx context.Context, recipientID uuid.UUID, eventType string, payload map[string]interface{}) error {
	user, err := d.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("resolve recipient %s: %w", recipientID, err)
	}

	subject, ok := subjects[eventType]
	if !ok {
		subject = "Update on your property activity"
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	_, err = d.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(d.sender),
		Destination: &types.Destination{
			ToAddresses: []string{user.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(string(body))},
			},
		},
	})
	return err
}
