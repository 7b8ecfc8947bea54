package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/rs/zerolog"
)

// ContactService stores a contact form message and forwards it by email when configured.
func (svc *Service) ContactService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	var req models.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid contact payload")
		HandleErrResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request payload"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := validate.Struct(req); err != nil {
		HandleErrResponse(w, http.StatusBadRequest, validationError(err))
		return
	}

	msg, err := svc.DB.CreateContactMessage(r.Context(), req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to store contact message")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info().Str("message_id", msg.ID.String()).Msg("Contact message stored")

	// Notification failures are not the sender's problem
	if err := svc.notifyContact(r.Context(), *msg); err != nil {
		logger.Error().Err(err).Str("message_id", msg.ID.String()).Msg("Failed to send contact notification")
	}

	WriteResponse(w, http.StatusCreated, models.ContactResponse{ID: msg.ID})
}

func (svc *Service) notifyContact(ctx context.Context, msg models.ContactMessage) error {
	if svc.Email == nil || svc.Config == nil || !svc.Config.Contact.EmailEnabled() {
		return nil
	}

	body := fmt.Sprintf("Nuovo messaggio dal sito\n\nNome: %s\nEmail: %s\n\n%s\n", msg.Name, msg.Email, msg.Message)

	_, err := svc.Email.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(svc.Config.Contact.Sender),
		Destination: &types.Destination{
			ToAddresses: []string{svc.Config.Contact.Recipient},
		},
		ReplyToAddresses: []string{msg.Email},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String("Contatto dal sito: " + msg.Name)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
