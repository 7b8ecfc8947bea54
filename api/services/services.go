package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/engineeringstudentstrieste/est-services/internal/appconfig"
	"github.com/engineeringstudentstrieste/est-services/internal/authn"
	"github.com/engineeringstudentstrieste/est-services/internal/content"
	"github.com/engineeringstudentstrieste/est-services/internal/revocation"
	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/google/uuid"
)

// MemberStore is the persistence the API needs. Implemented by db.SiteDB.
type MemberStore interface {
	CreateMember(ctx context.Context, email, name, passwordHash string) (*models.Member, error)
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, string, error)
	GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error)
	CreateContactMessage(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error)
	Ping(ctx context.Context) error
}

// EmailClient is the subset of the SES v2 client used for notifications.
type EmailClient interface {
	SendEmail(ctx context.Context, input *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config  *appconfig.Config
	DB      MemberStore
	Tokens  *authn.TokenIssuer
	Revoker revocation.Revoker
	Email   EmailClient
	Content *content.Site
}
