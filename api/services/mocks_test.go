package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAWSEmailClient struct {
	mock.Mock
}

type MockMemberStore struct {
	mock.Mock
}

func (m *MockAWSEmailClient) SendEmail(ctx context.Context, input *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	args := m.Called(ctx, input, opts)
	return args.Get(0).(*sesv2.SendEmailOutput), args.Error(1)
}

func (m *MockMemberStore) CreateMember(ctx context.Context, email, name, passwordHash string) (*models.Member, error) {
	args := m.Called(ctx, email, name, passwordHash)
	member, _ := args.Get(0).(*models.Member)
	return member, args.Error(1)
}

func (m *MockMemberStore) GetMemberByEmail(ctx context.Context, email string) (*models.Member, string, error) {
	args := m.Called(ctx, email)
	member, _ := args.Get(0).(*models.Member)
	return member, args.String(1), args.Error(2)
}

func (m *MockMemberStore) GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	args := m.Called(ctx, id)
	member, _ := args.Get(0).(*models.Member)
	return member, args.Error(1)
}

func (m *MockMemberStore) CreateContactMessage(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error) {
	args := m.Called(ctx, req)
	msg, _ := args.Get(0).(*models.ContactMessage)
	return msg, args.Error(1)
}

func (m *MockMemberStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
