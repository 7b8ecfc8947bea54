package db

import (
	"context"
	"fmt"
	"time"

	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/google/uuid"
)

// CreateContactMessage stores a contact form submission.
func (s *SiteDB) CreateContactMessage(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error) {
	if s.DB == nil {
		return nil, ErrNotConnected
	}

	msg := models.ContactMessage{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting contact message: %w", err)
	}

	return &msg, nil
}

// ListContactMessages returns the most recent messages first.
func (s *SiteDB) ListContactMessages(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	if s.DB == nil {
		return nil, ErrNotConnected
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, email, message, created_at FROM contact_messages
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving contact messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning contact messages: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
