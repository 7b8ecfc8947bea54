package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrMemberExists = errors.New("a member with this email already exists")

// uniqueViolation is the PostgreSQL error code for a duplicate key.
const uniqueViolation = "23505"

// CreateMember inserts a new member with an already hashed password.
func (s *SiteDB) CreateMember(ctx context.Context, email, name, passwordHash string) (*models.Member, error) {
	if s.DB == nil {
		return nil, ErrNotConnected
	}

	member := models.Member{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		Verified:  true,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO members (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		member.ID, member.Email, member.Name, passwordHash, member.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrMemberExists
		}
		return nil, fmt.Errorf("error inserting member: %w", err)
	}

	s.Log.Debug().Str("member_id", member.ID.String()).Msg("Member created")
	return &member, nil
}

// GetMemberByEmail returns the member and its password hash. A missing member yields nil and no error.
func (s *SiteDB) GetMemberByEmail(ctx context.Context, email string) (*models.Member, string, error) {
	if s.DB == nil {
		return nil, "", ErrNotConnected
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at FROM members WHERE email = $1`, email)

	var m models.Member
	var hash string
	if err := row.Scan(&m.ID, &m.Email, &m.Name, &hash, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("error scanning member: %w", err)
	}
	m.Verified = true

	return &m, hash, nil
}

// GetMember retrieves a single member. A missing member yields nil and no error.
func (s *SiteDB) GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	if s.DB == nil {
		return nil, ErrNotConnected
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT id, email, name, created_at FROM members WHERE id = $1`, id)

	var m models.Member
	if err := row.Scan(&m.ID, &m.Email, &m.Name, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning member: %w", err)
	}
	m.Verified = true

	return &m, nil
}
