package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/rs/zerolog"
)

const (
	TokenKey  = "est.token"
	MemberKey = "est.member"
)

// ErrMissingCredentials is the only login failure shown to the user.
var ErrMissingCredentials = errors.New("inserisci email e password")

// Storage persists session values between runs.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(keys ...string) error
}

// AuthAPI is the remote side of the session. Implemented by apiclient.Client.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Me(ctx context.Context, token string) (*models.Member, error)
	Logout(ctx context.Context, token string) error
}

// Manager keeps the logged-in member in Storage. Remote failures never
// surface: they fall back to whatever can be kept or fabricated locally.
type Manager struct {
	API     AuthAPI
	Storage Storage
}

func NewManager(api AuthAPI, storage Storage) *Manager {
	return &Manager{API: api, Storage: storage}
}

// Init restores the session. A stored token is verified remotely; when
// that fails the cached member is kept, and without one the token is dropped.
func (m *Manager) Init(ctx context.Context) (*models.Member, error) {
	logger := zerolog.Ctx(ctx)

	cached, err := m.Current()
	if err != nil {
		return nil, err
	}

	token, ok, err := m.Storage.Get(TokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	if !ok || token == "" {
		return cached, nil
	}

	member, err := m.API.Me(ctx, token)
	if err == nil && member != nil && member.Email != "" {
		if err := m.storeMember(*member); err != nil {
			return nil, err
		}
		return member, nil
	}

	logger.Debug().Err(err).Msg("token verification failed")

	if cached != nil {
		return cached, nil
	}

	if err := m.Storage.Delete(TokenKey); err != nil {
		return nil, fmt.Errorf("failed to clear token: %w", err)
	}
	return nil, nil
}

// Login stores the member returned by the API or, if the call fails for
// any reason or names no member, one made up from the email alone.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.Member, error) {
	logger := zerolog.Ctx(ctx)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	auth, err := m.API.Login(ctx, email, password)
	if err == nil && auth != nil && auth.Token != "" && auth.Member.Email != "" {
		if err := m.Storage.Set(TokenKey, auth.Token); err != nil {
			return nil, fmt.Errorf("failed to store token: %w", err)
		}
		if err := m.storeMember(auth.Member); err != nil {
			return nil, err
		}
		return &auth.Member, nil
	}

	logger.Info().Err(err).Str("email", email).Msg("remote login failed, using local member")

	member := FallbackMember(email)
	if err := m.Storage.Delete(TokenKey); err != nil {
		return nil, fmt.Errorf("failed to clear token: %w", err)
	}
	if err := m.storeMember(member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Logout clears the token and member. The server is told about it when
// a token is held, but its answer does not matter.
func (m *Manager) Logout(ctx context.Context) error {
	if token, ok, err := m.Storage.Get(TokenKey); err == nil && ok && token != "" {
		if err := m.API.Logout(ctx, token); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("remote logout failed")
		}
	}

	if err := m.Storage.Delete(TokenKey, MemberKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current returns the cached member, or nil. Unreadable JSON is discarded.
func (m *Manager) Current() (*models.Member, error) {
	raw, ok, err := m.Storage.Get(MemberKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read member: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var member models.Member
	if err := json.Unmarshal([]byte(raw), &member); err != nil {
		if err := m.Storage.Delete(MemberKey); err != nil {
			return nil, fmt.Errorf("failed to clear member: %w", err)
		}
		return nil, nil
	}
	return &member, nil
}

func (m *Manager) storeMember(member models.Member) error {
	raw, err := json.Marshal(member)
	if err != nil {
		return fmt.Errorf("failed to encode member: %w", err)
	}
	if err := m.Storage.Set(MemberKey, string(raw)); err != nil {
		return fmt.Errorf("failed to store member: %w", err)
	}
	return nil
}

// FallbackMember builds an unverified member from an email address.
func FallbackMember(email string) models.Member {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return models.Member{Email: email, Name: name, Verified: false}
}
