package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/engineeringstudentstrieste/est-services/models"
)

const defaultTimeout = 10 * time.Second

// ErrNoMember is returned when a 2xx response does not identify a member.
var ErrNoMember = errors.New("api response carries no member")

// Client talks to the association API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Message string
	Status  int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Login exchanges credentials for a token and member.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	respBody, err := c.makeRequest(ctx, http.MethodPost, "/api/auth/login", "", body)
	if err != nil {
		return nil, err
	}

	var auth models.AuthResponse
	if err := json.Unmarshal(respBody, &auth); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if auth.Token == "" || auth.Member.Email == "" {
		return nil, ErrNoMember
	}
	return &auth, nil
}

// Register creates a member account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	respBody, err := c.makeRequest(ctx, http.MethodPost, "/api/auth/register", "", body)
	if err != nil {
		return nil, err
	}

	var auth models.AuthResponse
	if err := json.Unmarshal(respBody, &auth); err != nil {
		return nil, fmt.Errorf("failed to decode register response: %w", err)
	}
	return &auth, nil
}

// Me returns the member the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (*models.Member, error) {
	respBody, err := c.makeRequest(ctx, http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return nil, err
	}

	var me models.MemberResponse
	if err := json.Unmarshal(respBody, &me); err != nil {
		return nil, fmt.Errorf("failed to decode member response: %w", err)
	}
	if me.Member.Email == "" {
		return nil, ErrNoMember
	}
	return &me.Member, nil
}

// Logout revokes the token server-side.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.makeRequest(ctx, http.MethodPost, "/api/auth/logout", token, nil)
	return err
}

// SendContact submits a contact form message.
func (c *Client) SendContact(ctx context.Context, req models.ContactRequest) (*models.ContactResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	respBody, err := c.makeRequest(ctx, http.MethodPost, "/api/contact", "", body)
	if err != nil {
		return nil, err
	}

	var res models.ContactResponse
	if err := json.Unmarshal(respBody, &res); err != nil {
		return nil, fmt.Errorf("failed to decode contact response: %w", err)
	}
	return &res, nil
}

func (c *Client) makeRequest(ctx context.Context, method, path, token string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, &HTTPError{Message: errorMessage(respBody, resp.Status), Status: resp.StatusCode}
	}

	return respBody, nil
}

// errorMessage prefers the API's error_details over the raw body.
func errorMessage(body []byte, status string) string {
	var res models.Response
	if err := json.Unmarshal(body, &res); err == nil && res.ErrorDetails != "" {
		return res.ErrorDetails
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return status
}
