package authn

import (
	"errors"
	"fmt"
	"time"

	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var ErrInvalidJWT = errors.New("invalid jwt token")
var ErrInvalidClaims = errors.New("invalid claims")

// Claims are carried by every member token. Subject holds the member ID
// and Id a unique token ID used for revocation.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// MemberID returns the member the token was issued to.
func (c Claims) MemberID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidClaims
	}
	return id, nil
}

// ExpiresAtTime returns the expiry as a time.
func (c Claims) ExpiresAtTime() time.Time {
	return time.Unix(c.StandardClaims.ExpiresAt, 0).UTC()
}

// TokenIssuer signs and verifies HS256 member tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration, issuer string) *TokenIssuer {
	return &TokenIssuer{
		secret: secret,
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue signs a new token for the member.
func (ti *TokenIssuer) Issue(member models.Member) (string, Claims, error) {
	now := ti.now().UTC()
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   member.ID.String(),
			Issuer:    ti.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ti.ttl).Unix(),
		},
		Email: member.Email,
		Name:  member.Name,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, claims, nil
}

// Parse verifies the signature, expiry and issuer of a token and returns its claims.
func (ti *TokenIssuer) Parse(token string) (Claims, error) {
	claims := Claims{}
	t, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil || t == nil || !t.Valid {
		return Claims{}, ErrInvalidJWT
	}

	if ti.issuer != "" && !claims.VerifyIssuer(ti.issuer, true) {
		return Claims{}, ErrInvalidClaims
	}
	if claims.Id == "" || claims.Subject == "" {
		return Claims{}, ErrInvalidClaims
	}
	return claims, nil
}
