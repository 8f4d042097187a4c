package token

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/users"
)

var (
	ErrInvalidToken = fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	ErrTokenExpired = fmt.Errorf("token expired: %w", apperrors.ErrUnauthorized)
)

// Issuer mints and verifies access tokens.
type Issuer struct {
	signer  Signer
	expiry  time.Duration
	nowTime func() time.Time
}

// IssuerOption defines a function type to modify the Issuer instance.
type IssuerOption func(*Issuer)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowTime = nowFunc
	}
}

func NewIssuer(signer Signer, expiry time.Duration, options ...IssuerOption) (*Issuer, error) {
	if signer == nil {
		return nil, errors.New("[NewIssuer] signer is required")
	}
	if expiry <= 0 {
		return nil, errors.New("[NewIssuer] expiry must be positive")
	}
	i := &Issuer{
		signer:  signer,
		expiry:  expiry,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(i)
	}
	return i, nil
}

// Expiry is the lifetime of every issued token.
func (i *Issuer) Expiry() time.Duration {
	return i.expiry
}

// Issue signs a token for user carrying scopes. The scopes are copied, later
// changes to the caller's slice or to the API key do not affect the token.
func (i *Issuer) Issue(user *users.User, scopes []string) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("[Issue] user with an id is required")
	}
	now := i.nowTime()
	if scopes == nil {
		scopes = []string{}
	}
	claims := &Claims{
		Name:   user.Name,
		Email:  user.Email,
		Scopes: slices.Clone(scopes),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}
	signed, err := i.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("[Issue] %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of rawToken and returns its claims.
func (i *Issuer) Verify(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(rawToken, claims, i.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.nowTime),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
