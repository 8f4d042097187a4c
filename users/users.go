package users

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID              string    `json:"id,omitempty"`              // Unique identifier for the user
	Name            string    `json:"name,omitempty"`            // Display name
	Email           string    `json:"email,omitempty"`           // Email address, also the sign-in username
	PasswordHash    string    `json:"-"`                         // Hashed password - never serialize
	Provider        string    `json:"provider,omitempty"`        // Federated identity provider, e.g. "google"
	ProviderSubject string    `json:"providerSubject,omitempty"` // Subject at the federated provider
	IsAdmin         bool      `json:"isAdmin,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// PublicUser is the part of a user that is safe to hand to a browser.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// IsFederated reports whether the user was created through a provider login.
func (u *User) IsFederated() bool {
	return u.Provider != ""
}

// CreateUserRequest is the sign-up body.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if err := ValidatePasswordStrength(r.Password); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// ProviderProfile is the identity a federated provider vouched for.
type ProviderProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
	Subject  string `json:"providerSubject"`
}

func (p ProviderProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	return validateEmail(p.Email)
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}
	return nil
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches hash. An empty hash,
// as held by federated users, never matches.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
