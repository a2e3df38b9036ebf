// Package auth verifies credentials. It knows nothing about sessions; the
// HTTP layer stores the returned Principal.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"parfumai/models"
)

var (
	// ErrInvalidCredentials is returned when no verifier accepts the credentials.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrSignupUnavailable is returned when accounts cannot be created.
	ErrSignupUnavailable = errors.New("auth: signup unavailable")
	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("auth: email already registered")
)

// StaticOwnerPrefix marks owner ids of the configured static account.
const StaticOwnerPrefix = "static:"

// Principal is an authenticated identity. ID doubles as the hosted store owner id.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Verifier checks an identifier and password.
type Verifier interface {
	Verify(ctx context.Context, identifier, password string) (Principal, error)
}

// StaticVerifier accepts a single configured username with a bcrypt hash.
type StaticVerifier struct {
	Username     string
	PasswordHash string
}

// Verify implements Verifier.
func (v StaticVerifier) Verify(_ context.Context, identifier, password string) (Principal, error) {
	if v.Username == "" || v.PasswordHash == "" {
		return Principal{}, ErrInvalidCredentials
	}
	identifier = strings.TrimSpace(identifier)
	if subtle.ConstantTimeCompare([]byte(strings.ToLower(identifier)), []byte(strings.ToLower(v.Username))) != 1 {
		return Principal{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password)); err != nil {
		return Principal{}, ErrInvalidCredentials
	}
	return Principal{ID: StaticOwnerPrefix + v.Username, Name: v.Username}, nil
}

// DatabaseVerifier checks credentials against the users table. The
// identifier is the email address.
type DatabaseVerifier struct {
	DB *gorm.DB
}

// Verify implements Verifier.
func (v DatabaseVerifier) Verify(ctx context.Context, identifier, password string) (Principal, error) {
	if v.DB == nil {
		return Principal{}, ErrInvalidCredentials
	}
	user, err := findUserByEmail(ctx, v.DB, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Principal{}, ErrInvalidCredentials
		}
		return Principal{}, fmt.Errorf("auth: load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Principal{}, ErrInvalidCredentials
	}
	return principalFor(user), nil
}

// Chain tries each verifier in order and returns the first acceptance.
// Errors other than ErrInvalidCredentials stop the chain.
type Chain []Verifier

// Verify implements Verifier.
func (c Chain) Verify(ctx context.Context, identifier, password string) (Principal, error) {
	for _, verifier := range c {
		if verifier == nil {
			continue
		}
		principal, err := verifier.Verify(ctx, identifier, password)
		if err == nil {
			return principal, nil
		}
		if !errors.Is(err, ErrInvalidCredentials) {
			return Principal{}, err
		}
	}
	return Principal{}, ErrInvalidCredentials
}

// Signup creates a database user and returns its principal.
func Signup(ctx context.Context, db *gorm.DB, email, name, password string) (Principal, error) {
	if db == nil {
		return Principal{}, ErrSignupUnavailable
	}
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := findUserByEmail(ctx, db, email); err == nil {
		return Principal{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Principal{}, fmt.Errorf("auth: check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Principal{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hashed),
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return Principal{}, fmt.Errorf("auth: create user: %w", err)
	}
	return principalFor(user), nil
}

func findUserByEmail(ctx context.Context, db *gorm.DB, email string) (*models.User, error) {
	user := &models.User{}
	err := db.WithContext(ctx).Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func principalFor(user *models.User) Principal {
	name := user.Name
	if name == "" {
		name = user.Email
	}
	return Principal{ID: user.OwnerID(), Name: name, Email: user.Email}
}
