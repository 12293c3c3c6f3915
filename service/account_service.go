package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"knoyosta-backend/models"

	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence contract the account service needs
type UserStore interface {
	Upsert(ctx context.Context, user *models.User) error
}

// AccountService handles seeker registration
type AccountService struct {
	users UserStore
}

// AccountServiceOption is a functional option for AccountService
type AccountServiceOption func(*AccountService)

// WithUserStore sets the user store
func WithUserStore(store UserStore) AccountServiceOption {
	return func(s *AccountService) {
		s.users = store
	}
}

// NewAccountService creates a new account service
func NewAccountService(opts ...AccountServiceOption) *AccountService {
	s := &AccountService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterRequest represents a request to register a seeker
type RegisterRequest struct {
	Email     string
	Password  string
	BirthDate string // ISO-8601 "YYYY-MM-DD"
}

// RegisterResult represents the outcome of a successful registration
type RegisterResult struct {
	SunSign models.SunSign
}

// Register validates the request, derives the sun sign from the birth date,
// hashes the password and upserts the user keyed by email. Registration is
// idempotent: repeating it with the same email overwrites the stored profile.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if s.users == nil {
		return nil, errors.New("user store not set")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" || req.BirthDate == "" {
		return nil, ErrInvalidInput
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, ErrInvalidInput
	}

	sign := models.ResolveSunSign(birthDate.Day(), int(birthDate.Month()))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		BirthDate:    birthDate.Format("2006-01-02"),
		SunSign:      sign,
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		log.Printf("user upsert failed for %s: %v", email, err)
		return nil, ErrUpstreamUnavailable
	}

	return &RegisterResult{SunSign: sign}, nil
}
