package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ireporter-ke/ireporter/internal/auth"
	"github.com/ireporter-ke/ireporter/internal/domain"
	"github.com/ireporter-ke/ireporter/internal/event"
	"github.com/ireporter-ke/ireporter/internal/storage"
)

// AccountService handles signup, login and logout.
type AccountService struct {
	accounts  storage.AccountRepository
	sessions  storage.SessionStore
	hasher    auth.Hasher
	publisher event.Publisher
}

func NewAccountService(
	accounts storage.AccountRepository,
	sessions storage.SessionStore,
	hasher auth.Hasher,
	publisher event.Publisher,
) *AccountService {
	return &AccountService{
		accounts:  accounts,
		sessions:  sessions,
		hasher:    hasher,
		publisher: publisher,
	}
}

// SignUpInput carries the raw signup field values.
type SignUpInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// SignUp validates all credential fields, aggregating every failure, then
// requires the email to be unused. A duplicate email is reported through the
// same ordered message list as the field failures, not as a distinct error
// kind. The account collection is only mutated when everything passed.
func (s *AccountService) SignUp(ctx context.Context, input SignUpInput) (*domain.Account, error) {
	account := domain.NewAccount(input.Email, input.Password)

	errs := domain.ValidationErrors{}
	if err := account.ValidateSignUp(input.ConfirmPassword); err != nil {
		var verrs domain.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		errs = append(errs, verrs...)
	}

	if _, err := s.accounts.FindByEmail(ctx, account.Email); err == nil {
		errs = append(errs, domain.MsgEmailTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if len(errs) > 0 {
		return nil, errs
	}

	stored, err := s.hasher.Hash(account.Password)
	if err != nil {
		return nil, err
	}
	account.Password = stored

	if _, err := s.accounts.Insert(ctx, account); err != nil {
		// Another signup can take the email between the availability check
		// and the insert; the collision surfaces the same message either way.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ValidationErrors{domain.MsgEmailTaken}
		}
		return nil, err
	}

	_ = s.publisher.Publish(ctx, domain.UserSignedUpEvent(account))

	return account, nil
}

// LoginInput carries the raw login credentials.
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
}

// Login checks the credential shapes first, then the account. A second login
// for an already-present session is a no-op success, keeping at most one
// session entry per account. On success the full session list is returned.
func (s *AccountService) Login(ctx context.Context, input LoginInput) ([]domain.Session, error) {
	if err := domain.ValidateCredentials(input.Email, input.Password); err != nil {
		return nil, err
	}

	// Accounts store their email trimmed; look it up the same way.
	account, err := s.accounts.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.hasher.Compare(account.Password, input.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			return nil, domain.ErrInvalidCredential
		}
		return nil, err
	}

	err = s.sessions.Add(ctx, domain.Session{Email: account.Email, ID: account.ID})
	if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, domain.UserLoggedInEvent(account, input.IPAddress))

	return s.sessions.List(ctx)
}

// Logout removes the session entry for the given account id.
// Returns ErrNotLoggedIn when no such session exists.
func (s *AccountService) Logout(ctx context.Context, id int) error {
	if err := s.sessions.Remove(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotLoggedIn
		}
		return err
	}

	_ = s.publisher.Publish(ctx, domain.UserLoggedOutEvent(id))

	return nil
}
