package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/shop_api/internal/hash"
	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/store"
	"github.com/Skotchmaster/shop_api/internal/tokens"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type AuthService struct {
	Users  UserStore
	Tokens *tokens.Service
}

type AuthResult struct {
	Token string
	User  *models.User
}

func (svc *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if email == "" || password == "" {
		return nil, validation("Email and password are required")
	}

	if _, err := svc.Users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		l.Error("register_error", "reason", "user lookup failed", "error", err)
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user, err := svc.Users.Create(ctx, &models.User{Email: email, PasswordHash: pwHash})
	if err != nil {
		// the unique index catches registrations racing past the lookup
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		l.Error("register_error", "reason", "cannot create user", "error", err)
		return nil, err
	}

	token, err := svc.Tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		l.Error("register_error", "reason", "cannot issue token", "error", err)
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (svc *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, validation("Email and password are required")
	}

	// unknown email and wrong password fail identically
	user, err := svc.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("login_error", "reason", "user lookup failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := svc.Tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		l.Error("login_error", "reason", "cannot issue token", "error", err)
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}
