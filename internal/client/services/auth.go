// Package services contains application services for the moviecat client.
// This file defines the authentication service: login, registration, logout
// and restoring the session at startup.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moviecat/internal/client/client"
	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/dmitrijs2005/moviecat/internal/common"
	"github.com/dmitrijs2005/moviecat/internal/logging"
)

// incorrectCredentialsMessage is the exact text the movie service sends for a
// wrong password. Nothing else in the client depends on it.
const incorrectCredentialsMessage = "Incorrect email or password"

var (
	ErrIncorrectCredentials = errors.New("incorrect credentials")
	ErrUserNotFound         = errors.New("user not found")
)

// ClassifyLoginFailure maps the service message of a refused login onto one
// of the two login failure errors.
func ClassifyLoginFailure(message string) error {
	if message == incorrectCredentialsMessage {
		return ErrIncorrectCredentials
	}
	return ErrUserNotFound
}

// SessionStore is the part of session.Store the services depend on.
type SessionStore interface {
	Get() models.Session
	Load(ctx context.Context) (models.Session, error)
	SetCredential(ctx context.Context, token string) error
	SetAuthenticated(ctx context.Context, userID string, isAdmin bool, token string) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a token, store it, then resolve and
//     store the identity behind it.
//   - Register: create a new account on the server. Nothing is stored locally.
//   - Logout: forget the session.
//   - Bootstrap: rebuild the session from local storage at startup.
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (models.Session, error)
	Register(ctx context.Context, reg models.Registration) error
	Logout(ctx context.Context) error
	Bootstrap(ctx context.Context) (models.Session, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client  client.Client
	store   SessionStore
	log     logging.Logger
	trusted bool
}

// NewAuthService constructs an AuthService. With trustCachedIdentity set,
// Bootstrap accepts a stored identity without asking the server.
func NewAuthService(c client.Client, store SessionStore, log logging.Logger, trustCachedIdentity bool) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{client: c, store: store, log: log, trusted: trustCachedIdentity}
}

// Login returns ErrIncorrectCredentials or ErrUserNotFound when the service
// refuses the credentials, and a client error when it cannot be reached.
//
// A credential that was issued is kept even when the identity lookup that
// follows fails; the returned session then carries only the token.
// The password slice is wiped before Login returns.
func (a *authService) Login(ctx context.Context, email string, password []byte) (models.Session, error) {
	defer common.WipeByteArray(password)

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) || errors.Is(err, client.ErrMalformedResponse) {
			return models.Session{}, fmt.Errorf("login error: %w", err)
		}
		return models.Session{}, fmt.Errorf("%w: %w", ClassifyLoginFailure(client.ServiceMessage(err)), err)
	}

	if err := a.store.SetCredential(ctx, token); err != nil {
		return models.Session{}, err
	}

	if err := a.resolveIdentity(ctx, token); err != nil {
		a.log.Warn(ctx, "user details not properly returned", "error", err)
	}
	return a.store.Get(), nil
}

// resolveIdentity asks the server who owns token and stores the answer.
func (a *authService) resolveIdentity(ctx context.Context, token string) error {
	u, err := a.client.Details(ctx)
	if err != nil {
		return fmt.Errorf("get user details: %w", err)
	}
	return a.store.SetAuthenticated(ctx, u.ID, u.IsAdmin, token)
}

// Register validates the form locally before any network call.
func (a *authService) Register(ctx context.Context, reg models.Registration) error {
	if reg.Password != reg.ConfirmPassword {
		return common.ErrPasswordMismatch
	}
	if err := models.Validate(reg); err != nil {
		return err
	}

	password := []byte(reg.Password)
	defer common.WipeByteArray(password)

	return a.client.Register(ctx, reg.Email, password)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

// Bootstrap never fails because of the network: a token that cannot be
// resolved to a user is dropped and the session comes back empty. Only local
// storage errors are returned.
func (a *authService) Bootstrap(ctx context.Context) (models.Session, error) {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return models.Session{}, err
	}

	switch {
	case !sess.HasToken():
		return sess, nil
	case sess.Authenticated() && a.trusted:
		a.log.Debug(ctx, "restored cached session", "user_id", sess.UserID)
		return sess, nil
	}

	if err := a.resolveIdentity(ctx, sess.Token); err != nil {
		a.log.Warn(ctx, "stored credential rejected, signing out", "error", err)
		if err := a.store.Clear(ctx); err != nil {
			return models.Session{}, err
		}
		return models.Session{}, nil
	}
	return a.store.Get(), nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
