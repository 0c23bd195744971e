// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-rag-auth/internal/config"
	"github.com/MKhiriev/go-rag-auth/internal/events"
	"github.com/MKhiriev/go-rag-auth/internal/logger"
	"github.com/MKhiriev/go-rag-auth/internal/store"
	"github.com/MKhiriev/go-rag-auth/internal/validators"
	"github.com/MKhiriev/go-rag-auth/models"
)

// dummyPassword is hashed once at construction. Signins for unknown emails
// are compared against it so they cost as much as a real password check.
const dummyPassword = "dummy-password-for-unknown-users"

// authService is the concrete implementation of AuthService.
// It composes the lockout guard, the token service and the credential store
// into the signup, signin, refresh, logout and current user flows.
type authService struct {
	userRepository  store.UserRepository
	tokenRepository store.TokenRepository

	tokens    TokenService
	lockout   LockoutGuard
	validator validators.Validator
	publisher events.Publisher

	bcryptCost          int
	dummyHash           []byte
	accessTokenDuration time.Duration

	// failureDelay is waited out on every failed signin, whatever the reason.
	failureDelay time.Duration

	now   func() time.Time
	delay func(ctx context.Context, d time.Duration) error

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. It fails only if the dummy hash
// cannot be computed with the configured bcrypt cost.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	storages *store.Storages,
	tokens TokenService,
	lockout LockoutGuard,
	publisher events.Publisher,
	cfg config.App,
	logger *logger.Logger,
	opts ...Option,
) (AuthService, error) {
	dummyHash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing dummy password: %w", err)
	}

	o := newOptions(opts...)
	return &authService{
		userRepository:      storages.UserRepository,
		tokenRepository:     storages.TokenRepository,
		tokens:              tokens,
		lockout:             lockout,
		validator:           validators.NewAuthValidator(),
		publisher:           publisher,
		bcryptCost:          cfg.BcryptCost,
		dummyHash:           dummyHash,
		accessTokenDuration: cfg.AccessTokenDuration,
		failureDelay:        cfg.FailureDelay,
		now:                 o.now,
		delay:               o.delay,
		logger:              logger,
	}, nil
}

// Signup registers a new account and signs it in.
//
// The request is validated before anything is written. User creation is the
// commit point: if storing the tokens fails afterwards the account stays and
// ErrStoreUnavailable is returned, the user can sign in later.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest, clientIP string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("signup request rejected")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.TokenPair{}, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(passwordHash),
		FullName:     strings.TrimSpace(req.FullName),
		IsActive:     true,
		CreatedAt:    a.now(),
	})
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.TokenPair{}, ErrDuplicateEmail
	case err != nil:
		log.Err(err).Msg("user creation ended with error")
		return models.TokenPair{}, storeUnavailable(err)
	}

	pair, err := a.startSession(ctx, user, clientIP)
	if err != nil {
		return models.TokenPair{}, err
	}

	a.publish(ctx, models.AuthEvent{
		Type:      models.EventUserSignedUp,
		UserID:    user.UserID,
		Email:     user.Email,
		IPAddress: clientIP,
	})

	log.Info().Int64("user_id", user.UserID).Msg("user signed up")
	return pair, nil
}

// Signin authenticates email and password.
//
// The lockout is checked before the user is looked up, so a locked email
// fails without its password being examined. Every failure branch records
// a failed attempt and waits the same failure delay.
func (a *authService) Signin(ctx context.Context, req models.SigninRequest, clientIP string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("signin request rejected")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	email := normalizeEmail(req.Email)

	status, err := a.lockout.Check(ctx, email)
	if err != nil {
		return models.TokenPair{}, err
	}
	if status.Locked {
		log.Warn().Str("email", email).Dur("retry_after", status.RetryAfter).Msg("signin blocked by lockout")
		a.publish(ctx, models.AuthEvent{Type: models.EventUserLockedOut, Email: email, IPAddress: clientIP})
		return models.TokenPair{}, a.fail(ctx, email, clientIP, &LockoutError{RetryAfter: status.RetryAfter})
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(req.Password))
		return models.TokenPair{}, a.fail(ctx, email, clientIP, ErrInvalidCredentials)
	case err != nil:
		log.Err(err).Msg("user search by email failed")
		return models.TokenPair{}, storeUnavailable(err)
	}

	if !user.IsActive {
		return models.TokenPair{}, a.fail(ctx, email, clientIP, ErrAccountDisabled)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug().Int64("user_id", user.UserID).Msg("wrong password")
		return models.TokenPair{}, a.fail(ctx, email, clientIP, ErrInvalidCredentials)
	}

	if err = a.lockout.Reset(ctx, email); err != nil {
		return models.TokenPair{}, err
	}

	pair, err := a.startSession(ctx, user, clientIP)
	if err != nil {
		return models.TokenPair{}, err
	}

	log.Info().Int64("user_id", user.UserID).Msg("user signed in")
	return pair, nil
}

// Refresh verifies a refresh token and mints a new access token for its
// still active owner. The refresh token is returned unchanged.
func (a *authService) Refresh(ctx context.Context, rawRefreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokens.Verify(ctx, rawRefreshToken, models.RefreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.userFromClaims(ctx, claims)
	if err != nil {
		return models.TokenPair{}, err
	}
	if !user.IsActive {
		return models.TokenPair{}, ErrInvalidCredentials
	}

	access, err := a.tokens.IssueAccess(ctx, user.UserID, user.Email)
	if err != nil {
		return models.TokenPair{}, err
	}
	if err = a.tokenRepository.StoreToken(ctx, user.UserID, access); err != nil {
		log.Err(err).Msg("error storing access token")
		return models.TokenPair{}, storeUnavailable(err)
	}

	return a.tokenPair(access.String(), rawRefreshToken), nil
}

// Logout revokes the given tokens. Revoking is unconditional: expired,
// malformed and unknown tokens are deleted as no-ops.
func (a *authService) Logout(ctx context.Context, rawTokens ...string) error {
	for _, raw := range rawTokens {
		if raw == "" {
			continue
		}
		if err := a.tokenRepository.Revoke(ctx, raw); err != nil {
			logger.FromContext(ctx).Err(err).Msg("error revoking token")
			return storeUnavailable(err)
		}
	}

	return nil
}

// Authenticate verifies an access token and returns its active owner.
func (a *authService) Authenticate(ctx context.Context, rawAccessToken string) (models.User, error) {
	claims, err := a.tokens.Verify(ctx, rawAccessToken, models.AccessToken)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userFromClaims(ctx, claims)
	if err != nil {
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, ErrAccountDisabled
	}

	return user, nil
}

// CurrentUser returns the public profile of the access token's owner.
func (a *authService) CurrentUser(ctx context.Context, rawAccessToken string) (models.UserProfile, error) {
	user, err := a.Authenticate(ctx, rawAccessToken)
	if err != nil {
		return models.UserProfile{}, err
	}

	return user.Profile(), nil
}

// Deactivate clears the active flag of the user and revokes every token
// issued to them. The user row is kept.
func (a *authService) Deactivate(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	err := a.userRepository.DeactivateUser(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrInvalidCredentials
	case err != nil:
		log.Err(err).Int64("user_id", userID).Msg("error deactivating user")
		return storeUnavailable(err)
	}

	if err = a.tokenRepository.RevokeAllForUser(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error revoking user tokens")
		return storeUnavailable(err)
	}

	a.publish(ctx, models.AuthEvent{Type: models.EventUserDeactivated, UserID: userID})

	log.Info().Int64("user_id", userID).Msg("user deactivated")
	return nil
}

// startSession issues and stores a token pair, then stamps the login.
func (a *authService) startSession(ctx context.Context, user models.User, clientIP string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	access, err := a.tokens.IssueAccess(ctx, user.UserID, user.Email)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := a.tokens.IssueRefresh(ctx, user.UserID, user.Email)
	if err != nil {
		return models.TokenPair{}, err
	}

	for _, token := range []models.Token{access, refresh} {
		if err = a.tokenRepository.StoreToken(ctx, user.UserID, token); err != nil {
			log.Err(err).Int64("user_id", user.UserID).Msg("error storing token")
			return models.TokenPair{}, storeUnavailable(err)
		}
	}

	if err = a.userRepository.TouchLastLogin(ctx, user.UserID, a.now()); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error updating last login")
		return models.TokenPair{}, storeUnavailable(err)
	}

	if err = a.lockout.Record(ctx, user.Email, clientIP, true); err != nil {
		return models.TokenPair{}, err
	}

	return a.tokenPair(access.String(), refresh.String()), nil
}

// fail records a failed attempt, waits the failure delay and returns cause.
// A store failure while recording takes precedence over cause.
func (a *authService) fail(ctx context.Context, email, clientIP string, cause error) error {
	if err := a.lockout.Record(ctx, email, clientIP, false); err != nil {
		return err
	}

	_ = a.delay(ctx, a.failureDelay)
	return cause
}

func (a *authService) userFromClaims(ctx context.Context, claims models.Claims) (models.User, error) {
	userID, err := claims.GetUserID()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.User{}, ErrInvalidCredentials
	case err != nil:
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, storeUnavailable(err)
	}

	return user, nil
}

func (a *authService) tokenPair(access, refresh string) models.TokenPair {
	return models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    models.TokenTypeBearer,
		ExpiresIn:    int64(a.accessTokenDuration / time.Second),
	}
}

// publish sends an audit event. Failures are logged and never change the
// outcome of the operation.
func (a *authService) publish(ctx context.Context, event models.AuthEvent) {
	event.OccurredAt = a.now().UTC()
	if err := a.publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("event", string(event.Type)).Msg("error publishing auth event")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
