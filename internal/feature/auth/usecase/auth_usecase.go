package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shadowdark_backend/internal/feature/auth/domain/entity"
)

// MaxSessionsPerUser caps live sessions; the oldest is evicted to make room.
const MaxSessionsPerUser = 5

// UserRepository abstracts the users table.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// UpsertByIdentity creates the user for (provider, subject) or refreshes
	// the stored email, display name and avatar.
	UpsertByIdentity(ctx context.Context, id entity.ExternalIdentity) (*entity.User, error)

	// FindByID returns ErrUserNotFound when the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// IdentityProvider runs the authorization-code flow against an OAuth provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (entity.ExternalIdentity, error)
}

// StateStore issues single-use OAuth state values.
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	// Consume returns an error when state was never issued, expired or already used.
	Consume(ctx context.Context, state string) error
}

// TokenGenerator signs access tokens.
type TokenGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
	TTL() time.Duration
}

// ProfileProvisioner creates the application profile on first sign-in.
type ProfileProvisioner interface {
	EnsureProfile(ctx context.Context, userID uint, displayName string, avatarURL *string) error
}

// Tokens is what a successful sign-in or refresh hands back to the client.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// ClientInfo is recorded on each session for auditing.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type authUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	provider   IdentityProvider
	states     StateStore
	tokens     TokenGenerator
	profiles   ProfileProvisioner
	refreshTTL time.Duration
	log        *zap.Logger
	now        func() time.Time
}

// NewAuthUsecase wires the sign-in flow.
func NewAuthUsecase(
	users UserRepository,
	sessions SessionRepository,
	provider IdentityProvider,
	states StateStore,
	tokens TokenGenerator,
	profiles ProfileProvisioner,
	refreshTTL time.Duration,
	log *zap.Logger,
) *authUsecase {
	return &authUsecase{
		users:      users,
		sessions:   sessions,
		provider:   provider,
		states:     states,
		tokens:     tokens,
		profiles:   profiles,
		refreshTTL: refreshTTL,
		log:        log,
		now:        time.Now,
	}
}

// BeginSignIn returns the provider URL the browser should be redirected to.
func (u *authUsecase) BeginSignIn(ctx context.Context) (string, error) {
	state, err := u.states.Issue(ctx)
	if err != nil {
		return "", fmt.Errorf("issue oauth state: %w", err)
	}
	return u.provider.AuthCodeURL(state), nil
}

// CompleteSignIn handles the provider callback: it verifies state, exchanges
// the code, upserts the user, makes sure a profile exists and opens a session.
func (u *authUsecase) CompleteSignIn(ctx context.Context, state, code string, client ClientInfo) (*Tokens, error) {
	if err := u.states.Consume(ctx, state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	ident, err := u.provider.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderExchange, err)
	}

	user, err := u.users.UpsertByIdentity(ctx, ident)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	if err := u.profiles.EnsureProfile(ctx, user.ID, user.DisplayName, user.AvatarURL); err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	u.log.Info("user signed in", zap.Uint("user_id", user.ID), zap.String("provider", user.Provider))
	return u.openSession(ctx, user, client)
}

// Refresh rotates a refresh token. Presenting a revoked token revokes every
// session of its user.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*Tokens, error) {
	s, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if s.IsRevoked() {
		u.log.Warn("revoked refresh token presented", zap.Uint("user_id", s.UserID))
		if err := u.sessions.RevokeAllByUserID(ctx, s.UserID); err != nil {
			return nil, err
		}
		return nil, ErrSessionRevoked
	}
	if s.IsExpired(u.now()) {
		return nil, ErrSessionExpired
	}

	if err := u.sessions.Revoke(ctx, s.ID); err != nil {
		return nil, err
	}

	user, err := u.users.FindByID(ctx, s.UserID)
	if err != nil {
		return nil, err
	}
	return u.openSession(ctx, user, client)
}

// Logout revokes the session behind refreshToken. Unknown tokens are ignored.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	err := u.sessions.Revoke(ctx, refreshToken)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}

// PurgeExpiredSessions deletes expired sessions. It runs on a schedule.
func (u *authUsecase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := u.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		u.log.Info("purged expired sessions", zap.Int64("count", n))
	}
	return n, nil
}

func (u *authUsecase) openSession(ctx context.Context, user *entity.User, client ClientInfo) (*Tokens, error) {
	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for ; count >= MaxSessionsPerUser; count-- {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	now := u.now()
	s := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.refreshTTL),
	}
	if err := u.sessions.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	access, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Tokens{AccessToken: access, RefreshToken: refresh, ExpiresIn: u.tokens.TTL()}, nil
}

// newRefreshToken returns 32 random bytes as a 64-character hex string.
func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
