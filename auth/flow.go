// Package auth runs the GitHub login handshake and binds the resulting access
// token to a signed session credential.
//
// A login moves through ANONYMOUS -> LOGIN_INITIATED (nonce issued) ->
// CALLBACK_RECEIVED (nonce consumed and compared) -> AUTHENTICATED (credential
// minted and stored) -> LOGGED_OUT. No session store entry exists until the
// code exchange and profile fetch have both succeeded.
package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jrsteele09/readme-writer/github"
	apperrors "github.com/jrsteele09/readme-writer/internal/errors"
	"github.com/jrsteele09/readme-writer/sessions"
	"github.com/jrsteele09/readme-writer/token"
	"github.com/rs/zerolog/log"
)

const (
	DefaultStateTTL   = 10 * time.Minute
	DefaultSessionTTL = 7 * 24 * time.Hour
)

// Provider is the upstream OAuth provider
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	FetchUser(ctx context.Context, accessToken string) (*github.User, error)
}

// User is the identity exposed to clients
type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// Session is an authenticated user together with their upstream token
type Session struct {
	User          User
	Credential    string
	UpstreamToken sessions.UpstreamToken
}

type LoginRedirect struct {
	URL         string
	StateCookie *http.Cookie
}

type CallbackResult struct {
	User          User
	SessionCookie *http.Cookie
	// ClearStateCookie is set on every outcome, including errors
	ClearStateCookie *http.Cookie
}

type Flow struct {
	provider   Provider
	issuer     *token.Issuer
	store      sessions.Store
	verify     NonceVerifier
	cookies    CookiePolicy
	stateTTL   time.Duration
	sessionTTL time.Duration
	random     io.Reader
}

type FlowOption func(*Flow)

func WithCookiePolicy(p CookiePolicy) FlowOption {
	return func(f *Flow) { f.cookies = p }
}

func WithStateTTL(ttl time.Duration) FlowOption {
	return func(f *Flow) { f.stateTTL = ttl }
}

func WithSessionTTL(ttl time.Duration) FlowOption {
	return func(f *Flow) { f.sessionTTL = ttl }
}

// WithRandReader replaces the nonce entropy source
func WithRandReader(r io.Reader) FlowOption {
	return func(f *Flow) { f.random = r }
}

func NewFlow(provider Provider, issuer *token.Issuer, store sessions.Store, opts ...FlowOption) *Flow {
	f := &Flow{
		provider:   provider,
		issuer:     issuer,
		store:      store,
		verify:     VerifyNonce,
		stateTTL:   DefaultStateTTL,
		sessionTTL: DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// InitiateLogin issues a fresh nonce and the provider URL that carries it
func (f *Flow) InitiateLogin() (*LoginRedirect, error) {
	nonce, err := NewNonce(f.random, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("[auth InitiateLogin] %w", err)
	}
	return &LoginRedirect{
		URL:         f.provider.AuthCodeURL(nonce),
		StateCookie: f.cookies.cookie(StateCookieName, nonce, f.stateTTL),
	}, nil
}

// HandleCallback verifies state against the nonce cookie, exchanges the code and
// mints a session. The returned result is never nil.
func (f *Flow) HandleCallback(ctx context.Context, code, state, cookieNonce string) (*CallbackResult, error) {
	result := &CallbackResult{ClearStateCookie: f.cookies.expired(StateCookieName)}

	if code == "" || state == "" {
		return result, fmt.Errorf("[auth HandleCallback] missing code or state: %w", apperrors.ErrInvalidState)
	}
	if !f.verify(state, cookieNonce) {
		log.Warn().Bool("cookie_present", cookieNonce != "").Msg("OAuth state mismatch")
		return result, fmt.Errorf("[auth HandleCallback] state does not match nonce: %w", apperrors.ErrInvalidState)
	}

	accessToken, err := f.provider.Exchange(ctx, code)
	if err != nil {
		return result, fmt.Errorf("[auth HandleCallback] %w: %w", apperrors.ErrUpstreamExchangeFailed, err)
	}

	ghUser, err := f.provider.FetchUser(ctx, accessToken)
	if err != nil {
		return result, fmt.Errorf("[auth HandleCallback] failed to fetch profile: %w: %w", apperrors.ErrUpstreamExchangeFailed, err)
	}

	cred, err := f.issuer.Issue(token.Subject{ID: ghUser.ID, Login: ghUser.Login})
	if err != nil {
		return result, fmt.Errorf("[auth HandleCallback] %w", err)
	}
	if err := f.store.Set(cred.Raw, sessions.UpstreamToken(accessToken)); err != nil {
		return result, fmt.Errorf("[auth HandleCallback] failed to store session: %w", err)
	}

	log.Info().Int64("user_id", ghUser.ID).Str("login", ghUser.Login).Msg("GitHub login succeeded")

	result.User = User{ID: ghUser.ID, Login: ghUser.Login}
	result.SessionCookie = f.cookies.cookie(SessionCookieName, cred.Raw, f.sessionTTL)
	return result, nil
}

// ResolveCurrentUser returns the identity behind a raw credential. A credential
// that verifies but has no store entry is unauthenticated.
func (f *Flow) ResolveCurrentUser(raw string) (*User, error) {
	s, err := f.ResolveSession(raw)
	if err != nil {
		return nil, err
	}
	return &s.User, nil
}

// ResolveSession is ResolveCurrentUser plus the stored upstream token
func (f *Flow) ResolveSession(raw string) (*Session, error) {
	if raw == "" {
		return nil, fmt.Errorf("[auth ResolveSession] no credential: %w", apperrors.ErrUnauthenticated)
	}

	claims, err := f.issuer.Verify(raw)
	if err != nil {
		return nil, fmt.Errorf("[auth ResolveSession] %w: %w", apperrors.ErrInvalidCredential, err)
	}

	upstream, ok := f.store.Get(raw)
	if !ok {
		return nil, fmt.Errorf("[auth ResolveSession] %w", apperrors.ErrSessionNotFound)
	}

	id := claims.Identity()
	return &Session{
		User:          User{ID: id.ID, Login: id.Login},
		Credential:    raw,
		UpstreamToken: upstream,
	}, nil
}

// Logout removes the session if present and returns the cookie that clears it.
// Calling it repeatedly, or with no credential, is harmless.
func (f *Flow) Logout(raw string) *http.Cookie {
	if raw != "" {
		f.store.Delete(raw)
	}
	return f.cookies.expired(SessionCookieName)
}
