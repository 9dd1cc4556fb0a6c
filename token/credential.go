package token

import (
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultIssuer = "readme-writer"

// Subject is the GitHub identity a credential is issued for
type Subject struct {
	ID    int64
	Login string
}

// Claims are the claims carried by a session credential
type Claims struct {
	UserID int64  `json:"id"`
	Login  string `json:"login"`
	jwtlib.RegisteredClaims
}

// Identity returns the identity embedded in the claims
func (c *Claims) Identity() Subject {
	return Subject{ID: c.UserID, Login: c.Login}
}

// Credential is a freshly minted session credential
type Credential struct {
	Raw       string
	Claims    Claims
	ExpiresAt time.Time
}

// Issuer mints and verifies session credentials
type Issuer struct {
	signer  Signer
	name    string
	expiry  time.Duration
	nowFunc func() time.Time
}

type IssuerOption func(*Issuer)

func WithExpiry(expiry time.Duration) IssuerOption {
	return func(i *Issuer) {
		i.expiry = expiry
	}
}

func WithNowFunc(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowFunc = now
	}
}

func WithIssuerName(name string) IssuerOption {
	return func(i *Issuer) {
		i.name = name
	}
}

// NewIssuer creates an issuer; credentials expire after 7 days unless WithExpiry is given
func NewIssuer(signer Signer, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		signer:  signer,
		name:    defaultIssuer,
		expiry:  7 * 24 * time.Hour,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs a new credential for subject
func (i *Issuer) Issue(subject Subject) (*Credential, error) {
	if subject.ID == 0 || subject.Login == "" {
		return nil, errors.New("subject id and login are required")
	}

	now := i.nowFunc()
	expiresAt := now.Add(i.expiry)
	claims := Claims{
		UserID: subject.ID,
		Login:  subject.Login,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    i.name,
			Subject:   strconv.FormatInt(subject.ID, 10),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			ID:        uuid.New().String(), // distinct per login, the raw form is a store key
		},
	}

	raw, err := i.signer.Sign(claims)
	if err != nil {
		return nil, errors.Wrap(err, "[token Issue] failed to sign credential")
	}
	return &Credential{Raw: raw, Claims: claims, ExpiresAt: expiresAt}, nil
}

// Verify checks signature, issuer and expiry and returns the embedded claims
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwtlib.ParseWithClaims(raw, claims, i.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwtlib.WithIssuer(i.name),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(i.nowFunc),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[token Verify] invalid credential")
	}
	if !parsed.Valid {
		return nil, errors.New("[token Verify] invalid credential")
	}
	if claims.UserID == 0 || claims.Login == "" {
		return nil, errors.New("[token Verify] credential missing subject")
	}
	return claims, nil
}
