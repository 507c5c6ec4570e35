package signing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/google/uuid"
)

const (
	// DefaultTTL is the default token lifetime.
	DefaultTTL = 30 * time.Second

	// MaxTTL is the longest token lifetime the platform accepts.
	MaxTTL = 55 * time.Second

	// DefaultMaxPayloadBytes is the default limit on signable body size.
	DefaultMaxPayloadBytes = 1 << 20
)

// Config holds Signer settings. Zero values select the defaults.
type Config struct {
	// TTL is the token lifetime (exp - iat). Values above MaxTTL are
	// clamped; the platform rejects longer-lived tokens.
	TTL time.Duration
	// MaxPayloadBytes is the largest request body the signer will accept.
	MaxPayloadBytes int64
}

// Token is a signed bearer token for a single request attempt.
type Token struct {
	// Serialized is the compact JWT for the Authorization header.
	Serialized string
	// Nonce is the token's unique nonce claim.
	Nonce string
	// IssuedAt is the iat claim.
	IssuedAt time.Time
	// ExpiresAt is the exp claim.
	ExpiresAt time.Time
}

// Signer produces request tokens for one credential. It is safe for
// concurrent use.
type Signer struct {
	cred            *Credential
	ttl             time.Duration
	maxPayloadBytes int64
	newNonce        func() string
}

// NewSigner creates a Signer for the credential.
func NewSigner(cred *Credential, cfg Config) *Signer {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if ttl > MaxTTL {
		ttl = MaxTTL
	}

	maxPayload := cfg.MaxPayloadBytes
	if maxPayload <= 0 {
		maxPayload = DefaultMaxPayloadBytes
	}

	return &Signer{
		cred:            cred,
		ttl:             ttl,
		maxPayloadBytes: maxPayload,
		newNonce:        func() string { return uuid.New().String() },
	}
}

// TTL returns the configured token lifetime.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// tokenClaims is the JWT payload for a request token.
type tokenClaims struct {
	Sub      string `json:"sub"`
	URI      string `json:"uri"`
	Nonce    string `json:"nonce"`
	IAT      int64  `json:"iat"`
	Exp      int64  `json:"exp"`
	BodyHash string `json:"bodyHash"`
}

// Sign creates a token for one request attempt.
//
// uri must be the path plus encoded query exactly as transmitted, and body
// the exact bytes that will be sent; the token is invalid for any other
// bytes. An empty or nil body hashes the empty string. Each call produces a
// fresh nonce, so a new token must be signed for every retry attempt.
func (s *Signer) Sign(uri string, body []byte, now time.Time) (*Token, error) {
	if int64(len(body)) > s.maxPayloadBytes {
		return nil, fmt.Errorf("%w: body is %d bytes, limit is %d",
			ErrPayloadTooLarge, len(body), s.maxPayloadBytes)
	}

	signerOpts := (&jose.SignerOptions{}).WithType("JWT").WithHeader("kid", s.cred.keyID)
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: s.cred.alg, Key: s.cred.key}, signerOpts)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}

	bodyHash := sha256.Sum256(body)
	nonce := s.newNonce()
	iat := now.Unix()
	exp := now.Add(s.ttl).Unix()

	claims := tokenClaims{
		Sub:      s.cred.keyID,
		URI:      uri,
		Nonce:    nonce,
		IAT:      iat,
		Exp:      exp,
		BodyHash: hex.EncodeToString(bodyHash[:]),
	}

	serialized, err := jwt.Signed(signer).Claims(claims).Serialize()
	if err != nil {
		return nil, fmt.Errorf("serialize token: %w", err)
	}

	return &Token{
		Serialized: serialized,
		Nonce:      nonce,
		IssuedAt:   time.Unix(iat, 0),
		ExpiresAt:  time.Unix(exp, 0),
	}, nil
}
