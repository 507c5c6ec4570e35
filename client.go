package custovault

import (
	"context"
	"sync"

	"github.com/custovault/client-go/internal/api"
	"github.com/custovault/client-go/internal/signing"
)

// Client is the CustoVault client. All methods route through a single
// request pipeline that signs, sends, and retries each call. The client
// is safe for concurrent use.
type Client struct {
	apiClient *api.Client
	signer    *signing.Signer
	mu        sync.RWMutex
	closed    bool
}

// New creates a new CustoVault client for the given credential.
//
// The credential's key id identifies the workspace on every request and its
// private key signs each attempt. New validates the credential against the
// API before returning, so a bad key id or revoked key fails fast instead
// of on the first real call.
func New(cred *Credential, opts ...Option) (*Client, error) {
	if cred == nil {
		return nil, ErrMissingCredential
	}

	cfg := &clientConfig{
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	signer := signing.NewSigner(cred, signing.Config{
		TTL:             cfg.signingTTL,
		MaxPayloadBytes: cfg.maxPayloadBytes,
	})

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     cred.KeyID(),
		Signer:     signer,
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
		MaxRetries: cfg.maxRetries,
		RetryDelay: cfg.retryDelay,
		MaxDelay:   cfg.maxDelay,
		RetryOn:    cfg.retryOn,
		UserAgent:  cfg.userAgent,
		Observer:   cfg.observer,
	})
	if err != nil {
		return nil, wrapError(err)
	}

	// Validate the credential
	pingTimeout := cfg.timeout
	if pingTimeout <= 0 {
		pingTimeout = api.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if _, err := apiClient.Ping(ctx); err != nil {
		return nil, wrapError(err)
	}

	return &Client{
		apiClient: apiClient,
		signer:    signer,
	}, nil
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Ping checks API reachability and that the credential is still accepted.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	_, err := c.apiClient.Ping(ctx)
	return wrapError(err)
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// Close closes the client and releases idle connections. Operations on a
// closed client return ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.apiClient.HTTPClient().CloseIdleConnections()
	return nil
}
