package custovault

import (
	"net/http"
	"time"

	"github.com/custovault/client-go/internal/api"
)

const (
	defaultBaseURL      = "https://api.custovault.io"
	defaultWaitTimeout  = 10 * time.Minute
	defaultWaitInterval = 2 * time.Second
)

// NoRetries disables transport retries when passed to WithMaxRetries.
const NoRetries = api.NoRetries

// RequestInfo describes one completed request attempt, as reported to the
// observer installed with WithRequestObserver.
type RequestInfo = api.RequestInfo

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL         string
	httpClient      *http.Client
	timeout         time.Duration
	maxRetries      int
	retryDelay      time.Duration
	maxDelay        time.Duration
	retryOn         []int
	signingTTL      time.Duration
	maxPayloadBytes int64
	userAgent       string
	observer        func(RequestInfo)
}

// vaultConfig holds configuration for vault account creation.
type vaultConfig struct {
	customerRefID string
	hiddenOnUI    bool
	autoFuel      bool
}

// waitConfig holds configuration for waiting on transactions.
type waitConfig struct {
	timeout  time.Duration
	interval time.Duration
	statuses []TransactionStatus
}

// listConfig holds cursor and filter parameters for list calls.
type listConfig struct {
	limit      int
	after      string
	namePrefix string
	status     TransactionStatus
	assetID    string
	sourceID   string
	destID     string
}

// Option configures the client.
type Option func(*clientConfig)

// VaultOption configures vault account creation.
type VaultOption func(*vaultConfig)

// WaitOption configures transaction waiting.
type WaitOption func(*waitConfig)

// ListOption configures list pagination and filtering.
type ListOption func(*listConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the default per-call timeout, applied when the caller's
// context carries no deadline.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the number of retries after the initial attempt.
// Pass NoRetries to disable retrying entirely.
// Default: 3
func WithMaxRetries(count int) Option {
	return func(c *clientConfig) {
		c.maxRetries = count
	}
}

// WithRetryBackoffBase sets the base delay for exponential retry backoff.
// Default: 1 second
func WithRetryBackoffBase(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.retryDelay = delay
	}
}

// WithRetryMaxBackoff caps the delay between retry attempts. The cap also
// applies to server-provided Retry-After hints.
// Default: 30 seconds
func WithRetryMaxBackoff(maxDelay time.Duration) Option {
	return func(c *clientConfig) {
		c.maxDelay = maxDelay
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithSigningTTL sets the lifetime of each per-attempt request token.
// Values are clamped to the 55 second maximum the API accepts.
// Default: 30 seconds
func WithSigningTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.signingTTL = ttl
	}
}

// WithMaxPayloadBytes sets the largest request body the client will sign.
// Default: 1 MiB
func WithMaxPayloadBytes(limit int64) Option {
	return func(c *clientConfig) {
		c.maxPayloadBytes = limit
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *clientConfig) {
		c.userAgent = userAgent
	}
}

// WithRequestObserver installs a callback invoked after every request
// attempt, including retried ones. The SDK carries no logger; the observer
// is the hook for feeding request telemetry into the caller's own.
func WithRequestObserver(fn func(RequestInfo)) Option {
	return func(c *clientConfig) {
		c.observer = fn
	}
}

// WithCustomerRefID attaches a caller-side reference id to the vault account.
func WithCustomerRefID(refID string) VaultOption {
	return func(c *vaultConfig) {
		c.customerRefID = refID
	}
}

// WithHiddenOnUI hides the vault account in the CustoVault console.
func WithHiddenOnUI() VaultOption {
	return func(c *vaultConfig) {
		c.hiddenOnUI = true
	}
}

// WithAutoFuel enables automatic gas funding for the vault account.
func WithAutoFuel() VaultOption {
	return func(c *vaultConfig) {
		c.autoFuel = true
	}
}

// WithWaitTimeout sets the timeout for waiting.
// Default: 10 minutes
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// WithWaitInterval sets the initial polling interval. The interval backs
// off while the transaction status is unchanged and resets when it moves.
// Default: 2 seconds
func WithWaitInterval(interval time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.interval = interval
	}
}

// WithWaitForStatus waits for any of the given statuses instead of the
// terminal set. Waiting still stops if the transaction settles first.
func WithWaitForStatus(statuses ...TransactionStatus) WaitOption {
	return func(c *waitConfig) {
		c.statuses = statuses
	}
}

// WithLimit sets the page size for a list call.
func WithLimit(limit int) ListOption {
	return func(c *listConfig) {
		c.limit = limit
	}
}

// WithAfter resumes a list call from a previously returned cursor.
func WithAfter(cursor string) ListOption {
	return func(c *listConfig) {
		c.after = cursor
	}
}

// WithNamePrefix filters vault accounts by name prefix.
func WithNamePrefix(prefix string) ListOption {
	return func(c *listConfig) {
		c.namePrefix = prefix
	}
}

// WithStatusFilter filters transactions by status.
func WithStatusFilter(status TransactionStatus) ListOption {
	return func(c *listConfig) {
		c.status = status
	}
}

// WithAssetFilter filters transactions by asset.
func WithAssetFilter(assetID string) ListOption {
	return func(c *listConfig) {
		c.assetID = assetID
	}
}

// WithSourceVault filters transactions by source vault account.
func WithSourceVault(vaultID string) ListOption {
	return func(c *listConfig) {
		c.sourceID = vaultID
	}
}

// WithDestinationVault filters transactions by destination vault account.
func WithDestinationVault(vaultID string) ListOption {
	return func(c *listConfig) {
		c.destID = vaultID
	}
}
