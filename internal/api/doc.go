// Package api provides HTTP client functionality for communicating with the
// CustoVault API. It signs every attempt, serializes requests and responses,
// and retries transient failures with exponential backoff.
//
// # Client Creation
//
// [NewClient] takes a [Config] holding the API key, the request signer, and
// the retry policy. The API key is sent via the X-API-Key header on every
// request; a fresh bearer token from the signer accompanies it in the
// Authorization header.
//
// # Request Execution
//
// [Client.Do] runs one logical API call as a bounded attempt loop. The
// request body is encoded once; each attempt signs the exact path, query,
// and body bytes it transmits, so a token never outlives the attempt it was
// minted for. An Idempotency-Key, when present, is carried unchanged on
// every attempt.
//
// Requests with a non-idempotent method and no idempotency key are never
// retried after bytes may have reached the server: only a provable
// pre-send failure (a dial error) permits another attempt.
//
// # Retry Behavior
//
// By default, eligible requests are retried up to 3 times for these HTTP
// status codes:
//
//   - 408 Request Timeout
//   - 429 Too Many Requests
//   - 500 Internal Server Error
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// The retry delay grows exponentially with jitter, a Retry-After header
// overrides the computed delay up to the configured maximum, and the
// caller's context deadline bounds the whole loop including backoff sleeps.
// Configure the policy with [Config.MaxRetries], [Config.RetryDelay],
// [Config.MaxDelay], and [Config.RetryOn].
//
// # Error Handling
//
// Remote failures surface as apierrors.APIError values carrying a closed
// kind; exhaustion and network faults surface as apierrors.TransportError.
// Use errors.Is against the apierrors sentinels:
//
//	if errors.Is(err, apierrors.ErrRetriesExhausted) {
//	    // Every permitted attempt failed
//	}
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
