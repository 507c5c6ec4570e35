// Package signing builds the per-request bearer tokens that authenticate
// CustoVault API calls.
//
// Every request carries a short-lived JWT bound to the exact bytes being
// sent: the token's uri claim is the path and encoded query exactly as
// transmitted, and bodyHash is the hex SHA-256 of the exact body bytes.
// A fresh UUID nonce and issued-at timestamp make each token single-use;
// the server rejects replays and expired tokens.
//
// Tokens are signed RS256 for RSA credentials and ES256/ES384/ES512 for
// ECDSA credentials, with the key id in the JWT kid header.
//
// [Signer.Sign] is pure: it performs no I/O and takes the current time as
// an argument, so the transport layer signs just-in-time for every attempt
// and tests can pin the clock.
package signing
