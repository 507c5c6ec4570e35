// Package crypto provides the cryptographic primitives behind CustoVault
// webhook delivery: signature verification and optional payload encryption.
//
// # Algorithm Suite
//
// Webhook notifications are signed under one of two schemes:
//
//   - RSA-SHA512 (scheme "v1"): PKCS #1 v1.5 signature over the SHA-512
//     digest of the raw notification body. This is the default scheme and
//     uses the workspace webhook public key from the CustoVault console.
//
//   - ML-DSA-65 (scheme "v2", NIST FIPS 204): post-quantum signature over
//     the raw notification body, using the per-endpoint signing key
//     returned at webhook registration.
//
// Encrypted payloads additionally use:
//
//   - ML-KEM-768 (NIST FIPS 203): key encapsulation against the endpoint's
//     registered encryption key.
//
//   - HKDF-SHA-512 (RFC 5869): derivation of the content key from the KEM
//     shared secret with domain separation.
//
//   - AES-256-GCM: authenticated encryption of the notification body.
//
// # Critical Security Notes
//
// Signature verification MUST be performed BEFORE decryption. Decrypting
// unauthenticated ciphertext may expose the system to chosen-ciphertext
// attacks. Always use [VerifySignature] before [Decrypt]:
//
//	if err := crypto.VerifySignature(payload, pinnedKey); err != nil {
//	    return nil, fmt.Errorf("signature verification failed: %w", err)
//	}
//	plaintext, err := crypto.Decrypt(payload, keypair)
//
// Signatures cover the exact raw body bytes as delivered. Re-serialized or
// re-indented JSON will not verify.
//
// # Key Management
//
// Use [GenerateKeypair] to create a new ML-KEM-768 keypair when registering
// a webhook endpoint with encrypted delivery. The secret key contains an
// embedded copy of the public key at offset 1152, which can be extracted
// with [KeypairFromSecretKey] or [DerivePublicKeyFromSecret].
//
// Keep secret keys secure. They should never be logged, transmitted in
// plaintext, or stored in version control.
//
// # Base64 Encoding
//
// All protocol values (keys, nonces, ciphertexts, signatures) travel as
// URL-safe base64 without padding (RFC 4648 §5); see [ToBase64URL] and
// [FromBase64URL]. Signature header values use standard base64 with
// padding (RFC 4648 §4); see [ToBase64] and [FromBase64].
package crypto
