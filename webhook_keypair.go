package custovault

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/custovault/client-go/internal/crypto"
)

// WebhookKeypair holds the ML-KEM-768 keypair for an endpoint that
// receives encrypted webhook payloads, plus the pinned ML-DSA-65 key the
// platform signs envelopes with.
type WebhookKeypair struct {
	keypair      *crypto.Keypair
	serverSigKey []byte
}

// GenerateWebhookKeypair creates a fresh ML-KEM-768 keypair. Register
// PublicKey with the endpoint in the CustoVault console, then pin the
// signing key the console returns with SetServerSigningKey.
func GenerateWebhookKeypair() (*WebhookKeypair, error) {
	kp, err := crypto.GenerateKeypair()
	if err != nil {
		return nil, err
	}
	return &WebhookKeypair{keypair: kp}, nil
}

// PublicKey returns the encapsulation public key, URL-safe base64, in
// the form endpoint registration accepts.
func (k *WebhookKeypair) PublicKey() string {
	return k.keypair.PublicKeyB64
}

// SetServerSigningKey pins the platform's envelope signing key, as the
// URL-safe base64 string returned at registration. DecryptPayload
// refuses envelopes signed by any other key.
func (k *WebhookKeypair) SetServerSigningKey(keyB64 string) error {
	key, err := crypto.FromBase64URL(keyB64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}
	if len(key) != crypto.MLDSAPublicKeySize {
		return fmt.Errorf("%w: server signing key is %d bytes, want %d",
			ErrInvalidImportData, len(key), crypto.MLDSAPublicKeySize)
	}
	k.serverSigKey = key
	return nil
}

// ExportedWebhookKeypair is the serializable form of a webhook keypair.
type ExportedWebhookKeypair struct {
	PublicKey        string `json:"publicKey"`
	SecretKey        string `json:"secretKey"`
	ServerSigningKey string `json:"serverSigningKey,omitempty"`
}

// Export returns the keypair in serializable form. The secret key is
// included; treat the result like any other secret.
func (k *WebhookKeypair) Export() *ExportedWebhookKeypair {
	exported := &ExportedWebhookKeypair{
		PublicKey: k.keypair.PublicKeyB64,
		SecretKey: crypto.ToBase64URL(k.keypair.SecretKey),
	}
	if k.serverSigKey != nil {
		exported.ServerSigningKey = crypto.ToBase64URL(k.serverSigKey)
	}
	return exported
}

// ImportWebhookKeypair reconstructs a keypair from exported data. The
// public key is rederived from the secret key, so tampered or mismatched
// export data fails with ErrInvalidImportData.
func ImportWebhookKeypair(data *ExportedWebhookKeypair) (*WebhookKeypair, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: no data", ErrInvalidImportData)
	}
	secret, err := crypto.FromBase64URL(data.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}
	kp, err := crypto.KeypairFromSecretKey(secret)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidSecretKeySize) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImportData, err)
		}
		return nil, err
	}
	if data.PublicKey != "" && data.PublicKey != kp.PublicKeyB64 {
		return nil, fmt.Errorf("%w: public key does not match secret key", ErrInvalidImportData)
	}

	imported := &WebhookKeypair{keypair: kp}
	if data.ServerSigningKey != "" {
		if err := imported.SetServerSigningKey(data.ServerSigningKey); err != nil {
			return nil, err
		}
	}
	return imported, nil
}

// ExportToFile writes the keypair to path as JSON with 0600 permissions.
func (k *WebhookKeypair) ExportToFile(path string) error {
	data, err := json.MarshalIndent(k.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal keypair: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write keypair file: %w", err)
	}
	return nil
}

// ImportWebhookKeypairFromFile loads a keypair written by ExportToFile.
func ImportWebhookKeypairFromFile(path string) (*WebhookKeypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keypair file: %w", err)
	}
	var exported ExportedWebhookKeypair
	if err := json.Unmarshal(data, &exported); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}
	return ImportWebhookKeypair(&exported)
}

// DecryptPayload decrypts an encrypted delivery. Endpoints registered
// with an encryption public key receive the notification body as an
// encrypted envelope; the returned plaintext is the notification JSON,
// ready for Decode-style parsing by the caller.
//
// The envelope's own signature is checked against the keypair's pinned
// server key before any decryption happens. A keypair without a pinned
// key refuses to decrypt.
func (e *WebhookEvent) DecryptPayload(kp *WebhookKeypair) ([]byte, error) {
	if kp == nil || kp.keypair == nil {
		return nil, fmt.Errorf("webhook keypair is required")
	}
	if kp.serverSigKey == nil {
		return nil, fmt.Errorf("no server signing key pinned: call SetServerSigningKey first")
	}

	var payload crypto.EncryptedPayload
	if err := json.Unmarshal(e.Raw, &payload); err != nil {
		return nil, &DecryptionError{Message: "body is not an encrypted envelope", Err: err}
	}

	if err := crypto.VerifySignature(&payload, kp.serverSigKey); err != nil {
		return nil, &SignatureVerificationError{Message: "envelope signature: " + err.Error()}
	}

	plaintext, err := crypto.Decrypt(&payload, kp.keypair)
	if err != nil {
		return nil, &DecryptionError{Stage: decryptStage(err), Message: "decrypt envelope", Err: err}
	}
	return plaintext, nil
}

// decryptStage maps a decryption failure to the pipeline stage it
// happened in, best effort.
func decryptStage(err error) string {
	switch {
	case errors.Is(err, crypto.ErrInvalidCiphertextSize), errors.Is(err, crypto.ErrInvalidSecretKeySize):
		return "kem"
	case errors.Is(err, crypto.ErrDecryptionFailed), errors.Is(err, crypto.ErrInvalidKeySize), errors.Is(err, crypto.ErrInvalidNonceSize):
		return "aes"
	}
	return ""
}
