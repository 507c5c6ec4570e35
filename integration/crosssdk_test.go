//go:build integration

package integration

import (
	"encoding/json"
	"os"
	"testing"

	custovault "github.com/custovault/client-go"
	"github.com/custovault/client-go/internal/crypto"
)

// NodeSDKKeypair is the webhook keypair export format of the Node SDK.
type NodeSDKKeypair struct {
	PublicKey        string `json:"publicKey"`
	SecretKey        string `json:"secretKey"`
	ServerSigningKey string `json:"serverSigningKey,omitempty"`
}

// TestCrossSDK_KeypairExportFormat verifies the Go SDK's keypair export
// parses as the Node SDK's import format.
func TestCrossSDK_KeypairExportFormat(t *testing.T) {
	kp, err := custovault.GenerateWebhookKeypair()
	if err != nil {
		t.Fatalf("GenerateWebhookKeypair() error = %v", err)
	}

	exported := kp.Export()
	jsonData, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var nodeFormat NodeSDKKeypair
	if err := json.Unmarshal(jsonData, &nodeFormat); err != nil {
		t.Fatalf("Failed to parse as Node SDK format: %v", err)
	}

	if nodeFormat.PublicKey != exported.PublicKey {
		t.Errorf("publicKey mismatch: got %s, want %s", nodeFormat.PublicKey, exported.PublicKey)
	}
	if nodeFormat.SecretKey != exported.SecretKey {
		t.Errorf("secretKey mismatch: got %s, want %s", nodeFormat.SecretKey, exported.SecretKey)
	}

	// Both fields must decode as unpadded base64url, the encoding every
	// CustoVault SDK uses for key material.
	pub, err := crypto.FromBase64URL(nodeFormat.PublicKey)
	if err != nil {
		t.Fatalf("publicKey is not base64url: %v", err)
	}
	if len(pub) != crypto.MLKEMPublicKeySize {
		t.Errorf("publicKey size = %d, want %d", len(pub), crypto.MLKEMPublicKeySize)
	}
}

// TestCrossSDK_ImportNodeKeypair imports a keypair file produced by the
// Node SDK.
func TestCrossSDK_ImportNodeKeypair(t *testing.T) {
	nodePath := os.Getenv("NODE_KEYPAIR_FILE")
	if nodePath == "" {
		t.Skip("skipping: NODE_KEYPAIR_FILE not set")
	}

	kp, err := custovault.ImportWebhookKeypairFromFile(nodePath)
	if err != nil {
		t.Fatalf("ImportWebhookKeypairFromFile() error = %v", err)
	}

	pub, err := crypto.FromBase64URL(kp.PublicKey())
	if err != nil {
		t.Fatalf("PublicKey() is not base64url: %v", err)
	}
	if len(pub) != crypto.MLKEMPublicKeySize {
		t.Errorf("public key size = %d, want %d", len(pub), crypto.MLKEMPublicKeySize)
	}
	t.Logf("Imported Node SDK keypair, public key %d bytes", len(pub))
}

// TestCrossSDK_KeypairCompatibility verifies key sizes match what the
// other SDKs expect for ML-KEM-768.
func TestCrossSDK_KeypairCompatibility(t *testing.T) {
	kp, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	if len(kp.PublicKey) != crypto.MLKEMPublicKeySize {
		t.Errorf("PublicKey size = %d, want %d", len(kp.PublicKey), crypto.MLKEMPublicKeySize)
	}
	if len(kp.SecretKey) != crypto.MLKEMSecretKeySize {
		t.Errorf("SecretKey size = %d, want %d", len(kp.SecretKey), crypto.MLKEMSecretKeySize)
	}

	decodedPK, err := crypto.FromBase64URL(kp.PublicKeyB64)
	if err != nil {
		t.Fatalf("Failed to decode PublicKeyB64: %v", err)
	}
	if len(decodedPK) != len(kp.PublicKey) {
		t.Errorf("Decoded PublicKey size = %d, want %d", len(decodedPK), len(kp.PublicKey))
	}
}

// TestCrossSDK_Base64Compatibility verifies base64 encoding matches the
// other SDKs: unpadded URL-safe for keys and v2 signatures.
func TestCrossSDK_Base64Compatibility(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"hello", []byte("hello"), "aGVsbG8"},
		{"hello world", []byte("hello world"), "aGVsbG8gd29ybGQ"},
		{"binary with + and /", []byte{0xfb, 0xff, 0x3f}, "-_8_"},
		{"empty", []byte{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := crypto.ToBase64URL(tt.input)
			if tt.expected != "" && encoded != tt.expected {
				t.Errorf("ToBase64URL(%v) = %s, want %s", tt.input, encoded, tt.expected)
			}

			decoded, err := crypto.FromBase64URL(encoded)
			if err != nil {
				t.Fatalf("FromBase64URL() error = %v", err)
			}
			if string(decoded) != string(tt.input) {
				t.Errorf("Round-trip failed: got %v, want %v", decoded, tt.input)
			}
		})
	}
}
