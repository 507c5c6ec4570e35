package signing

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-jose/go-jose/v4"
)

func rsaKeyPEM(t *testing.T) []byte {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

func ecKeyPEM(t *testing.T, curve elliptic.Curve) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatal(err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
}

func TestNewCredential_RequiresKeyID(t *testing.T) {
	_, err := NewCredential("", rsaKeyPEM(t))
	if !errors.Is(err, ErrMissingKeyID) {
		t.Errorf("expected ErrMissingKeyID, got %v", err)
	}
}

func TestNewCredential_RequiresKeyMaterial(t *testing.T) {
	_, err := NewCredential("key-1", nil)
	if !errors.Is(err, ErrNoKeyMaterial) {
		t.Errorf("expected ErrNoKeyMaterial, got %v", err)
	}
}

func TestNewCredential_InvalidPEM(t *testing.T) {
	_, err := NewCredential("key-1", []byte("not a pem key"))
	if err == nil {
		t.Error("expected error for invalid PEM")
	}
}

func TestNewCredential_Algorithms(t *testing.T) {
	tests := []struct {
		name     string
		pem      []byte
		expected jose.SignatureAlgorithm
	}{
		{"RSA selects RS256", rsaKeyPEM(t), jose.RS256},
		{"P-256 selects ES256", ecKeyPEM(t, elliptic.P256()), jose.ES256},
		{"P-384 selects ES384", ecKeyPEM(t, elliptic.P384()), jose.ES384},
		{"P-521 selects ES512", ecKeyPEM(t, elliptic.P521()), jose.ES512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := NewCredential("key-1", tt.pem)
			if err != nil {
				t.Fatalf("NewCredential() error = %v", err)
			}
			if cred.Algorithm() != tt.expected {
				t.Errorf("Algorithm() = %s, want %s", cred.Algorithm(), tt.expected)
			}
			if cred.KeyID() != "key-1" {
				t.Errorf("KeyID() = %s, want key-1", cred.KeyID())
			}
		})
	}
}

func TestNewCredential_UnsupportedCurve(t *testing.T) {
	_, err := NewCredential("key-1", ecKeyPEM(t, elliptic.P224()))
	if !errors.Is(err, ErrUnsupportedKey) {
		t.Errorf("expected ErrUnsupportedKey, got %v", err)
	}
}

func TestCredential_StringRedactsKeyMaterial(t *testing.T) {
	cred, err := NewCredential("api-key-id-42", rsaKeyPEM(t))
	if err != nil {
		t.Fatal(err)
	}

	for name, s := range map[string]string{
		"String":   cred.String(),
		"GoString": cred.GoString(),
	} {
		if !strings.Contains(s, "api-key-id-42") {
			t.Errorf("%s() = %q, does not contain key id", name, s)
		}
		if strings.Contains(s, "PRIVATE KEY") {
			t.Errorf("%s() leaks key material", name)
		}
	}
}

func TestCredentialFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signer.pem")
	if err := os.WriteFile(path, rsaKeyPEM(t), 0o600); err != nil {
		t.Fatal(err)
	}

	cred, err := CredentialFromFile("key-1", path)
	if err != nil {
		t.Fatalf("CredentialFromFile() error = %v", err)
	}
	if cred.KeyID() != "key-1" {
		t.Errorf("KeyID() = %s, want key-1", cred.KeyID())
	}
}

func TestCredentialFromFile_Missing(t *testing.T) {
	_, err := CredentialFromFile("key-1", filepath.Join(t.TempDir(), "missing.pem"))
	if err == nil {
		t.Error("expected error for missing key file")
	}
}
