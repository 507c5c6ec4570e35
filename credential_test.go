package custovault

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func testKeyPEM(t *testing.T) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
}

func TestNewCredential(t *testing.T) {
	cred, err := NewCredential("key-1", testKeyPEM(t))
	if err != nil {
		t.Fatalf("NewCredential() error = %v", err)
	}
	if cred.KeyID() != "key-1" {
		t.Errorf("KeyID() = %q, want key-1", cred.KeyID())
	}
}

func TestNewCredential_MissingKeyID(t *testing.T) {
	_, err := NewCredential("", testKeyPEM(t))
	if !errors.Is(err, ErrMissingKeyID) {
		t.Errorf("expected ErrMissingKeyID, got %v", err)
	}
}

func TestNewCredential_NoKeyMaterial(t *testing.T) {
	_, err := NewCredential("key-1", nil)
	if !errors.Is(err, ErrNoKeyMaterial) {
		t.Errorf("expected ErrNoKeyMaterial, got %v", err)
	}
}

func TestNewCredential_BadPEM(t *testing.T) {
	_, err := NewCredential("key-1", []byte("not a pem block"))
	if err == nil {
		t.Fatal("expected an error for garbage key material")
	}
}

func TestCredentialFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signing.pem")
	if err := os.WriteFile(path, testKeyPEM(t), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	cred, err := CredentialFromFile("key-2", path)
	if err != nil {
		t.Fatalf("CredentialFromFile() error = %v", err)
	}
	if cred.KeyID() != "key-2" {
		t.Errorf("KeyID() = %q, want key-2", cred.KeyID())
	}
}

func TestCredentialFromFile_Missing(t *testing.T) {
	_, err := CredentialFromFile("key-1", filepath.Join(t.TempDir(), "nope.pem"))
	if err == nil {
		t.Fatal("expected an error for a missing key file")
	}
}

func TestCredential_StringRedactsKey(t *testing.T) {
	pemBytes := testKeyPEM(t)
	cred, err := NewCredential("test-key-id", pemBytes)
	if err != nil {
		t.Fatalf("NewCredential() error = %v", err)
	}

	if got := cred.String(); got != "Credential(test-key-id)" {
		t.Errorf("String() = %q, want Credential(test-key-id)", got)
	}

	// Every fmt verb must keep key material out of logs.
	for _, formatted := range []string{
		fmt.Sprintf("%v", cred),
		fmt.Sprintf("%s", cred),
		fmt.Sprintf("%#v", cred),
	} {
		if strings.Contains(formatted, "PRIVATE KEY") {
			t.Errorf("formatted credential %q leaks key material", formatted)
		}
	}
}

func TestNewIdempotencyKey(t *testing.T) {
	a := NewIdempotencyKey()
	b := NewIdempotencyKey()

	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("key %q is not a UUID: %v", a, err)
	}
	if a == b {
		t.Errorf("two keys are identical: %q", a)
	}
}
