package crypto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
)

func TestGenerateKeypair(t *testing.T) {
	t.Parallel()
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	if len(kp.PublicKey) != MLKEMPublicKeySize {
		t.Errorf("public key size = %d, want %d", len(kp.PublicKey), MLKEMPublicKeySize)
	}
	if len(kp.SecretKey) != MLKEMSecretKeySize {
		t.Errorf("secret key size = %d, want %d", len(kp.SecretKey), MLKEMSecretKeySize)
	}

	decoded, err := FromBase64URL(kp.PublicKeyB64)
	if err != nil {
		t.Fatalf("PublicKeyB64 is not valid base64url: %v", err)
	}
	if !bytes.Equal(decoded, kp.PublicKey) {
		t.Error("PublicKeyB64 does not match PublicKey bytes")
	}
}

func TestGenerateKeypair_Unique(t *testing.T) {
	t.Parallel()
	kp1, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	kp2, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(kp1.SecretKey, kp2.SecretKey) {
		t.Error("two generated keypairs share the same secret key")
	}
}

func TestKeypairFromSecretKey(t *testing.T) {
	t.Parallel()
	original, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	restored, err := KeypairFromSecretKey(original.SecretKey)
	if err != nil {
		t.Fatalf("KeypairFromSecretKey() error = %v", err)
	}

	if !bytes.Equal(restored.PublicKey, original.PublicKey) {
		t.Error("restored public key does not match original")
	}
	if restored.PublicKeyB64 != original.PublicKeyB64 {
		t.Errorf("PublicKeyB64 = %s, want %s", restored.PublicKeyB64, original.PublicKeyB64)
	}
}

func TestKeypairFromSecretKey_InvalidSize(t *testing.T) {
	t.Parallel()
	_, err := KeypairFromSecretKey(make([]byte, 100))
	if !errors.Is(err, ErrInvalidSecretKeySize) {
		t.Errorf("expected ErrInvalidSecretKeySize, got %v", err)
	}
}

func TestNewKeypairFromBytes(t *testing.T) {
	t.Parallel()
	original, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	kp, err := NewKeypairFromBytes(original.SecretKey, original.PublicKey)
	if err != nil {
		t.Fatalf("NewKeypairFromBytes() error = %v", err)
	}

	if !bytes.Equal(kp.PublicKey, original.PublicKey) {
		t.Error("public key does not match")
	}
	if !bytes.Equal(kp.SecretKey, original.SecretKey) {
		t.Error("secret key does not match")
	}
}

func TestNewKeypairFromBytes_InvalidSizes(t *testing.T) {
	t.Parallel()
	valid, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("bad secret key size", func(t *testing.T) {
		_, err := NewKeypairFromBytes(make([]byte, 10), valid.PublicKey)
		if !errors.Is(err, ErrInvalidSecretKeySize) {
			t.Errorf("expected ErrInvalidSecretKeySize, got %v", err)
		}
	})

	t.Run("bad public key size", func(t *testing.T) {
		_, err := NewKeypairFromBytes(valid.SecretKey, make([]byte, 10))
		if !errors.Is(err, ErrInvalidPublicKeySize) {
			t.Errorf("expected ErrInvalidPublicKeySize, got %v", err)
		}
	})
}

func TestValidateKeypair(t *testing.T) {
	t.Parallel()
	valid, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		keypair  *Keypair
		expected bool
	}{
		{"valid keypair", valid, true},
		{"nil keypair", nil, false},
		{"nil public key", &Keypair{SecretKey: valid.SecretKey, PublicKeyB64: valid.PublicKeyB64}, false},
		{"nil secret key", &Keypair{PublicKey: valid.PublicKey, PublicKeyB64: valid.PublicKeyB64}, false},
		{"empty base64", &Keypair{PublicKey: valid.PublicKey, SecretKey: valid.SecretKey}, false},
		{
			"wrong public key size",
			&Keypair{PublicKey: make([]byte, 10), SecretKey: valid.SecretKey, PublicKeyB64: valid.PublicKeyB64},
			false,
		},
		{
			"base64 mismatch",
			&Keypair{PublicKey: valid.PublicKey, SecretKey: valid.SecretKey, PublicKeyB64: ToBase64URL(make([]byte, MLKEMPublicKeySize))},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateKeypair(tt.keypair); got != tt.expected {
				t.Errorf("ValidateKeypair() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDerivePublicKeyFromSecret(t *testing.T) {
	t.Parallel()
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	pub, err := DerivePublicKeyFromSecret(kp.SecretKey)
	if err != nil {
		t.Fatalf("DerivePublicKeyFromSecret() error = %v", err)
	}
	if !bytes.Equal(pub, kp.PublicKey) {
		t.Error("derived public key does not match original")
	}

	if _, err := DerivePublicKeyFromSecret(make([]byte, 10)); !errors.Is(err, ErrInvalidSecretKeySize) {
		t.Errorf("expected ErrInvalidSecretKeySize, got %v", err)
	}
}

func TestDecapsulate(t *testing.T) {
	t.Parallel()
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	var pubKey mlkem768.PublicKey
	pubKey.Unpack(kp.PublicKey)

	ctKem := make([]byte, MLKEMCiphertextSize)
	sharedSecret := make([]byte, MLKEMSharedKeySize)
	pubKey.EncapsulateTo(ctKem, sharedSecret, nil)

	recovered, err := kp.Decapsulate(ctKem)
	if err != nil {
		t.Fatalf("Decapsulate() error = %v", err)
	}
	if !bytes.Equal(recovered, sharedSecret) {
		t.Error("decapsulated secret does not match encapsulated secret")
	}
}

func TestDecapsulate_InvalidCiphertextSize(t *testing.T) {
	t.Parallel()
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	_, err = kp.Decapsulate(make([]byte, 100))
	if !errors.Is(err, ErrInvalidCiphertextSize) {
		t.Errorf("expected ErrInvalidCiphertextSize, got %v", err)
	}
}
