package crypto

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
)

func rsaPublicKeyPEM(t *testing.T, bits int, pkcs1 bool) []byte {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}

	if pkcs1 {
		return pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PUBLIC KEY",
			Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey),
		})
	}

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
}

func TestParseRSAPublicKey_PKIX(t *testing.T) {
	t.Parallel()
	pub, err := ParseRSAPublicKey(rsaPublicKeyPEM(t, 2048, false))
	if err != nil {
		t.Fatalf("ParseRSAPublicKey() error = %v", err)
	}
	if pub.N.BitLen() != 2048 {
		t.Errorf("key size = %d bits, want 2048", pub.N.BitLen())
	}
}

func TestParseRSAPublicKey_PKCS1(t *testing.T) {
	t.Parallel()
	pub, err := ParseRSAPublicKey(rsaPublicKeyPEM(t, 2048, true))
	if err != nil {
		t.Fatalf("ParseRSAPublicKey() error = %v", err)
	}
	if pub.N.BitLen() != 2048 {
		t.Errorf("key size = %d bits, want 2048", pub.N.BitLen())
	}
}

func TestParseRSAPublicKey_TooSmall(t *testing.T) {
	t.Parallel()
	_, err := ParseRSAPublicKey(rsaPublicKeyPEM(t, 1024, false))
	if !errors.Is(err, ErrRSAKeyTooSmall) {
		t.Errorf("expected ErrRSAKeyTooSmall, got %v", err)
	}
}

func TestParseRSAPublicKey_NotRSA(t *testing.T) {
	t.Parallel()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	_, err = ParseRSAPublicKey(pemBytes)
	if !errors.Is(err, ErrNotRSAPublicKey) {
		t.Errorf("expected ErrNotRSAPublicKey, got %v", err)
	}
}

func TestParseRSAPublicKey_NoPEM(t *testing.T) {
	t.Parallel()
	_, err := ParseRSAPublicKey([]byte("not pem data"))
	if !errors.Is(err, ErrNoPEMData) {
		t.Errorf("expected ErrNoPEMData, got %v", err)
	}
}

func TestParseRSAPublicKey_GarbageBlock(t *testing.T) {
	t.Parallel()
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: []byte("garbage")})
	if _, err := ParseRSAPublicKey(pemBytes); err == nil {
		t.Error("expected error for garbage DER bytes")
	}
}

func TestParsePrivateKey(t *testing.T) {
	t.Parallel()
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	rsaPKCS8, err := x509.MarshalPKCS8PrivateKey(rsaKey)
	if err != nil {
		t.Fatal(err)
	}
	ecPKCS8, err := x509.MarshalPKCS8PrivateKey(ecKey)
	if err != nil {
		t.Fatal(err)
	}
	ecSEC1, err := x509.MarshalECPrivateKey(ecKey)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		pem  []byte
	}{
		{
			name: "RSA PKCS#1",
			pem: pem.EncodeToMemory(&pem.Block{
				Type:  "RSA PRIVATE KEY",
				Bytes: x509.MarshalPKCS1PrivateKey(rsaKey),
			}),
		},
		{
			name: "RSA PKCS#8",
			pem:  pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: rsaPKCS8}),
		},
		{
			name: "EC SEC 1",
			pem:  pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: ecSEC1}),
		},
		{
			name: "EC PKCS#8",
			pem:  pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: ecPKCS8}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer, err := ParsePrivateKey(tt.pem)
			if err != nil {
				t.Fatalf("ParsePrivateKey() error = %v", err)
			}
			if signer.Public() == nil {
				t.Error("ParsePrivateKey() returned signer with nil public key")
			}
		})
	}
}

func TestParsePrivateKey_Unsupported(t *testing.T) {
	t.Parallel()
	_, edKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(edKey)
	if err != nil {
		t.Fatal(err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	_, err = ParsePrivateKey(pemBytes)
	if !errors.Is(err, ErrUnsupportedPrivateKey) {
		t.Errorf("expected ErrUnsupportedPrivateKey, got %v", err)
	}
}

func TestParsePrivateKey_NoPEM(t *testing.T) {
	t.Parallel()
	_, err := ParsePrivateKey([]byte("-----nope-----"))
	if !errors.Is(err, ErrNoPEMData) {
		t.Errorf("expected ErrNoPEMData, got %v", err)
	}
}
