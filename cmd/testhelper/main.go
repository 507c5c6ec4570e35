// Command testhelper drives a CustoVault workspace from the command line
// for cross-SDK test suites. Commands read their inputs from argv, stdin,
// and CUSTOVAULT_* environment variables and write JSON to stdout, so any
// harness can shell out to it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	custovault "github.com/custovault/client-go"
	"github.com/custovault/client-go/internal/signing"
)

// Config wires the helper's streams so tests can capture output.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns the process streams.
func DefaultConfig() Config {
	return Config{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func run(args []string, cfg Config) error {
	if len(args) < 2 {
		return errors.New("usage: testhelper <command> [args]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch args[1] {
	case "ping":
		return ping(ctx, cfg)
	case "create-vault":
		if len(args) < 3 {
			return errors.New("usage: testhelper create-vault <name>")
		}
		return createVault(ctx, cfg, args[2])
	case "get-transaction":
		if len(args) < 3 {
			return errors.New("usage: testhelper get-transaction <id>")
		}
		return getTransaction(ctx, cfg, args[2])
	case "sign":
		return signRequest(cfg)
	case "keygen":
		return keygen(cfg)
	case "verify-webhook":
		if len(args) < 4 {
			return errors.New("usage: testhelper verify-webhook <signature> <timestamp>")
		}
		return verifyWebhook(cfg, args[2], args[3])
	case "decrypt-webhook":
		if len(args) < 3 {
			return errors.New("usage: testhelper decrypt-webhook <keypair-file>")
		}
		return decryptWebhook(cfg, args[2])
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

// credentialFromEnv loads the signing credential from CUSTOVAULT_API_KEY
// and the private key in CUSTOVAULT_PRIVATE_KEY_PATH or
// CUSTOVAULT_PRIVATE_KEY_PEM.
func credentialFromEnv() (*custovault.Credential, error) {
	keyID := os.Getenv("CUSTOVAULT_API_KEY")
	if path := os.Getenv("CUSTOVAULT_PRIVATE_KEY_PATH"); path != "" {
		return custovault.CredentialFromFile(keyID, path)
	}
	return custovault.NewCredential(keyID, []byte(os.Getenv("CUSTOVAULT_PRIVATE_KEY_PEM")))
}

// newClientFromEnv builds a client from the env credential and an optional
// CUSTOVAULT_URL override.
func newClientFromEnv() (*custovault.Client, error) {
	cred, err := credentialFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}

	var opts []custovault.Option
	if url := os.Getenv("CUSTOVAULT_URL"); url != "" {
		opts = append(opts, custovault.WithBaseURL(url))
	}
	return custovault.New(cred, opts...)
}

func ping(ctx context.Context, cfg Config) error {
	client, err := newClientFromEnv()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return json.NewEncoder(cfg.Stdout).Encode(map[string]string{"status": "ok"})
}

func createVault(ctx context.Context, cfg Config, name string) error {
	client, err := newClientFromEnv()
	if err != nil {
		return err
	}
	defer client.Close()

	account, err := client.CreateVaultAccount(ctx, name)
	if err != nil {
		return fmt.Errorf("create vault account: %w", err)
	}
	return json.NewEncoder(cfg.Stdout).Encode(map[string]string{
		"id":   account.ID,
		"name": account.Name,
	})
}

func getTransaction(ctx context.Context, cfg Config, txID string) error {
	client, err := newClientFromEnv()
	if err != nil {
		return err
	}
	defer client.Close()

	tx, err := client.GetTransaction(ctx, txID)
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}
	return json.NewEncoder(cfg.Stdout).Encode(map[string]string{
		"id":     tx.ID,
		"status": string(tx.Status),
	})
}

// signRequest signs the request descriptor on stdin and emits the auth
// header values a harness attaches verbatim. The descriptor is
// {"path": ..., "query": {...}, "body": ...} with body as the exact bytes
// the harness will transmit.
func signRequest(cfg Config) error {
	cred, err := credentialFromEnv()
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}

	var desc struct {
		Path  string            `json:"path"`
		Query map[string]string `json:"query"`
		Body  string            `json:"body"`
	}
	if err := json.NewDecoder(cfg.Stdin).Decode(&desc); err != nil {
		return fmt.Errorf("decode request descriptor: %w", err)
	}
	if desc.Path == "" {
		return errors.New("request descriptor needs a path")
	}

	uri := desc.Path
	if len(desc.Query) > 0 {
		query := url.Values{}
		for k, v := range desc.Query {
			query.Set(k, v)
		}
		uri += "?" + query.Encode()
	}

	signer := signing.NewSigner(cred, signing.Config{})
	token, err := signer.Sign(uri, []byte(desc.Body), time.Now())
	if err != nil {
		return fmt.Errorf("sign request: %w", err)
	}

	return json.NewEncoder(cfg.Stdout).Encode(map[string]any{
		"apiKey":        cred.KeyID(),
		"authorization": "Bearer " + token.Serialized,
		"uri":           uri,
		"nonce":         token.Nonce,
		"issuedAt":      token.IssuedAt.Unix(),
		"expiresAt":     token.ExpiresAt.Unix(),
	})
}

func keygen(cfg Config) error {
	kp, err := custovault.GenerateWebhookKeypair()
	if err != nil {
		return fmt.Errorf("generate keypair: %w", err)
	}
	return json.NewEncoder(cfg.Stdout).Encode(kp.Export())
}

// verifyWebhook checks the body on stdin against the given header values.
// Verification keys come from CUSTOVAULT_WEBHOOK_RSA_KEY_PATH and
// CUSTOVAULT_WEBHOOK_MLDSA_KEY.
func verifyWebhook(cfg Config, signature, timestamp string) error {
	body, err := io.ReadAll(cfg.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	var opts []custovault.VerifierOption
	if path := os.Getenv("CUSTOVAULT_WEBHOOK_RSA_KEY_PATH"); path != "" {
		pemBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read rsa key: %w", err)
		}
		opts = append(opts, custovault.WithRSAPublicKey(pemBytes))
	}
	if key := os.Getenv("CUSTOVAULT_WEBHOOK_MLDSA_KEY"); key != "" {
		opts = append(opts, custovault.WithMLDSAPublicKeyBase64(key))
	}

	verifier, err := custovault.NewWebhookVerifier(opts...)
	if err != nil {
		return fmt.Errorf("build verifier: %w", err)
	}

	event, err := verifier.VerifyPayload(body, signature, timestamp)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	return json.NewEncoder(cfg.Stdout).Encode(map[string]any{
		"verified": event.Verified,
		"scheme":   string(event.Scheme),
	})
}

// decryptWebhook verifies and decrypts the encrypted envelope on stdin
// using an exported keypair file and writes the plaintext to stdout.
func decryptWebhook(cfg Config, keypairPath string) error {
	kp, err := custovault.ImportWebhookKeypairFromFile(keypairPath)
	if err != nil {
		return fmt.Errorf("load keypair: %w", err)
	}

	body, err := io.ReadAll(cfg.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	event := &custovault.WebhookEvent{Raw: body}
	plaintext, err := event.DecryptPayload(kp)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}
	_, err = cfg.Stdout.Write(plaintext)
	return err
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
