package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custovault/client-go/internal/apierrors"
)

// Ping checks connectivity and credential validity.
func (c *Client) Ping(ctx context.Context) (*PingResponse, error) {
	var result PingResponse
	if _, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: "/v1/ping"}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Vault account endpoints

// CreateVaultAccount creates a new vault account.
func (c *Client) CreateVaultAccount(ctx context.Context, req *CreateVaultAccountRequest, idempotencyKey string) (*VaultAccountDTO, error) {
	var result VaultAccountDTO
	r := &Request{
		Method:         http.MethodPost,
		Path:           "/v1/vault/accounts",
		Body:           req,
		IdempotencyKey: idempotencyKey,
	}
	if _, err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceVault)
	}
	return &result, nil
}

// GetVaultAccount returns a specific vault account by ID.
func (c *Client) GetVaultAccount(ctx context.Context, vaultID string) (*VaultAccountDTO, error) {
	var result VaultAccountDTO
	path := fmt.Sprintf("/v1/vault/accounts/%s", url.PathEscape(vaultID))
	if _, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path}, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceVault)
	}
	return &result, nil
}

// ListVaultAccounts returns one page of vault accounts.
func (c *Client) ListVaultAccounts(ctx context.Context, query *ListVaultAccountsQuery) (*VaultAccountListDTO, *Meta, error) {
	var result VaultAccountListDTO
	r := &Request{Method: http.MethodGet, Path: "/v1/vault/accounts", Query: query.values()}
	meta, err := c.Do(ctx, r, &result)
	if err != nil {
		return nil, nil, apierrors.WithResourceType(err, apierrors.ResourceVault)
	}
	return &result, meta, nil
}

// UpdateVaultAccount renames a vault account.
func (c *Client) UpdateVaultAccount(ctx context.Context, vaultID string, req *UpdateVaultAccountRequest) (*VaultAccountDTO, error) {
	var result VaultAccountDTO
	path := fmt.Sprintf("/v1/vault/accounts/%s", url.PathEscape(vaultID))
	if _, err := c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: req}, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceVault)
	}
	return &result, nil
}

// CreateVaultWallet activates an asset wallet inside a vault account.
func (c *Client) CreateVaultWallet(ctx context.Context, vaultID, assetID, idempotencyKey string) (*VaultAssetDTO, error) {
	var result VaultAssetDTO
	r := &Request{
		Method:         http.MethodPost,
		Path:           fmt.Sprintf("/v1/vault/accounts/%s/%s", url.PathEscape(vaultID), url.PathEscape(assetID)),
		IdempotencyKey: idempotencyKey,
	}
	if _, err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceVault)
	}
	return &result, nil
}

// GetVaultWallet returns the asset wallet of a vault account.
func (c *Client) GetVaultWallet(ctx context.Context, vaultID, assetID string) (*VaultAssetDTO, error) {
	var result VaultAssetDTO
	path := fmt.Sprintf("/v1/vault/accounts/%s/%s", url.PathEscape(vaultID), url.PathEscape(assetID))
	if _, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path}, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceVault)
	}
	return &result, nil
}

// Asset endpoints

// ListSupportedAssets returns every asset the platform supports.
func (c *Client) ListSupportedAssets(ctx context.Context) ([]*AssetDTO, error) {
	var result []*AssetDTO
	if _, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: "/v1/supported_assets"}, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceAsset)
	}
	return result, nil
}

// Transaction endpoints

// CreateTransaction submits a transaction.
func (c *Client) CreateTransaction(ctx context.Context, req *CreateTransactionRequest, idempotencyKey string) (*CreateTransactionResponseDTO, error) {
	var result CreateTransactionResponseDTO
	r := &Request{
		Method:         http.MethodPost,
		Path:           "/v1/transactions",
		Body:           req,
		IdempotencyKey: idempotencyKey,
	}
	if _, err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceTransaction)
	}
	return &result, nil
}

// GetTransaction returns a specific transaction by ID.
func (c *Client) GetTransaction(ctx context.Context, txID string) (*TransactionDTO, error) {
	var result TransactionDTO
	path := fmt.Sprintf("/v1/transactions/%s", url.PathEscape(txID))
	if _, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path}, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceTransaction)
	}
	return &result, nil
}

// ListTransactions returns one page of transactions.
func (c *Client) ListTransactions(ctx context.Context, query *ListTransactionsQuery) (*TransactionListDTO, *Meta, error) {
	var result TransactionListDTO
	r := &Request{Method: http.MethodGet, Path: "/v1/transactions", Query: query.values()}
	meta, err := c.Do(ctx, r, &result)
	if err != nil {
		return nil, nil, apierrors.WithResourceType(err, apierrors.ResourceTransaction)
	}
	return &result, meta, nil
}

// CancelTransaction requests cancellation of an in-flight transaction.
func (c *Client) CancelTransaction(ctx context.Context, txID, idempotencyKey string) (*CancelTransactionResponseDTO, error) {
	var result CancelTransactionResponseDTO
	r := &Request{
		Method:         http.MethodPost,
		Path:           fmt.Sprintf("/v1/transactions/%s/cancel", url.PathEscape(txID)),
		IdempotencyKey: idempotencyKey,
	}
	if _, err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceTransaction)
	}
	return &result, nil
}

// EstimateTransactionFee estimates the fee tiers for a prospective
// transaction without submitting it.
func (c *Client) EstimateTransactionFee(ctx context.Context, req *CreateTransactionRequest) (*EstimateTransactionFeeResponseDTO, error) {
	var result EstimateTransactionFeeResponseDTO
	r := &Request{Method: http.MethodPost, Path: "/v1/transactions/estimate_fee", Body: req}
	if _, err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceTransaction)
	}
	return &result, nil
}
