package custovault

import (
	"context"
	"time"

	"github.com/custovault/client-go/internal/api"
)

// VaultAccount is a segregated custody account holding per-asset wallets.
type VaultAccount struct {
	ID            string
	Name          string
	CustomerRefID string
	HiddenOnUI    bool
	AutoFuel      bool
	Wallets       []*VaultWallet
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// VaultWallet is one asset's wallet within a vault account. Balances are
// decimal strings in the asset's display unit.
type VaultWallet struct {
	AssetID   string
	Address   string
	Tag       string
	Total     string
	Available string
	Pending   string
	Frozen    string
	Locked    string
}

// VaultAccountPage is one page of a vault account listing. NextCursor is
// empty on the last page.
type VaultAccountPage struct {
	Accounts   []*VaultAccount
	NextCursor string
}

func vaultAccountFromDTO(dto *api.VaultAccountDTO) *VaultAccount {
	if dto == nil {
		return nil
	}
	acct := &VaultAccount{
		ID:            dto.ID,
		Name:          dto.Name,
		CustomerRefID: dto.CustomerRefID,
		HiddenOnUI:    dto.HiddenOnUI,
		AutoFuel:      dto.AutoFuel,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	}
	for _, asset := range dto.Assets {
		acct.Wallets = append(acct.Wallets, vaultWalletFromDTO(asset))
	}
	return acct
}

func vaultWalletFromDTO(dto *api.VaultAssetDTO) *VaultWallet {
	if dto == nil {
		return nil
	}
	return &VaultWallet{
		AssetID:   dto.ID,
		Address:   dto.Address,
		Tag:       dto.Tag,
		Total:     dto.Total,
		Available: dto.Available,
		Pending:   dto.Pending,
		Frozen:    dto.Frozen,
		Locked:    dto.LockedAmount,
	}
}

// CreateVaultAccount creates a new vault account. The client attaches a
// fresh idempotency key, so transport retries cannot create duplicates.
func (c *Client) CreateVaultAccount(ctx context.Context, name string, opts ...VaultOption) (*VaultAccount, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &vaultConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := &api.CreateVaultAccountRequest{
		Name:          name,
		CustomerRefID: cfg.customerRefID,
		HiddenOnUI:    cfg.hiddenOnUI,
		AutoFuel:      cfg.autoFuel,
	}

	dto, err := c.apiClient.CreateVaultAccount(ctx, req, NewIdempotencyKey())
	if err != nil {
		return nil, wrapError(err)
	}
	return vaultAccountFromDTO(dto), nil
}

// GetVaultAccount fetches a vault account by id, including its wallets.
func (c *Client) GetVaultAccount(ctx context.Context, vaultID string) (*VaultAccount, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.GetVaultAccount(ctx, vaultID)
	if err != nil {
		return nil, wrapError(err)
	}
	return vaultAccountFromDTO(dto), nil
}

// ListVaultAccounts returns one page of vault accounts. Pass WithAfter with
// the returned cursor to fetch the next page, or use ListAllVaultAccounts
// to walk every page.
func (c *Client) ListVaultAccounts(ctx context.Context, opts ...ListOption) (*VaultAccountPage, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &listConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	list, meta, err := c.apiClient.ListVaultAccounts(ctx, &api.ListVaultAccountsQuery{
		NamePrefix: cfg.namePrefix,
		After:      cfg.after,
		Limit:      cfg.limit,
	})
	if err != nil {
		return nil, wrapError(err)
	}

	page := &VaultAccountPage{NextCursor: meta.NextCursor}
	for _, dto := range list.Accounts {
		page.Accounts = append(page.Accounts, vaultAccountFromDTO(dto))
	}
	return page, nil
}

// ListAllVaultAccounts walks every page of the vault account listing.
func (c *Client) ListAllVaultAccounts(ctx context.Context, opts ...ListOption) ([]*VaultAccount, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &listConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var all []*VaultAccount
	for {
		list, meta, err := c.apiClient.ListVaultAccounts(ctx, &api.ListVaultAccountsQuery{
			NamePrefix: cfg.namePrefix,
			After:      cfg.after,
			Limit:      cfg.limit,
		})
		if err != nil {
			return nil, wrapError(err)
		}
		for _, dto := range list.Accounts {
			all = append(all, vaultAccountFromDTO(dto))
		}
		if meta.NextCursor == "" || meta.NextCursor == cfg.after {
			return all, nil
		}
		cfg.after = meta.NextCursor
	}
}

// RenameVaultAccount changes a vault account's display name.
func (c *Client) RenameVaultAccount(ctx context.Context, vaultID, name string) (*VaultAccount, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.UpdateVaultAccount(ctx, vaultID, &api.UpdateVaultAccountRequest{Name: name})
	if err != nil {
		return nil, wrapError(err)
	}
	return vaultAccountFromDTO(dto), nil
}

// CreateVaultWallet activates an asset wallet inside a vault account and
// returns it with its deposit address.
func (c *Client) CreateVaultWallet(ctx context.Context, vaultID, assetID string) (*VaultWallet, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.CreateVaultWallet(ctx, vaultID, assetID, NewIdempotencyKey())
	if err != nil {
		return nil, wrapError(err)
	}
	return vaultWalletFromDTO(dto), nil
}

// GetVaultWallet fetches one asset wallet of a vault account.
func (c *Client) GetVaultWallet(ctx context.Context, vaultID, assetID string) (*VaultWallet, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.GetVaultWallet(ctx, vaultID, assetID)
	if err != nil {
		return nil, wrapError(err)
	}
	return vaultWalletFromDTO(dto), nil
}
