package custovault

import (
	"context"
	"time"

	"github.com/custovault/client-go/internal/api"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusSubmitted            TransactionStatus = "SUBMITTED"
	StatusPendingSignature     TransactionStatus = "PENDING_SIGNATURE"
	StatusPendingAuthorization TransactionStatus = "PENDING_AUTHORIZATION"
	StatusQueued               TransactionStatus = "QUEUED"
	StatusBroadcasting         TransactionStatus = "BROADCASTING"
	StatusConfirming           TransactionStatus = "CONFIRMING"
	StatusCancelling           TransactionStatus = "CANCELLING"
	StatusCompleted            TransactionStatus = "COMPLETED"
	StatusCancelled            TransactionStatus = "CANCELLED"
	StatusRejected             TransactionStatus = "REJECTED"
	StatusFailed               TransactionStatus = "FAILED"
	StatusBlocked              TransactionStatus = "BLOCKED"
)

// Terminal reports whether the status is final: the transaction will not
// move again and any held funds have been settled or released.
func (s TransactionStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected, StatusFailed, StatusBlocked:
		return true
	}
	return false
}

// PeerType identifies what kind of endpoint a transfer peer is.
type PeerType string

const (
	PeerVaultAccount   PeerType = "VAULT_ACCOUNT"
	PeerExternalWallet PeerType = "EXTERNAL_WALLET"
	PeerOneTimeAddress PeerType = "ONE_TIME_ADDRESS"
)

// TransferPeer identifies one side of a transfer: a vault account by id,
// or an external destination by address.
type TransferPeer struct {
	Type    PeerType
	ID      string
	Address string
	Tag     string
}

// FeeLevel selects a fee tier for a transaction.
type FeeLevel string

const (
	FeeLevelLow    FeeLevel = "LOW"
	FeeLevelMedium FeeLevel = "MEDIUM"
	FeeLevelHigh   FeeLevel = "HIGH"
)

// TransferRequest describes a transaction to submit or estimate. Amounts
// are decimal strings in the asset's display unit.
type TransferRequest struct {
	AssetID     string
	Source      *TransferPeer
	Destination *TransferPeer
	Amount      string

	// Fee pins an explicit fee; FeeLevel selects a tier instead. Set at
	// most one.
	Fee      string
	FeeLevel FeeLevel

	Note         string
	ExternalTxID string

	// IdempotencyKey deduplicates retried submissions. When empty,
	// CreateTransaction generates one, so a single call can never
	// double-spend; supply your own to deduplicate across process
	// restarts.
	IdempotencyKey string
}

// CreateTransactionResult is the acknowledgement for a submitted
// transaction. Fetch the full record with GetTransaction or wait for
// settlement with WaitForTransaction.
type CreateTransactionResult struct {
	ID     string
	Status TransactionStatus
}

// Transaction is a transfer tracked by the platform.
type Transaction struct {
	ID            string
	AssetID       string
	Source        *TransferPeer
	Destination   *TransferPeer
	Amount        string
	Fee           string
	NetworkFee    string
	Status        TransactionStatus
	SubStatus     string
	TxHash        string
	Note          string
	ExternalTxID  string
	Confirmations int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TransactionPage is one page of a transaction listing. NextCursor is
// empty on the last page.
type TransactionPage struct {
	Transactions []*Transaction
	NextCursor   string
}

// FeeEstimate holds the three fee tiers for a prospective transaction.
type FeeEstimate struct {
	Low    *FeeTier
	Medium *FeeTier
	High   *FeeTier
}

// FeeTier is one tier of a fee estimate. Fields not applicable to the
// asset's network are empty.
type FeeTier struct {
	FeePerByte  string
	GasPrice    string
	NetworkFee  string
	BaseFee     string
	PriorityFee string
}

func peerToDTO(p *TransferPeer) *api.TransferPeerPathDTO {
	if p == nil {
		return nil
	}
	return &api.TransferPeerPathDTO{
		Type:    string(p.Type),
		ID:      p.ID,
		Address: p.Address,
		Tag:     p.Tag,
	}
}

func peerFromDTO(dto *api.TransferPeerPathDTO) *TransferPeer {
	if dto == nil {
		return nil
	}
	return &TransferPeer{
		Type:    PeerType(dto.Type),
		ID:      dto.ID,
		Address: dto.Address,
		Tag:     dto.Tag,
	}
}

func transactionFromDTO(dto *api.TransactionDTO) *Transaction {
	if dto == nil {
		return nil
	}
	return &Transaction{
		ID:            dto.ID,
		AssetID:       dto.AssetID,
		Source:        peerFromDTO(dto.Source),
		Destination:   peerFromDTO(dto.Destination),
		Amount:        dto.Amount,
		Fee:           dto.Fee,
		NetworkFee:    dto.NetworkFee,
		Status:        TransactionStatus(dto.Status),
		SubStatus:     dto.SubStatus,
		TxHash:        dto.TxHash,
		Note:          dto.Note,
		ExternalTxID:  dto.ExternalTxID,
		Confirmations: dto.NumConfirmations,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.LastUpdated,
	}
}

func feeTierFromDTO(dto *api.EstimatedFeeDTO) *FeeTier {
	if dto == nil {
		return nil
	}
	return &FeeTier{
		FeePerByte:  dto.FeePerByte,
		GasPrice:    dto.GasPrice,
		NetworkFee:  dto.NetworkFee,
		BaseFee:     dto.BaseFee,
		PriorityFee: dto.PriorityFee,
	}
}

func transferRequestToDTO(req *TransferRequest) *api.CreateTransactionRequest {
	return &api.CreateTransactionRequest{
		AssetID:      req.AssetID,
		Source:       peerToDTO(req.Source),
		Destination:  peerToDTO(req.Destination),
		Amount:       req.Amount,
		Fee:          req.Fee,
		FeeLevel:     string(req.FeeLevel),
		Note:         req.Note,
		ExternalTxID: req.ExternalTxID,
	}
}

// CreateTransaction submits a transfer. The idempotency key from the
// request, or a generated one, stays constant across transport retries,
// so a submission is executed at most once however often it is retried.
func (c *Client) CreateTransaction(ctx context.Context, req *TransferRequest) (*CreateTransactionResult, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	key := req.IdempotencyKey
	if key == "" {
		key = NewIdempotencyKey()
	}

	dto, err := c.apiClient.CreateTransaction(ctx, transferRequestToDTO(req), key)
	if err != nil {
		return nil, wrapError(err)
	}
	return &CreateTransactionResult{
		ID:     dto.ID,
		Status: TransactionStatus(dto.Status),
	}, nil
}

// GetTransaction fetches a transaction by id.
func (c *Client) GetTransaction(ctx context.Context, txID string) (*Transaction, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.GetTransaction(ctx, txID)
	if err != nil {
		return nil, wrapError(err)
	}
	return transactionFromDTO(dto), nil
}

// ListTransactions returns one page of transactions, newest first. Combine
// filters and pass WithAfter with the returned cursor for the next page.
func (c *Client) ListTransactions(ctx context.Context, opts ...ListOption) (*TransactionPage, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &listConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	list, meta, err := c.apiClient.ListTransactions(ctx, &api.ListTransactionsQuery{
		Status:   string(cfg.status),
		AssetID:  cfg.assetID,
		SourceID: cfg.sourceID,
		DestID:   cfg.destID,
		After:    cfg.after,
		Limit:    cfg.limit,
	})
	if err != nil {
		return nil, wrapError(err)
	}

	page := &TransactionPage{NextCursor: meta.NextCursor}
	for _, dto := range list.Transactions {
		page.Transactions = append(page.Transactions, transactionFromDTO(dto))
	}
	return page, nil
}

// ListAllTransactions walks every page of the transaction listing.
func (c *Client) ListAllTransactions(ctx context.Context, opts ...ListOption) ([]*Transaction, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &listConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var all []*Transaction
	for {
		list, meta, err := c.apiClient.ListTransactions(ctx, &api.ListTransactionsQuery{
			Status:   string(cfg.status),
			AssetID:  cfg.assetID,
			SourceID: cfg.sourceID,
			DestID:   cfg.destID,
			After:    cfg.after,
			Limit:    cfg.limit,
		})
		if err != nil {
			return nil, wrapError(err)
		}
		for _, dto := range list.Transactions {
			all = append(all, transactionFromDTO(dto))
		}
		if meta.NextCursor == "" || meta.NextCursor == cfg.after {
			return all, nil
		}
		cfg.after = meta.NextCursor
	}
}

// CancelTransaction asks the platform to cancel a transaction that has not
// been broadcast yet. It reports whether the cancellation was accepted;
// watch for StatusCancelled to confirm it took effect.
func (c *Client) CancelTransaction(ctx context.Context, txID string) (bool, error) {
	if err := c.checkClosed(); err != nil {
		return false, err
	}

	dto, err := c.apiClient.CancelTransaction(ctx, txID, NewIdempotencyKey())
	if err != nil {
		return false, wrapError(err)
	}
	return dto.Success, nil
}

// EstimateTransactionFee prices a prospective transfer without submitting
// it. The request is not signed into the ledger and needs no idempotency
// key.
func (c *Client) EstimateTransactionFee(ctx context.Context, req *TransferRequest) (*FeeEstimate, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.EstimateTransactionFee(ctx, transferRequestToDTO(req))
	if err != nil {
		return nil, wrapError(err)
	}
	return &FeeEstimate{
		Low:    feeTierFromDTO(dto.Low),
		Medium: feeTierFromDTO(dto.Medium),
		High:   feeTierFromDTO(dto.High),
	}, nil
}
