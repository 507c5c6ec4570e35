package api

import (
	"net/url"
	"strconv"
	"time"
)

// PingResponse represents the GET /v1/ping response.
type PingResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// PagingDTO carries the in-body continuation cursor for list responses.
type PagingDTO struct {
	After string `json:"after,omitempty"`
}

// CreateVaultAccountRequest is the request body for creating a vault account.
type CreateVaultAccountRequest struct {
	Name          string `json:"name"`
	CustomerRefID string `json:"customerRefId,omitempty"`
	HiddenOnUI    bool   `json:"hiddenOnUI,omitempty"`
	AutoFuel      bool   `json:"autoFuel,omitempty"`
}

// UpdateVaultAccountRequest is the request body for renaming a vault account.
type UpdateVaultAccountRequest struct {
	Name string `json:"name"`
}

// VaultAccountDTO represents a vault account from the API.
type VaultAccountDTO struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	CustomerRefID string           `json:"customerRefId,omitempty"`
	HiddenOnUI    bool             `json:"hiddenOnUI,omitempty"`
	AutoFuel      bool             `json:"autoFuel,omitempty"`
	Assets        []*VaultAssetDTO `json:"assets,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// VaultAssetDTO represents one asset wallet within a vault account.
type VaultAssetDTO struct {
	ID           string `json:"id"`
	Address      string `json:"address,omitempty"`
	Tag          string `json:"tag,omitempty"`
	Total        string `json:"total"`
	Available    string `json:"available"`
	Pending      string `json:"pending"`
	Frozen       string `json:"frozen,omitempty"`
	LockedAmount string `json:"lockedAmount,omitempty"`
}

// VaultAccountListDTO represents the response from listing vault accounts.
type VaultAccountListDTO struct {
	Accounts []*VaultAccountDTO `json:"accounts"`
	Paging   *PagingDTO         `json:"paging,omitempty"`
}

// ListVaultAccountsQuery narrows and pages a vault account listing.
type ListVaultAccountsQuery struct {
	NamePrefix string
	After      string
	Limit      int
}

func (q *ListVaultAccountsQuery) values() url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	if q.NamePrefix != "" {
		v.Set("namePrefix", q.NamePrefix)
	}
	if q.After != "" {
		v.Set("after", q.After)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

// AssetDTO represents a supported asset.
type AssetDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	ContractAddress string `json:"contractAddress,omitempty"`
	NativeAsset     string `json:"nativeAsset,omitempty"`
	Decimals        int    `json:"decimals"`
}

// TransferPeerPathDTO identifies one side of a transfer.
type TransferPeerPathDTO struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Address string `json:"address,omitempty"`
	Tag     string `json:"tag,omitempty"`
}

// CreateTransactionRequest is the request body for submitting a transaction.
// The same shape feeds the fee estimator.
type CreateTransactionRequest struct {
	AssetID      string               `json:"assetId"`
	Source       *TransferPeerPathDTO `json:"source"`
	Destination  *TransferPeerPathDTO `json:"destination"`
	Amount       string               `json:"amount"`
	Fee          string               `json:"fee,omitempty"`
	FeeLevel     string               `json:"feeLevel,omitempty"`
	Note         string               `json:"note,omitempty"`
	ExternalTxID string               `json:"externalTxId,omitempty"`
}

// CreateTransactionResponseDTO represents the response from submitting a
// transaction.
type CreateTransactionResponseDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TransactionDTO represents a transaction from the API.
type TransactionDTO struct {
	ID               string               `json:"id"`
	AssetID          string               `json:"assetId"`
	Source           *TransferPeerPathDTO `json:"source"`
	Destination      *TransferPeerPathDTO `json:"destination"`
	Amount           string               `json:"amount"`
	Fee              string               `json:"fee,omitempty"`
	NetworkFee       string               `json:"networkFee,omitempty"`
	Status           string               `json:"status"`
	SubStatus        string               `json:"subStatus,omitempty"`
	TxHash           string               `json:"txHash,omitempty"`
	Note             string               `json:"note,omitempty"`
	ExternalTxID     string               `json:"externalTxId,omitempty"`
	NumConfirmations int                  `json:"numOfConfirmations,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	LastUpdated      time.Time            `json:"lastUpdated"`
}

// TransactionListDTO represents the response from listing transactions.
type TransactionListDTO struct {
	Transactions []*TransactionDTO `json:"transactions"`
	Paging       *PagingDTO        `json:"paging,omitempty"`
}

// ListTransactionsQuery narrows and pages a transaction listing.
type ListTransactionsQuery struct {
	Status   string
	AssetID  string
	SourceID string
	DestID   string
	After    string
	Limit    int
}

func (q *ListTransactionsQuery) values() url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.AssetID != "" {
		v.Set("assetId", q.AssetID)
	}
	if q.SourceID != "" {
		v.Set("sourceId", q.SourceID)
	}
	if q.DestID != "" {
		v.Set("destId", q.DestID)
	}
	if q.After != "" {
		v.Set("after", q.After)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

// CancelTransactionResponseDTO represents the response from cancelling a
// transaction.
type CancelTransactionResponseDTO struct {
	Success bool `json:"success"`
}

// EstimatedFeeDTO represents one fee tier of a fee estimate.
type EstimatedFeeDTO struct {
	FeePerByte  string `json:"feePerByte,omitempty"`
	GasPrice    string `json:"gasPrice,omitempty"`
	NetworkFee  string `json:"networkFee,omitempty"`
	BaseFee     string `json:"baseFee,omitempty"`
	PriorityFee string `json:"priorityFee,omitempty"`
}

// EstimateTransactionFeeResponseDTO represents the response from estimating
// transaction fees.
type EstimateTransactionFeeResponseDTO struct {
	Low    *EstimatedFeeDTO `json:"low"`
	Medium *EstimatedFeeDTO `json:"medium"`
	High   *EstimatedFeeDTO `json:"high"`
}
