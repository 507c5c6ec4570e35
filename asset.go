package custovault

import (
	"context"

	"github.com/custovault/client-go/internal/api"
)

// Asset describes an asset supported by the workspace.
type Asset struct {
	ID              string
	Name            string
	Type            string // e.g. "BASE_ASSET", "ERC20"
	ContractAddress string
	NativeAsset     string
	Decimals        int
}

func assetFromDTO(dto *api.AssetDTO) *Asset {
	if dto == nil {
		return nil
	}
	return &Asset{
		ID:              dto.ID,
		Name:            dto.Name,
		Type:            dto.Type,
		ContractAddress: dto.ContractAddress,
		NativeAsset:     dto.NativeAsset,
		Decimals:        dto.Decimals,
	}
}

// ListSupportedAssets returns every asset the workspace can custody.
func (c *Client) ListSupportedAssets(ctx context.Context) ([]*Asset, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := c.apiClient.ListSupportedAssets(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	assets := make([]*Asset, 0, len(dtos))
	for _, dto := range dtos {
		assets = append(assets, assetFromDTO(dto))
	}
	return assets, nil
}
