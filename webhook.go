package custovault

import (
	"context"
	"time"

	"github.com/custovault/client-go/internal/api"
)

// WebhookEventType represents the type of event that triggers a webhook.
type WebhookEventType string

const (
	// WebhookEventTransactionCreated is triggered when a transaction is submitted.
	WebhookEventTransactionCreated WebhookEventType = "transaction.created"
	// WebhookEventTransactionStatusUpdated is triggered on every status change.
	WebhookEventTransactionStatusUpdated WebhookEventType = "transaction.status_updated"
	// WebhookEventVaultAccountCreated is triggered when a vault account is created.
	WebhookEventVaultAccountCreated WebhookEventType = "vault_account.created"
	// WebhookEventVaultWalletCreated is triggered when an asset wallet is activated.
	WebhookEventVaultWalletCreated WebhookEventType = "vault_wallet.created"
)

// Webhook represents a webhook endpoint registration.
type Webhook struct {
	// ID is the unique identifier for the webhook.
	ID string
	// URL is the endpoint that receives event notifications.
	URL string
	// Events is the list of event types delivered to this webhook. Empty
	// means all events.
	Events []WebhookEventType
	// Description is the optional description of the webhook.
	Description string
	// Enabled indicates whether the webhook is active.
	Enabled bool
	// Stats contains delivery statistics for this webhook.
	Stats *WebhookStats
	// CreatedAt is when the webhook was created.
	CreatedAt time.Time
	// UpdatedAt is when the webhook was last updated.
	UpdatedAt time.Time
}

// WebhookStats represents webhook delivery statistics.
type WebhookStats struct {
	// TotalDeliveries is the total number of delivery attempts.
	TotalDeliveries int
	// SuccessfulDeliveries is the number of successful deliveries.
	SuccessfulDeliveries int
	// FailedDeliveries is the number of failed deliveries.
	FailedDeliveries int
	// LastDeliveryAt is when the last delivery attempt was made.
	LastDeliveryAt *time.Time
	// LastSuccessAt is when the last successful delivery was made.
	LastSuccessAt *time.Time
	// LastFailureAt is when the last failed delivery was made.
	LastFailureAt *time.Time
}

// WebhookListResult represents the response from listing webhooks.
type WebhookListResult struct {
	// Webhooks is the list of registered webhooks.
	Webhooks []*Webhook
	// Total is the total number of webhooks.
	Total int
}

// webhookFromDTO converts an API DTO to a public Webhook type.
func webhookFromDTO(dto *api.WebhookDTO) *Webhook {
	if dto == nil {
		return nil
	}

	w := &Webhook{
		ID:          dto.ID,
		URL:         dto.URL,
		Description: dto.Description,
		Enabled:     dto.Enabled,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}

	w.Events = make([]WebhookEventType, len(dto.Events))
	for i, e := range dto.Events {
		w.Events[i] = WebhookEventType(e)
	}

	if dto.Stats != nil {
		w.Stats = &WebhookStats{
			TotalDeliveries:      dto.Stats.TotalDeliveries,
			SuccessfulDeliveries: dto.Stats.SuccessfulDeliveries,
			FailedDeliveries:     dto.Stats.FailedDeliveries,
			LastDeliveryAt:       dto.Stats.LastDeliveryAt,
			LastSuccessAt:        dto.Stats.LastSuccessAt,
			LastFailureAt:        dto.Stats.LastFailureAt,
		}
	}

	return w
}

// CreateWebhook registers a webhook endpoint for the workspace. Pair the
// registration with a WebhookVerifier on the receiving side; deliveries
// are signed, never bearer-authenticated.
func (c *Client) CreateWebhook(ctx context.Context, url string, opts ...WebhookCreateOption) (*Webhook, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.CreateWebhook(ctx, buildCreateRequest(url, opts))
	if err != nil {
		return nil, wrapError(err)
	}
	return webhookFromDTO(dto), nil
}

// ListWebhooks returns all webhooks registered for the workspace.
func (c *Client) ListWebhooks(ctx context.Context) (*WebhookListResult, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.ListWebhooks(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	result := &WebhookListResult{Total: dto.Total}
	result.Webhooks = make([]*Webhook, len(dto.Webhooks))
	for i, w := range dto.Webhooks {
		result.Webhooks[i] = webhookFromDTO(w)
	}
	return result, nil
}

// GetWebhook fetches a webhook by id.
func (c *Client) GetWebhook(ctx context.Context, webhookID string) (*Webhook, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.GetWebhook(ctx, webhookID)
	if err != nil {
		return nil, wrapError(err)
	}
	return webhookFromDTO(dto), nil
}

// UpdateWebhook applies the given changes to a webhook. Fields without a
// corresponding option are left untouched.
func (c *Client) UpdateWebhook(ctx context.Context, webhookID string, opts ...WebhookUpdateOption) (*Webhook, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.UpdateWebhook(ctx, webhookID, buildUpdateRequest(opts))
	if err != nil {
		return nil, wrapError(err)
	}
	return webhookFromDTO(dto), nil
}

// DeleteWebhook removes a webhook registration.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	return wrapError(c.apiClient.DeleteWebhook(ctx, webhookID))
}

// ResendWebhooks redelivers every failed webhook notification in the
// workspace and returns the number of messages queued.
func (c *Client) ResendWebhooks(ctx context.Context) (int, error) {
	if err := c.checkClosed(); err != nil {
		return 0, err
	}

	dto, err := c.apiClient.ResendWebhooks(ctx, &api.ResendWebhooksRequest{})
	if err != nil {
		return 0, wrapError(err)
	}
	return dto.MessagesCount, nil
}

// ResendTransactionWebhooks redelivers the notifications recorded for one
// transaction, regardless of their delivery state.
func (c *Client) ResendTransactionWebhooks(ctx context.Context, txID string) (int, error) {
	if err := c.checkClosed(); err != nil {
		return 0, err
	}

	dto, err := c.apiClient.ResendWebhooks(ctx, &api.ResendWebhooksRequest{TxID: txID})
	if err != nil {
		return 0, wrapError(err)
	}
	return dto.MessagesCount, nil
}
