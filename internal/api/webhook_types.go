package api

import "time"

// CreateWebhookRequest is the request body for creating a webhook.
type CreateWebhookRequest struct {
	URL         string   `json:"url"`
	Events      []string `json:"events,omitempty"`
	Description string   `json:"description,omitempty"`
}

// UpdateWebhookRequest is the request body for updating a webhook.
// All fields are optional - only provided fields will be updated.
type UpdateWebhookRequest struct {
	URL         *string  `json:"url,omitempty"`
	Events      []string `json:"events,omitempty"`
	Description *string  `json:"description,omitempty"`
	Enabled     *bool    `json:"enabled,omitempty"`
}

// WebhookDTO represents a webhook from the API.
type WebhookDTO struct {
	ID          string           `json:"id"`
	URL         string           `json:"url"`
	Events      []string         `json:"events"`
	Description string           `json:"description,omitempty"`
	Enabled     bool             `json:"enabled"`
	Stats       *WebhookStatsDTO `json:"stats,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// WebhookStatsDTO represents webhook delivery statistics.
type WebhookStatsDTO struct {
	TotalDeliveries      int        `json:"totalDeliveries"`
	SuccessfulDeliveries int        `json:"successfulDeliveries"`
	FailedDeliveries     int        `json:"failedDeliveries"`
	LastDeliveryAt       *time.Time `json:"lastDeliveryAt,omitempty"`
	LastSuccessAt        *time.Time `json:"lastSuccessAt,omitempty"`
	LastFailureAt        *time.Time `json:"lastFailureAt,omitempty"`
}

// WebhookListDTO represents the response from listing webhooks.
type WebhookListDTO struct {
	Webhooks []*WebhookDTO `json:"webhooks"`
	Total    int           `json:"total"`
}

// ResendWebhooksRequest is the request body for replaying webhook deliveries.
// An empty TxID requests a resend of all failed deliveries.
type ResendWebhooksRequest struct {
	TxID string `json:"txId,omitempty"`
}

// ResendWebhooksResponseDTO represents the response from replaying webhook
// deliveries.
type ResendWebhooksResponseDTO struct {
	MessagesCount int `json:"messagesCount"`
}
