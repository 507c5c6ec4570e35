package custovault

import "github.com/custovault/client-go/internal/api"

// webhookCreateConfig holds configuration for creating a webhook.
type webhookCreateConfig struct {
	events      []WebhookEventType
	description string
}

// webhookUpdateConfig holds configuration for updating a webhook.
type webhookUpdateConfig struct {
	url         *string
	events      []WebhookEventType
	description *string
	enabled     *bool
}

// WebhookCreateOption configures webhook creation.
type WebhookCreateOption func(*webhookCreateConfig)

// WebhookUpdateOption configures webhook updates.
type WebhookUpdateOption func(*webhookUpdateConfig)

// Create options

// WithWebhookEvents limits the webhook to the given event types.
// Without this option the webhook receives every event.
func WithWebhookEvents(events ...WebhookEventType) WebhookCreateOption {
	return func(c *webhookCreateConfig) {
		c.events = events
	}
}

// WithWebhookDescription sets the description for the webhook.
func WithWebhookDescription(description string) WebhookCreateOption {
	return func(c *webhookCreateConfig) {
		c.description = description
	}
}

// Update options

// WithUpdateURL updates the webhook URL.
func WithUpdateURL(url string) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.url = &url
	}
}

// WithUpdateEvents updates the event types delivered to the webhook.
func WithUpdateEvents(events ...WebhookEventType) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.events = events
	}
}

// WithUpdateDescription updates the description for the webhook.
func WithUpdateDescription(description string) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.description = &description
	}
}

// WithUpdateEnabled enables or disables the webhook.
func WithUpdateEnabled(enabled bool) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.enabled = &enabled
	}
}

// buildCreateRequest builds an API request from create options.
func buildCreateRequest(url string, opts []WebhookCreateOption) *api.CreateWebhookRequest {
	cfg := &webhookCreateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := &api.CreateWebhookRequest{
		URL:         url,
		Description: cfg.description,
	}

	if len(cfg.events) > 0 {
		req.Events = make([]string, len(cfg.events))
		for i, e := range cfg.events {
			req.Events[i] = string(e)
		}
	}

	return req
}

// buildUpdateRequest builds an API request from update options.
func buildUpdateRequest(opts []WebhookUpdateOption) *api.UpdateWebhookRequest {
	cfg := &webhookUpdateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := &api.UpdateWebhookRequest{
		URL:         cfg.url,
		Description: cfg.description,
		Enabled:     cfg.enabled,
	}

	if cfg.events != nil {
		req.Events = make([]string, len(cfg.events))
		for i, e := range cfg.events {
			req.Events[i] = string(e)
		}
	}

	return req
}
