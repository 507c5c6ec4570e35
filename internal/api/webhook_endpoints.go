package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custovault/client-go/internal/apierrors"
)

// CreateWebhook registers a new webhook endpoint.
func (c *Client) CreateWebhook(ctx context.Context, req *CreateWebhookRequest) (*WebhookDTO, error) {
	var result WebhookDTO
	r := &Request{Method: http.MethodPost, Path: "/v1/webhooks", Body: req}
	if _, err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceWebhook)
	}
	return &result, nil
}

// ListWebhooks returns all registered webhooks.
func (c *Client) ListWebhooks(ctx context.Context) (*WebhookListDTO, error) {
	var result WebhookListDTO
	if _, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: "/v1/webhooks"}, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceWebhook)
	}
	return &result, nil
}

// GetWebhook returns a specific webhook by ID.
func (c *Client) GetWebhook(ctx context.Context, webhookID string) (*WebhookDTO, error) {
	var result WebhookDTO
	path := fmt.Sprintf("/v1/webhooks/%s", url.PathEscape(webhookID))
	if _, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path}, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceWebhook)
	}
	return &result, nil
}

// UpdateWebhook updates a webhook.
func (c *Client) UpdateWebhook(ctx context.Context, webhookID string, req *UpdateWebhookRequest) (*WebhookDTO, error) {
	var result WebhookDTO
	path := fmt.Sprintf("/v1/webhooks/%s", url.PathEscape(webhookID))
	if _, err := c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: req}, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceWebhook)
	}
	return &result, nil
}

// DeleteWebhook deletes a webhook.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	path := fmt.Sprintf("/v1/webhooks/%s", url.PathEscape(webhookID))
	_, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: path}, nil)
	return apierrors.WithResourceType(err, apierrors.ResourceWebhook)
}

// ResendWebhooks requests a replay of failed webhook deliveries, optionally
// narrowed to one transaction.
func (c *Client) ResendWebhooks(ctx context.Context, req *ResendWebhooksRequest) (*ResendWebhooksResponseDTO, error) {
	var result ResendWebhooksResponseDTO
	r := &Request{Method: http.MethodPost, Path: "/v1/webhooks/resend", Body: req}
	if _, err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceWebhook)
	}
	return &result, nil
}
