package api

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestIdempotentMethod(t *testing.T) {
	tests := []struct {
		method   string
		expected bool
	}{
		{http.MethodGet, true},
		{http.MethodHead, true},
		{http.MethodPut, true},
		{http.MethodDelete, true},
		{http.MethodPost, false},
		{http.MethodPatch, false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			if got := idempotentMethod(tt.method); got != tt.expected {
				t.Errorf("idempotentMethod(%s) = %v, want %v", tt.method, got, tt.expected)
			}
		})
	}
}

func TestProvablyPreSend(t *testing.T) {
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	readErr := &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"dial failure", dialErr, true},
		{"wrapped dial failure", &url.Error{Op: "Post", URL: "http://x", Err: dialErr}, true},
		{"read failure", readErr, false},
		{"wrapped read failure", fmt.Errorf("request: %w", readErr), false},
		{"eof mid-response", io.EOF, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := provablyPreSend(tt.err); got != tt.expected {
				t.Errorf("provablyPreSend(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
		ok       bool
	}{
		{"absent", "", 0, false},
		{"zero seconds", "0", 0, true},
		{"five seconds", "5", 5 * time.Second, true},
		{"negative rejected", "-1", 0, false},
		{"http date rejected", "Wed, 21 Oct 2015 07:28:00 GMT", 0, false},
		{"garbage rejected", "soon", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.value != "" {
				header.Set("Retry-After", tt.value)
			}
			got, ok := retryAfter(header)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("retryAfter(%q) = (%v, %v), want (%v, %v)",
					tt.value, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestListVaultAccountsQuery_Values(t *testing.T) {
	tests := []struct {
		name     string
		query    *ListVaultAccountsQuery
		expected string
	}{
		{"nil query", nil, ""},
		{"empty query", &ListVaultAccountsQuery{}, ""},
		{"name prefix only", &ListVaultAccountsQuery{NamePrefix: "treasury"}, "namePrefix=treasury"},
		{
			"all fields",
			&ListVaultAccountsQuery{NamePrefix: "ops", After: "cur-1", Limit: 50},
			"after=cur-1&limit=50&namePrefix=ops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.values().Encode(); got != tt.expected {
				t.Errorf("values().Encode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestListTransactionsQuery_Values(t *testing.T) {
	tests := []struct {
		name     string
		query    *ListTransactionsQuery
		expected string
	}{
		{"nil query", nil, ""},
		{"empty query", &ListTransactionsQuery{}, ""},
		{"status only", &ListTransactionsQuery{Status: "COMPLETED"}, "status=COMPLETED"},
		{
			"all fields",
			&ListTransactionsQuery{
				Status:   "PENDING",
				AssetID:  "ETH",
				SourceID: "v-1",
				DestID:   "v-2",
				After:    "cur-9",
				Limit:    25,
			},
			"after=cur-9&assetId=ETH&destId=v-2&limit=25&sourceId=v-1&status=PENDING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.values().Encode(); got != tt.expected {
				t.Errorf("values().Encode() = %q, want %q", got, tt.expected)
			}
		})
	}
}
