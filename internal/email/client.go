// Package email предоставляет клиент сервиса рассылки Resend и шаблоны писем.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

// Client инкапсулирует HTTP-взаимодействие с API рассылки Resend.
// Клиент безопасен для одновременного использования из нескольких запросов.
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewClient создаёт клиент рассылки с указанным ключом API и адресом отправителя.
// Пустые значения не считаются ошибкой конструирования: Send вернёт ошибку
// при фактической попытке отправки.
func NewClient(apiKey, from string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL создаёт клиент с нестандартным адресом API (для тестов).
func NewClientWithBaseURL(apiKey, from, baseURL string) *Client {
	c := NewClient(apiKey, from)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send отправляет одно HTML-письмо списку получателей.
func (c *Client) Send(ctx context.Context, to []string, subject, html string) error {
	if c == nil || c.apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY missing")
	}
	if c.from == "" {
		return fmt.Errorf("FROM_EMAIL missing")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      to,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
