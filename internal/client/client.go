// Package client обращается к API навигации портфеля.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stockfolio/internal/logger"
	"stockfolio/internal/models"

	"go.uber.org/zap"
)

const (
	CSRFHeader    = "X-CSRFToken"
	CSRFCookie    = "csrftoken"
	CSRFFormField = "csrfmiddlewaretoken"
)

// StatusError — ответ сервера с кодом вне 2xx.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

type Client struct {
	BaseURL     string
	CSRFToken   string
	AccessToken string
	HTTPClient  *http.Client
}

// NewClient создаёт клиент; timeout 0 — без таймаута.
func NewClient(baseURL, csrfToken string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		CSRFToken:  csrfToken,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetTabs(ctx context.Context) ([]models.Tab, error) {
	var tabs []models.Tab
	if err := c.do(ctx, http.MethodGet, "/api/get_tabs/", nil, &tabs); err != nil {
		return nil, err
	}
	return tabs, nil
}

func (c *Client) SaveTab(ctx context.Context, form models.TabForm) (models.Tab, error) {
	var tab models.Tab
	if err := c.do(ctx, http.MethodPost, "/api/save_tab/", form, &tab); err != nil {
		return models.Tab{}, err
	}
	return tab, nil
}

func (c *Client) DeleteTab(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, "/api/delete_tab/"+strconv.Itoa(id)+"/", nil, nil)
}

func (c *Client) SaveOrder(ctx context.Context, order []models.TabOrder) error {
	return c.do(ctx, http.MethodPost, "/api/save_order/", order, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && c.CSRFToken != "" {
		req.Header.Set(CSRFHeader, c.CSRFToken)
		req.AddCookie(&http.Cookie{Name: CSRFCookie, Value: c.CSRFToken})
	}
	if c.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.WithCtx(ctx).Warn("client: запрос не выполнен",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	logger.WithCtx(ctx).Debug("client: ответ",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
