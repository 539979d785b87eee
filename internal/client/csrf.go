package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html"
)

var ErrNoCSRFToken = errors.New("csrf token not found on page")

// FetchCSRFToken загружает страницу и достаёт токен из скрытого поля формы.
// Полученный токен сохраняется в клиенте.
func (c *Client) FetchCSRFToken(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Method: http.MethodGet, Path: pageURL, Code: resp.StatusCode}
	}

	token, err := ParseCSRFToken(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", pageURL, err)
	}
	c.CSRFToken = token
	return token, nil
}

// ParseCSRFToken ищет <input type="hidden" name="csrfmiddlewaretoken" value="...">.
func ParseCSRFToken(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return "", ErrNoCSRFToken
			}
			return "", z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "input" {
				continue
			}
			var name, value string
			for _, a := range tok.Attr {
				switch a.Key {
				case "name":
					name = a.Val
				case "value":
					value = a.Val
				}
			}
			if name == CSRFFormField && value != "" {
				return value, nil
			}
		}
	}
}
