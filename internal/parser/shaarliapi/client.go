// Package shaarliapi fetches bookmarks from a live Shaarli instance
// through its REST API.
package shaarliapi

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gongyuapp/gongyu-server/internal/domain"
	"github.com/gongyuapp/gongyu-server/internal/errors"
	"github.com/gongyuapp/gongyu-server/internal/parser"
)

// ErrAuthFailed is returned when the instance rejects our token.
var ErrAuthFailed = errors.Unauthorized("Authentication failed. Please check your API secret.")

// Client talks to a remote Shaarli REST API.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchLinks retrieves every link from the instance at baseURL,
// authenticating with the shared API secret. Records without a usable
// URL are dropped.
func (c *Client) FetchLinks(ctx context.Context, baseURL, secret string) ([]domain.ImportRecord, error) {
	token, err := signToken(secret)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "sign API token")
	}

	endpoint := strings.TrimRight(baseURL, "/") + "/api/v1/links?limit=all"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "request to Shaarli instance failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrAuthFailed
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Internalf("Shaarli instance returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "read response body")
	}

	var links []map[string]any
	if err := json.Unmarshal(body, &links); err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "malformed response from Shaarli instance")
	}

	records := make([]domain.ImportRecord, 0, len(links))
	for _, link := range links {
		if rec, ok := recordFromLink(link); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// signToken builds the short-lived HS512 JWT Shaarli expects, carrying
// only an issued-at claim.
func signToken(secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// recordFromLink maps one API link object onto an import record. ok is
// false when the link has no usable URL.
func recordFromLink(link map[string]any) (domain.ImportRecord, bool) {
	url, _ := link["url"].(string)
	if url == "" {
		return domain.ImportRecord{}, false
	}

	rec := domain.ImportRecord{URL: url}
	rec.Title, _ = link["title"].(string)
	rec.Description, _ = link["description"].(string)
	rec.ShaarliShortURL, _ = link["shorturl"].(string)

	if s, ok := link["created"].(string); ok {
		if t, ok := parser.ParseTime(s); ok {
			rec.CreatedAt = t
		}
	}
	if s, ok := link["updated"].(string); ok {
		if t, ok := parser.ParseTime(s); ok {
			rec.UpdatedAt = t
		}
	}
	return rec, true
}
