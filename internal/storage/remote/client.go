// Package remote stores KYC documents through the HTTP document-storage
// endpoint of the portal backend.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"kycportal/internal/authctx"
	"kycportal/internal/config"
	"kycportal/internal/port"
)

const (
	objectsPath = "/v1/objects"

	// errorBodyLimit caps how much of an error response ends up in messages.
	errorBodyLimit = 512
)

// HTTPClient is the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a port.DocumentStorage backed by the remote endpoint. Requests
// carry the caller's bearer credential when the context holds one.
type Client struct {
	BasePath   string
	httpClient HTTPClient
}

// NewClient creates a Client for cfg.
func NewClient(cfg *config.RemoteConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return NewClientWithHTTP(cfg.BaseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a Client using httpClient for transport.
func NewClientWithHTTP(basePath string, httpClient HTTPClient) *Client {
	return &Client{BasePath: basePath, httpClient: httpClient}
}

type putResponse struct {
	Locator string `json:"locator"`
	ETag    string `json:"etag"`
}

type urlResponse struct {
	URL string `json:"url"`
}

// Put streams the document body to the endpoint.
func (c *Client) Put(ctx context.Context, input port.PutObjectInput) (*port.PutObjectOutput, error) {
	u, err := url.JoinPath(c.BasePath, objectsPath)
	if err != nil {
		return nil, fmt.Errorf("building path: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, u, input.Body)
	if err != nil {
		return nil, err
	}
	req.ContentLength = input.Size
	req.Header.Set("Content-Type", input.ContentType)
	req.Header.Set("X-Document-Id", input.DocumentID.String())
	req.Header.Set("X-Document-Type", string(input.DocumentType))
	req.Header.Set("X-User-Id", input.UserID.String())
	req.Header.Set("X-File-Name", url.QueryEscape(input.FileName))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote put: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, unexpectedStatus("remote put", resp)
	}

	var out putResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("remote put: decoding response: %w", err)
	}
	if out.Locator == "" {
		return nil, fmt.Errorf("remote put: response has no locator")
	}
	return &port.PutObjectOutput{Locator: out.Locator, ETag: out.ETag}, nil
}

// Delete removes a stored object. An object the endpoint does not know is
// reported as deleted.
func (c *Client) Delete(ctx context.Context, locator string) error {
	u, err := url.JoinPath(c.BasePath, objectsPath, url.PathEscape(locator))
	if err != nil {
		return fmt.Errorf("building path: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("remote delete: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		return unexpectedStatus("remote delete", resp)
	}
}

// DownloadURL asks the endpoint for a short-lived download link.
func (c *Client) DownloadURL(ctx context.Context, locator string, expiry time.Duration) (string, error) {
	u, err := url.JoinPath(c.BasePath, objectsPath, url.PathEscape(locator), "url")
	if err != nil {
		return "", fmt.Errorf("building path: %w", err)
	}
	u += "?expires_in=" + strconv.Itoa(int(expiry.Seconds()))

	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote download url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", unexpectedStatus("remote download url", resp)
	}
	var out urlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("remote download url: decoding response: %w", err)
	}
	return out.URL, nil
}

func (c *Client) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if token, ok := authctx.BearerFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func unexpectedStatus(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	return fmt.Errorf("%s: unexpected status code %d: %s", op, resp.StatusCode, string(body))
}

var _ port.DocumentStorage = (*Client)(nil)
