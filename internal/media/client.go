// Package media talks to the Cloudinary-compatible image host the storefront
// stores product photos on.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"
)

// Config carries the image host credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	Timeout   time.Duration

	// BaseURL overrides the host endpoint, used by tests.
	BaseURL string
}

// UploadResult is the subset of the host's response the storefront keeps.
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Client uploads and deletes product images through the host's signed REST
// API.
type Client struct {
	cfg        Config
	httpClient *resty.Client
}

// NewClient constructs a Client. The timeout bounds the whole upload,
// including the host-side transformation step.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.cloudinary.com"
	}
	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second)
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Configured reports whether upload credentials are present.
func (c *Client) Configured() bool {
	return c.cfg.CloudName != "" && c.cfg.APIKey != "" && c.cfg.APISecret != ""
}

// Upload streams the image to the host and returns the hosted URL. Uploads
// land in the configured folder so the prune job can enumerate them.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("media: image host credentials not configured")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"timestamp": timestamp,
	}
	if c.cfg.Folder != "" {
		params["folder"] = c.cfg.Folder
	}

	var result UploadResult
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFileReader("file", filename, file).
		SetFormData(params).
		SetFormData(map[string]string{
			"api_key":   c.cfg.APIKey,
			"signature": c.sign(params),
		}).
		SetResult(&result).
		Post(c.uploadURL())
	if err != nil {
		return nil, fmt.Errorf("media: upload: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("media: upload: host returned %d", resp.StatusCode())
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("media: upload: host response missing secure_url")
	}
	return &result, nil
}

// Delete removes a hosted image by its public id. Used by the prune job;
// failures are reported, not fatal.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	if !c.Configured() {
		return fmt.Errorf("media: image host credentials not configured")
	}

	params := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(params).
		SetFormData(map[string]string{
			"api_key":   c.cfg.APIKey,
			"signature": c.sign(params),
		}).
		Post(c.destroyURL())
	if err != nil {
		return fmt.Errorf("media: delete %s: %w", publicID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("media: delete %s: host returned %d", publicID, resp.StatusCode())
	}
	return nil
}

func (c *Client) uploadURL() string {
	return fmt.Sprintf("%s/v1_1/%s/image/upload", c.cfg.BaseURL, c.cfg.CloudName)
}

func (c *Client) destroyURL() string {
	return fmt.Sprintf("%s/v1_1/%s/image/destroy", c.cfg.BaseURL, c.cfg.CloudName)
}

// sign computes the host's request signature: the sorted key=value pairs
// joined by &, concatenated with the API secret, hashed with SHA-1.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	payload := strings.Join(pairs, "&") + c.cfg.APISecret

	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
