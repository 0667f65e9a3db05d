package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

// FetchOption configures Fetch.
type FetchOption func(*fetchConfig)

type fetchConfig struct {
	fs      fs.FS
	client  *http.Client
	timeout time.Duration
}

// WithFileSystem resolves non URL locations inside files instead of the OS
// filesystem.
func WithFileSystem(files fs.FS) FetchOption {
	return func(cfg *fetchConfig) {
		cfg.fs = files
	}
}

// WithHTTPClient injects the client used for http(s) locations.
func WithHTTPClient(client *http.Client) FetchOption {
	return func(cfg *fetchConfig) {
		cfg.client = client
	}
}

// WithTimeout caps remote fetch durations.
func WithTimeout(timeout time.Duration) FetchOption {
	return func(cfg *fetchConfig) {
		cfg.timeout = timeout
	}
}

// Fetch reads an OpenAPI document from a file path or an http(s) URL.
func Fetch(ctx context.Context, location string, options ...FetchOption) ([]byte, error) {
	cfg := fetchConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("openapi: document location is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return fetchHTTP(ctx, location, cfg)
	}

	var (
		data []byte
		err  error
	)
	if cfg.fs != nil {
		data, err = fs.ReadFile(cfg.fs, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", location, err)
	}
	return data, nil
}

func fetchHTTP(ctx context.Context, location string, cfg fetchConfig) ([]byte, error) {
	client := cfg.client
	if client == nil {
		client = &http.Client{}
	}
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi: fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("openapi: fetch %s: unexpected status %d", location, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", location, err)
	}
	return data, nil
}
