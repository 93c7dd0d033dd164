// SPDX-License-Identifier: Apache-2.0

package attach

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Attachment is a downloaded attachment.
type Attachment struct {
	Data        []byte
	ContentType string
}

// Fetcher downloads a single attachment.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Attachment, error)
}

// HTTPFetcher downloads attachments over HTTP. Token, when set, is sent as a
// bearer token so attachments of private repositories resolve.
type HTTPFetcher struct {
	Client *http.Client
	Token  string
}

// NewHTTPFetcher creates an HTTPFetcher with a default client.
func NewHTTPFetcher(token string) *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: 60 * time.Second},
		Token:  token,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (Attachment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Attachment{}, fmt.Errorf("build request: %w", err)
	}
	if f.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.Token)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Attachment{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Attachment{}, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Attachment{}, fmt.Errorf("read %s: %w", url, err)
	}
	return Attachment{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}
