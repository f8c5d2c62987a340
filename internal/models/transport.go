package models

import (
	"io"
	"net/http"
	"strings"
	"time"
)

// guardedTransport wraps an http.RoundTripper so that transport failures,
// error statuses and non-JSON bodies (e.g. a reverse proxy answering
// "no available server") surface as *ErrModelUnavailable.
type guardedTransport struct {
	inner    http.RoundTripper
	provider string
}

func (t *guardedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		return nil, &ErrModelUnavailable{Provider: t.provider, Cause: err}
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &ErrModelUnavailable{
			Provider: t.provider,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(body)),
		}
	}

	// Streaming endpoints answer with ndjson or event-stream; both are fine.
	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "json") && !strings.Contains(ct, "event-stream") {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &ErrModelUnavailable{
			Provider: t.provider,
			Body:     strings.TrimSpace(string(body)),
		}
	}

	return resp, nil
}

// guardedClient returns an HTTP client using guardedTransport.
func guardedClient(provider string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &guardedTransport{inner: http.DefaultTransport, provider: provider},
	}
}
