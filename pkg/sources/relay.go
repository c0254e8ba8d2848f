package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ResponseShape tells the client how a relay wraps the forwarded page.
type ResponseShape int

const (
	// ShapeRaw relays return the page body as-is.
	ShapeRaw ResponseShape = iota
	// ShapeJSONWrapped relays return {"contents": "<html>..."}.
	ShapeJSONWrapped
)

func ParseShape(s string) (ResponseShape, error) {
	switch s {
	case "", "raw":
		return ShapeRaw, nil
	case "jsonWrapped":
		return ShapeJSONWrapped, nil
	}
	return ShapeRaw, fmt.Errorf("unknown relay shape %q", s)
}

// Relay describes one cross-origin forwarding endpoint. The target URL is
// appended, escaped, to Endpoint.
type Relay struct {
	Name     string
	Endpoint string
	Shape    ResponseShape
	Headers  map[string]string
}

// URL builds the relay request URL for a target page.
func (r Relay) URL(target string) string {
	return r.Endpoint + url.QueryEscape(target)
}

// Unwrap extracts the page body from a relay response.
func (r Relay) Unwrap(body []byte) ([]byte, error) {
	if r.Shape != ShapeJSONWrapped {
		return body, nil
	}
	var wrapped struct {
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("unwrap relay response: %w", err)
	}
	return []byte(wrapped.Contents), nil
}

// DefaultRelays is the fallback chain tried in order. Any single public relay
// may be rate-limited or down, so several are kept on the list.
func DefaultRelays() []Relay {
	return []Relay{
		{
			Name:     "corsproxy",
			Endpoint: "https://corsproxy.io/?",
			Shape:    ShapeRaw,
		},
		{
			Name:     "allorigins",
			Endpoint: "https://api.allorigins.win/get?url=",
			Shape:    ShapeJSONWrapped,
			Headers:  map[string]string{"Accept": "application/json"},
		},
		{
			Name:     "codetabs",
			Endpoint: "https://api.codetabs.com/v1/proxy?quest=",
			Shape:    ShapeRaw,
		},
	}
}

// RelayClient fetches third-party pages through the relay chain: relays are
// tried sequentially with an independent timeout each, and the first one that
// returns a parseable body wins.
type RelayClient struct {
	client *http.Client
	relays []Relay
}

func NewRelayClient(relays []Relay) *RelayClient {
	return &RelayClient{client: http.DefaultClient, relays: relays}
}

// Fetch retrieves target through the chain and parses it as HTML. The
// timeout bounds each relay attempt separately, not the whole chain.
func (c *RelayClient) Fetch(ctx context.Context, target string, timeout time.Duration) (*goquery.Document, error) {
	if len(c.relays) == 0 {
		return nil, errors.New("no relays configured")
	}

	var lastErr error
	for _, relay := range c.relays {
		doc, err := c.fetchVia(ctx, relay, target, timeout)
		if err != nil {
			lastErr = fmt.Errorf("relay %s: %w", relay.Name, err)
			continue
		}
		return doc, nil
	}
	return nil, fmt.Errorf("all relays failed: %w", lastErr)
}

func (c *RelayClient) fetchVia(ctx context.Context, relay Relay, target string, timeout time.Duration) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, relay.URL(target), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr,fr-FR;q=0.8,en-US;q=0.5,en;q=0.3")
	for k, v := range relay.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	body, err = relay.Unwrap(body)
	if err != nil {
		return nil, err
	}

	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}
