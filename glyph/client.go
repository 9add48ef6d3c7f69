package glyph

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// Client fetches glyph data from a glyph service over HTTP. The service
// is expected to answer GET <base>/glyphs/<character> with a JSON glyph
// document. Wrap a Client in Cached so the fetch never sits in the hot
// per-stroke path.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Glyph(character string) (*Glyph, error) {
	reqURL := fmt.Sprintf("%s/glyphs/%s", c.baseURL, url.PathEscape(character))

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "fetching glyph %q: %v", character, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, errors.Wrapf(ErrUnavailable, "glyph service status %d: %s", res.StatusCode, string(body))
	}

	var g Glyph
	if err := json.NewDecoder(res.Body).Decode(&g); err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "decoding glyph %q: %v", character, err)
	}
	if g.Character == "" {
		g.Character = character
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "glyph %q: %v", character, err)
	}

	return &g, nil
}
