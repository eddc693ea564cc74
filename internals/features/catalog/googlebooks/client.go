package googlebooks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/books/v1"
	DefaultTimeout = 10 * time.Second
)

// CatalogError reports an upstream failure. Status is 0 for transport or
// decoding failures.
type CatalogError struct {
	Status int
	Op     string
	Err    error
}

func (e *CatalogError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog %s failed with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("catalog %s failed: %v", e.Op, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// SearchParams mirrors the /books query string.
type SearchParams struct {
	Q            string
	InTitle      string
	InAuthor     string
	InPublisher  string
	Subject      string
	ISBN         string
	StartIndex   int
	MaxResults   int
	OrderBy      string
	PrintType    string
	Filter       string
	LangRestrict string
}

// Query folds the free text and the field qualifiers into the single q
// parameter the catalog expects. Terms are space separated, which encodes
// to the documented form q=dune+inauthor:herbert.
func (p SearchParams) Query() string {
	parts := make([]string, 0, 6)
	if q := strings.TrimSpace(p.Q); q != "" {
		parts = append(parts, q)
	}
	for _, qual := range []struct{ key, val string }{
		{"intitle", p.InTitle},
		{"inauthor", p.InAuthor},
		{"inpublisher", p.InPublisher},
		{"subject", p.Subject},
		{"isbn", p.ISBN},
	} {
		if v := strings.TrimSpace(qual.val); v != "" {
			parts = append(parts, qual.key+":"+v)
		}
	}
	return strings.Join(parts, " ")
}

type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	HTTP    *http.Client
	Log     *zap.Logger
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.HTTP == nil {
		o.HTTP = &http.Client{Timeout: o.Timeout}
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(o.BaseURL, "/"),
		apiKey:  o.APIKey,
		http:    o.HTTP,
		log:     o.Log.Named("catalog"),
	}
}

func (c *Client) Search(ctx context.Context, p SearchParams) (*VolumesResponse, error) {
	qs := url.Values{}
	qs.Set("q", p.Query())
	qs.Set("startIndex", strconv.Itoa(p.StartIndex))
	if p.MaxResults > 0 {
		qs.Set("maxResults", strconv.Itoa(p.MaxResults))
	}
	setIf(qs, "orderBy", p.OrderBy)
	setIf(qs, "printType", p.PrintType)
	setIf(qs, "filter", p.Filter)
	setIf(qs, "langRestrict", p.LangRestrict)

	var out VolumesResponse
	status, err := c.get(ctx, "search", "/volumes", qs, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &CatalogError{Status: status, Op: "search"}
	}
	return &out, nil
}

// GetByID returns nil, nil when the catalog has no such volume.
func (c *Client) GetByID(ctx context.Context, id string) (*Volume, error) {
	var out Volume
	status, err := c.get(ctx, "lookup", "/volumes/"+url.PathEscape(id), url.Values{}, &out)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return &out, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, &CatalogError{Status: status, Op: "lookup"}
	}
}

// get decodes the body into out only on 200; other statuses are returned as is.
func (c *Client) get(ctx context.Context, op, path string, qs url.Values, out any) (int, error) {
	if c.apiKey != "" {
		qs.Set("key", c.apiKey)
	}
	endpoint := c.baseURL + path
	if enc := qs.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, &CatalogError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("catalog request failed", zap.String("op", op), zap.Error(err))
		return 0, &CatalogError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("catalog request",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, &CatalogError{Op: op, Err: err}
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return 0, &CatalogError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp.StatusCode, nil
}

func setIf(qs url.Values, key, val string) {
	if v := strings.TrimSpace(val); v != "" {
		qs.Set(key, v)
	}
}
