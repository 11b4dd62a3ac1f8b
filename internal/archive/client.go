package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Catalog defines the archive operations the session loop depends on.
// This interface is implemented by *Client and can be used for testing.
type Catalog interface {
	Probe(ctx context.Context) bool
	Search(ctx context.Context, query string, rows int) ([]Result, error)
	Item(ctx context.Context, identifier string) (ItemDetail, error)
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

// ErrMissingMetadata reports a metadata payload without a metadata object.
var ErrMissingMetadata = errors.New("missing metadata")

const (
	DefaultSearchURL   = "https://archive.org/advancedsearch.php"
	DefaultMetadataURL = "https://archive.org/metadata/"
	DefaultRows        = 10

	probeIdentifier  = "opensource"
	defaultUserAgent = "Mozilla/5.0 (compatible; retroai/0.1)"
	probeTimeout     = 4 * time.Second
	requestTimeout   = 10 * time.Second
)

var searchFields = []string{"title", "year", "mediatype", "identifier"}

// Options configure a Client. Zero values use the public archive.org endpoints.
type Options struct {
	SearchURL   string
	MetadataURL string
	UserAgent   string
	HTTPClient  *http.Client
}

// Client talks to the Internet Archive search and metadata APIs.
type Client struct {
	searchURL   *url.URL
	metadataURL *url.URL
	http        *http.Client
	userAgent   string
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	search, err := parseEndpoint(opts.SearchURL, DefaultSearchURL)
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	meta, err := parseEndpoint(opts.MetadataURL, DefaultMetadataURL)
	if err != nil {
		return nil, fmt.Errorf("parse metadata url: %w", err)
	}
	if !strings.HasSuffix(meta.Path, "/") {
		meta.Path += "/"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		searchURL:   search,
		metadataURL: meta,
		http:        httpClient,
		userAgent:   userAgent,
	}, nil
}

// Probe reports whether the metadata endpoint answers at all. The status code
// and body are ignored; only transport failures count as offline.
func (c *Client) Probe(ctx context.Context) bool {
	if c == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, c.itemURL(probeIdentifier))
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return true
}

// Search runs query against advancedsearch.php and returns results in the
// order the service ranked them. rows <= 0 uses DefaultRows.
func (c *Client) Search(ctx context.Context, query string, rows int) ([]Result, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	values := url.Values{}
	values.Set("q", query)
	values.Set("output", "json")
	values.Set("rows", strconv.Itoa(rows))
	for _, field := range searchFields {
		values.Add("fl[]", field)
	}
	target := *c.searchURL
	target.RawQuery = values.Encode()

	var payload searchResponse
	if err := c.getJSON(ctx, &target, &payload); err != nil {
		return nil, err
	}
	if payload.Response == nil {
		return nil, fmt.Errorf("decode response: missing response object")
	}

	results := make([]Result, 0, len(payload.Response.Docs))
	for _, doc := range payload.Response.Docs {
		results = append(results, doc.result())
	}
	return results, nil
}

// Item fetches extended metadata for identifier.
func (c *Client) Item(ctx context.Context, identifier string) (ItemDetail, error) {
	if c == nil {
		return ItemDetail{}, fmt.Errorf("client is nil")
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ItemDetail{}, fmt.Errorf("identifier required")
	}

	var payload metadataResponse
	if err := c.getJSON(ctx, c.itemURL(identifier), &payload); err != nil {
		return ItemDetail{}, err
	}
	meta := payload.Metadata
	if meta == nil {
		return ItemDetail{}, fmt.Errorf("item %s: %w", identifier, ErrMissingMetadata)
	}

	detail := ItemDetail{
		Identifier:  identifier,
		Title:       strings.TrimSpace(string(meta.Title)),
		Description: plainDescription(string(meta.Description)),
		Year:        strings.TrimSpace(string(meta.Year)),
		MediaType:   strings.TrimSpace(string(meta.MediaType)),
	}
	if detail.Title == "" {
		detail.Title = unknownTitle
	}
	if detail.Description == "" {
		detail.Description = noDescription
	}
	if detail.Year == "" {
		detail.Year = yearFromDate(string(meta.Date))
	}
	return detail, nil
}

func (c *Client) itemURL(identifier string) *url.URL {
	return c.metadataURL.ResolveReference(&url.URL{Path: identifier})
}

func (c *Client) newRequest(ctx context.Context, target *url.URL) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, target *url.URL, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, target)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", target.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseEndpoint(raw, fallback string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = fallback
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute url", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// yearFromDate takes the leading four digits of an archive date such as
// "1986-05-01" or "1986".
func yearFromDate(date string) string {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return ""
	}
	if _, err := strconv.Atoi(date[:4]); err != nil {
		return ""
	}
	return date[:4]
}
