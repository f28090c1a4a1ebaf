// Package crossref provides a rate-limited client for the Crossref
// works API, used to fetch metadata for a DOI.
package crossref

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Crossref REST API base URL.
	BaseURL = "https://api.crossref.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit keeps requests within the Crossref polite pool
	// guidance of roughly one request per second for casual use.
	RateLimit = 1.0
)

// ErrNotFound is returned when Crossref has no work for a DOI.
var ErrNotFound = errors.New("DOI not found")

// Client is a rate-limited HTTP client for the Crossref API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithMailto sets the polite-pool contact address.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// NewClient creates a new Crossref API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	// Check for a contact address in the environment
	if m := os.Getenv("CROSSREF_MAILTO"); m != "" {
		c.mailto = m
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Work is the subset of Crossref work metadata used to fill a
// publications table row.
type Work struct {
	DOI     string   `json:"doi"`
	Title   string   `json:"title"`
	Authors []Author `json:"authors"`
	Year    int      `json:"year"`
	Journal string   `json:"journal,omitempty"`
}

// Author is one work author.
type Author struct {
	Given  string `json:"given,omitempty"`
	Family string `json:"family"`
}

// workResponse mirrors the Crossref works message envelope.
type workResponse struct {
	Message struct {
		DOI    string   `json:"DOI"`
		Title  []string `json:"title"`
		Author []struct {
			Given  string `json:"given"`
			Family string `json:"family"`
		} `json:"author"`
		ContainerTitle []string `json:"container-title"`
		Issued         struct {
			DateParts [][]int `json:"date-parts"`
		} `json:"issued"`
	} `json:"message"`
}

// Work fetches metadata for a DOI.
func (c *Client) Work(ctx context.Context, doi string) (*Work, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/works/%s", c.baseURL, url.PathEscape(doi))
	if c.mailto != "" {
		u += "?mailto=" + url.QueryEscape(c.mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying Crossref: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, doi)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref returned status %d", resp.StatusCode)
	}

	var wr workResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	work := &Work{DOI: wr.Message.DOI}
	if len(wr.Message.Title) > 0 {
		work.Title = wr.Message.Title[0]
	}
	if len(wr.Message.ContainerTitle) > 0 {
		work.Journal = wr.Message.ContainerTitle[0]
	}
	if parts := wr.Message.Issued.DateParts; len(parts) > 0 && len(parts[0]) > 0 {
		work.Year = parts[0][0]
	}
	for _, a := range wr.Message.Author {
		work.Authors = append(work.Authors, Author{Given: a.Given, Family: a.Family})
	}

	return work, nil
}

// AuthorsString formats the work's authors in the publications table
// style: "Last, F. M., Last, F., & Last, F.".
func (w *Work) AuthorsString() string {
	names := make([]string, len(w.Authors))
	for i, a := range w.Authors {
		names[i] = a.String()
	}

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", & " + names[len(names)-1]
	}
}

// String formats an author as "Last, F. M.", abbreviating each given
// name to an initial.
func (a Author) String() string {
	if a.Given == "" {
		return a.Family
	}

	var initials []string
	for _, part := range strings.Fields(a.Given) {
		initials = append(initials, string([]rune(part)[0])+".")
	}
	return a.Family + ", " + strings.Join(initials, " ")
}
