package espn

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/fortuna/hoopboard/internal/models"
)

const (
	BaseURL        = "https://site.api.espn.com/apis/site/v2/sports"
	DefaultTimeout = 15 * time.Second

	userAgent = "Mozilla/5.0 (compatible; HoopBoard/1.0)"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// sportPaths maps a league to its ESPN path segment
var sportPaths = map[models.League]string{
	models.LeagueNBA:    "basketball/nba",
	models.LeagueNCAAMB: "basketball/mens-college-basketball",
}

// SportPath returns the ESPN path segment for a league
func SportPath(league models.League) (string, error) {
	path, ok := sportPaths[league]
	if !ok {
		return "", fmt.Errorf("unsupported league %q", league)
	}
	return path, nil
}

// Fetcher retrieves raw upstream payloads. Implementations do not interpret content.
type Fetcher interface {
	FetchScoreboard(ctx context.Context, league models.League, date time.Time) (map[string]interface{}, error)
	FetchGameSummary(ctx context.Context, league models.League, gameID string) (map[string]interface{}, error)
}

// Client handles ESPN API requests
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// New creates a new ESPN API client with a custom base URL and per-request timeout
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log.Printf("[espn-client] base URL: %s (timeout %v)", baseURL, timeout)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// NewClient creates a new ESPN API client with default settings
func NewClient() *Client {
	return New(BaseURL, DefaultTimeout)
}

// FetchScoreboard fetches games for a specific date
// If date is zero, fetches ESPN's "today"
func (c *Client) FetchScoreboard(ctx context.Context, league models.League, date time.Time) (map[string]interface{}, error) {
	sportPath, err := SportPath(league)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/scoreboard", c.baseURL, sportPath)
	if !date.IsZero() {
		endpoint += "?dates=" + date.Format("20060102")
	}

	return c.fetch(ctx, endpoint)
}

// FetchGameSummary fetches detailed game summary with plays, leaders and box score
func (c *Client) FetchGameSummary(ctx context.Context, league models.League, gameID string) (map[string]interface{}, error) {
	sportPath, err := SportPath(league)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(gameID) == "" {
		return nil, fmt.Errorf("empty game id")
	}

	endpoint := fmt.Sprintf("%s/%s/summary?event=%s", c.baseURL, sportPath, url.QueryEscape(gameID))
	return c.fetch(ctx, endpoint)
}

// fetch makes an HTTP GET request and returns parsed JSON
func (c *Client) fetch(ctx context.Context, endpoint string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ESPN API error: status=%d, body=%s", resp.StatusCode, snippet(body))
	}

	// ESPN serves an HTML page for some blocked or missing resources
	if len(body) > 0 && body[0] == '<' {
		return nil, fmt.Errorf("ESPN returned HTML error page: %s", snippet(body))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w (body: %s)", err, snippet(body))
	}

	return result, nil
}

func snippet(body []byte) string {
	return string(body[:min(len(body), 200)])
}
