package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ferromax/backoffice-api/internal/config"
)

// Client fetches campaign insights from the Facebook Graph API
type Client struct {
	httpClient *http.Client
	config     *config.FacebookConfig
}

// CampaignInsight is one campaign/day metrics row from the insights endpoint
type CampaignInsight struct {
	CampaignID   string
	CampaignName string
	Date         time.Time
	Impressions  int64
	Clicks       int64
	Spend        float64
	Leads        int64
}

// NewClient creates a new Facebook Graph API client
func NewClient(cfg *config.FacebookConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

// insightRow mirrors the wire format of one insights entry. Numeric
// fields come back as strings.
type insightRow struct {
	CampaignID   string `json:"campaign_id"`
	CampaignName string `json:"campaign_name"`
	DateStart    string `json:"date_start"`
	Impressions  string `json:"impressions"`
	Clicks       string `json:"clicks"`
	Spend        string `json:"spend"`
	Actions      []struct {
		ActionType string `json:"action_type"`
		Value      string `json:"value"`
	} `json:"actions"`
}

type insightsResponse struct {
	Data   []insightRow `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
	Error *graphError `json:"error"`
}

type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

// CampaignInsights pulls per-campaign daily insights for the configured
// ad account over a date range, following pagination.
func (c *Client) CampaignInsights(ctx context.Context, since, until time.Time) ([]CampaignInsight, error) {
	if c.config.AccessToken == "" || c.config.AdAccountID == "" {
		return nil, fmt.Errorf("facebook access token and ad account ID must be configured")
	}

	params := url.Values{}
	params.Set("access_token", c.config.AccessToken)
	params.Set("level", "campaign")
	params.Set("time_increment", "1")
	params.Set("fields", "campaign_id,campaign_name,impressions,clicks,spend,actions")
	params.Set("time_range", fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		since.Format("2006-01-02"), until.Format("2006-01-02")))

	endpoint := fmt.Sprintf("%s/act_%s/insights?%s", c.config.GraphBaseURL, c.config.AdAccountID, params.Encode())

	var insights []CampaignInsight
	for endpoint != "" {
		page, next, err := c.fetchPage(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		insights = append(insights, page...)
		endpoint = next
	}

	return insights, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint string) ([]CampaignInsight, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create insights request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to call insights endpoint: %w", err)
	}
	defer resp.Body.Close()

	var body insightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", fmt.Errorf("failed to decode insights response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if body.Error != nil {
			return nil, "", fmt.Errorf("insights request failed (%d): %s - %s",
				resp.StatusCode, body.Error.Type, body.Error.Message)
		}
		return nil, "", fmt.Errorf("insights request failed with status %d", resp.StatusCode)
	}

	insights := make([]CampaignInsight, 0, len(body.Data))
	for _, row := range body.Data {
		insight, err := row.toInsight()
		if err != nil {
			return nil, "", err
		}
		insights = append(insights, insight)
	}

	return insights, body.Paging.Next, nil
}

func (r insightRow) toInsight() (CampaignInsight, error) {
	date, err := time.Parse("2006-01-02", r.DateStart)
	if err != nil {
		return CampaignInsight{}, fmt.Errorf("invalid insight date %q: %w", r.DateStart, err)
	}

	insight := CampaignInsight{
		CampaignID:   r.CampaignID,
		CampaignName: r.CampaignName,
		Date:         date,
		Impressions:  parseInt(r.Impressions),
		Clicks:       parseInt(r.Clicks),
		Spend:        parseFloat(r.Spend),
	}
	for _, action := range r.Actions {
		if action.ActionType == "lead" {
			insight.Leads = parseInt(action.Value)
		}
	}
	return insight, nil
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
