package facebook_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferromax/backoffice-api/internal/config"
	"github.com/ferromax/backoffice-api/internal/facebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.FacebookConfig {
	return &config.FacebookConfig{
		Enabled:      true,
		AccessToken:  "test-token",
		AdAccountID:  "123456",
		GraphBaseURL: baseURL,
	}
}

func TestCampaignInsights_ParsesRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))
		assert.Equal(t, "campaign", r.URL.Query().Get("level"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{
					"campaign_id":   "cmp-1",
					"campaign_name": "Rebar Promo",
					"date_start":    "2026-03-01",
					"impressions":   "1500",
					"clicks":        "42",
					"spend":         "350.75",
					"actions": []map[string]string{
						{"action_type": "link_click", "value": "40"},
						{"action_type": "lead", "value": "7"},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := facebook.NewClient(testConfig(server.URL))
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	insights, err := client.CampaignInsights(context.Background(), since, until)
	require.NoError(t, err)
	require.Len(t, insights, 1)

	got := insights[0]
	assert.Equal(t, "cmp-1", got.CampaignID)
	assert.Equal(t, "Rebar Promo", got.CampaignName)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, int64(1500), got.Impressions)
	assert.Equal(t, int64(42), got.Clicks)
	assert.InDelta(t, 350.75, got.Spend, 0.001)
	assert.Equal(t, int64(7), got.Leads)
}

func TestCampaignInsights_FollowsPagination(t *testing.T) {
	var server *httptest.Server
	handler := func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		resp := map[string]interface{}{
			"data": []map[string]interface{}{
				{
					"campaign_id": "cmp-" + page,
					"date_start":  "2026-03-01",
					"impressions": "10",
					"clicks":      "1",
					"spend":       "5.00",
				},
			},
		}
		if page == "" {
			resp["paging"] = map[string]string{
				"next": fmt.Sprintf("%s/next?page=2", server.URL),
			}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
	server = httptest.NewServer(http.HandlerFunc(handler))
	defer server.Close()

	client := facebook.NewClient(testConfig(server.URL))
	insights, err := client.CampaignInsights(context.Background(), time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)
	assert.Len(t, insights, 2)
}

func TestCampaignInsights_GraphError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": "Invalid OAuth access token",
				"type":    "OAuthException",
				"code":    190,
			},
		})
	}))
	defer server.Close()

	client := facebook.NewClient(testConfig(server.URL))
	_, err := client.CampaignInsights(context.Background(), time.Now().AddDate(0, 0, -7), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OAuthException")
}

func TestCampaignInsights_MissingCredentials(t *testing.T) {
	client := facebook.NewClient(&config.FacebookConfig{Enabled: true})
	_, err := client.CampaignInsights(context.Background(), time.Now().AddDate(0, 0, -7), time.Now())
	assert.Error(t, err)
}
