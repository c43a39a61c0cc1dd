// Package pinterest Pinterest v5 趋势关键词接口客户端
package pinterest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/httpapi"
)

// 趋势类型
const (
	TrendGrowing = "growing"
	TrendMonthly = "monthly"
)

// Client Pinterest API 客户端
type Client struct {
	baseURL   string
	token     string
	interests string
	limit     int
	client    *http.Client
}

// NewClient 创建客户端
func NewClient(baseURL, token, interests string, limit int) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		interests: interests,
		limit:     limit,
		client:    httpapi.NewClient(30 * time.Second),
	}
}

// Trend 单个趋势关键词
type Trend struct {
	Keyword      string         `json:"keyword"`
	PctGrowthWoW *float64       `json:"pct_growth_wow"`
	PctGrowthMoM *float64       `json:"pct_growth_mom"`
	PctGrowthYoY *float64       `json:"pct_growth_yoy"`
	TimeSeries   map[string]any `json:"time_series,omitempty"`
	Demographics map[string]any `json:"demographics,omitempty"`
	Prediction   map[string]any `json:"prediction,omitempty"`
}

// TrendsResponse 趋势接口响应
type TrendsResponse struct {
	Trends []Trend `json:"trends"`
}

// TrendKeywords 查询某地区某类型的热门趋势关键词
func (c *Client) TrendKeywords(ctx context.Context, region, trendType string) (*TrendsResponse, error) {
	params := url.Values{
		"interests":            {c.interests},
		"include_demographics": {"true"},
		"include_prediction":   {"true"},
		"limit":                {strconv.Itoa(c.limit)},
	}
	u := c.baseURL + "/trends/keywords/" + url.PathEscape(region) + "/top/" + url.PathEscape(trendType) + "?" + params.Encode()

	var res TrendsResponse
	header := http.Header{"Authorization": {"Bearer " + c.token}}
	if err := httpapi.Get(ctx, c.client, "pinterest", u, header, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
