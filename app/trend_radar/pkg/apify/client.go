// Package apify Apify 数据集客户端
package apify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/httpapi"
)

// Client Apify API 客户端
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient 创建客户端
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  httpapi.NewClient(60 * time.Second),
	}
}

// DatasetItems 读取数据集条目。datasetID 为空时返回空列表，响应不是数组时同样返回空列表。
func (c *Client) DatasetItems(ctx context.Context, datasetID string, limit int) ([]map[string]any, error) {
	if datasetID == "" {
		return []map[string]any{}, nil
	}
	params := url.Values{
		"clean": {"true"},
		"limit": {strconv.Itoa(limit)},
		"token": {c.token},
	}
	u := c.baseURL + "/datasets/" + url.PathEscape(datasetID) + "/items?" + params.Encode()

	var raw json.RawMessage
	if err := httpapi.Get(ctx, c.client, "apify", u, nil, &raw); err != nil {
		return nil, err
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return []map[string]any{}, nil
	}
	items := make([]map[string]any, 0, len(list))
	for _, it := range list {
		if m, ok := it.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items, nil
}
