// Package instagram Instagram Graph API 客户端
package instagram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/httpapi"
)

const (
	userMediaFields = "id,caption,media_type,timestamp,like_count,comments_count," +
		"insights.metric(impressions,reach,saved,shares)"
	profileFields = "username,biography,followers_count,media_count"
	hashtagFields = "id,caption,media_type,media_url,permalink,like_count,comments_count,timestamp"
)

// Client Instagram Graph API 客户端
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient 创建客户端，baseURL 形如 https://graph.facebook.com，version 形如 v19.0
func NewClient(baseURL, version, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/" + version,
		token:   token,
		client:  httpapi.NewClient(30 * time.Second),
	}
}

// Media 帖子
type Media struct {
	ID            string    `json:"id"`
	Caption       string    `json:"caption"`
	MediaType     string    `json:"media_type"`
	MediaURL      string    `json:"media_url,omitempty"`
	Permalink     string    `json:"permalink,omitempty"`
	Timestamp     string    `json:"timestamp"`
	LikeCount     *int      `json:"like_count"`
	CommentsCount *int      `json:"comments_count"`
	Insights      *Insights `json:"insights,omitempty"`
}

// Insights 帖子洞察指标
type Insights struct {
	Data []Metric `json:"data"`
}

// Metric 单个指标
type Metric struct {
	Name   string `json:"name"`
	Values []struct {
		Value float64 `json:"value"`
	} `json:"values"`
}

// Value 指标名对应的首个取值，不存在返回 0
func (in *Insights) Value(name string) int {
	if in == nil {
		return 0
	}
	for _, m := range in.Data {
		if m.Name == name && len(m.Values) > 0 {
			return int(m.Values[0].Value)
		}
	}
	return 0
}

// MediaPage 帖子列表
type MediaPage struct {
	Data []Media `json:"data"`
}

// Profile 账号资料
type Profile struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Biography      string `json:"biography"`
	FollowersCount *int   `json:"followers_count"`
	MediaCount     *int   `json:"media_count"`
}

// BusinessAccount business_discovery 返回的竞品账号
type BusinessAccount struct {
	Username       string    `json:"username"`
	FollowersCount *int      `json:"followers_count"`
	MediaCount     *int      `json:"media_count"`
	Media          MediaPage `json:"media"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", c.token)
	return httpapi.Get(ctx, c.client, "instagram", c.baseURL+path+"?"+params.Encode(), nil, out)
}

// UserMedia 账号最近的帖子（含洞察指标）
func (c *Client) UserMedia(ctx context.Context, userID string, limit int) (*MediaPage, error) {
	var page MediaPage
	err := c.get(ctx, "/"+userID+"/media", url.Values{
		"fields": {userMediaFields},
		"limit":  {strconv.Itoa(limit)},
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Profile 账号资料
func (c *Client) Profile(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	if err := c.get(ctx, "/"+userID, url.Values{"fields": {profileFields}}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// HashtagID 查询话题标签 ID，未找到时 found 为 false
func (c *Client) HashtagID(ctx context.Context, hashtag, userID string) (id string, found bool, err error) {
	var res struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/ig_hashtag_search", url.Values{"q": {hashtag}, "user_id": {userID}}, &res); err != nil {
		return "", false, err
	}
	if len(res.Data) == 0 || res.Data[0].ID == "" {
		return "", false, nil
	}
	return res.Data[0].ID, true, nil
}

// HashtagTopMedia 话题标签下的热门帖子
func (c *Client) HashtagTopMedia(ctx context.Context, hashtagID, userID string, limit int) (*MediaPage, error) {
	return c.hashtagMedia(ctx, hashtagID, "top_media", userID, limit)
}

// HashtagRecentMedia 话题标签下的最新帖子
func (c *Client) HashtagRecentMedia(ctx context.Context, hashtagID, userID string, limit int) (*MediaPage, error) {
	return c.hashtagMedia(ctx, hashtagID, "recent_media", userID, limit)
}

func (c *Client) hashtagMedia(ctx context.Context, hashtagID, edge, userID string, limit int) (*MediaPage, error) {
	var page MediaPage
	err := c.get(ctx, "/"+hashtagID+"/"+edge, url.Values{
		"user_id": {userID},
		"fields":  {hashtagFields},
		"limit":   {strconv.Itoa(limit)},
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// BusinessDiscovery 查询其他商业账号的公开数据
func (c *Client) BusinessDiscovery(ctx context.Context, userID, username string) (*BusinessAccount, error) {
	fields := fmt.Sprintf("business_discovery.username(%s)"+
		"{username,followers_count,media_count,media"+
		"{caption,like_count,comments_count,media_type,permalink,timestamp}}", username)

	var res struct {
		BusinessDiscovery *BusinessAccount `json:"business_discovery"`
	}
	if err := c.get(ctx, "/"+userID, url.Values{"fields": {fields}}, &res); err != nil {
		return nil, err
	}
	if res.BusinessDiscovery == nil {
		return &BusinessAccount{Username: username}, nil
	}
	if res.BusinessDiscovery.Username == "" {
		res.BusinessDiscovery.Username = username
	}
	return res.BusinessDiscovery, nil
}
