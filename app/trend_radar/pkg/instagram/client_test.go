package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "v19.0", "tok")
}

func TestUserMedia(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v19.0/17841/media", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
		assert.Equal(t, "30", r.URL.Query().Get("limit"))
		assert.Contains(t, r.URL.Query().Get("fields"), "insights.metric(impressions,reach,saved,shares)")
		_, _ = w.Write([]byte(`{"data":[{"id":"1","caption":"hi","media_type":"IMAGE","like_count":10,
			"insights":{"data":[{"name":"impressions","values":[{"value":100}]},{"name":"reach","values":[{"value":80}]}]}}]}`))
	})

	page, err := c.UserMedia(context.Background(), "17841", 30)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	m := page.Data[0]
	assert.Equal(t, 10, *m.LikeCount)
	assert.Nil(t, m.CommentsCount)
	assert.Equal(t, 100, m.Insights.Value("impressions"))
	assert.Equal(t, 80, m.Insights.Value("reach"))
	assert.Equal(t, 0, m.Insights.Value("saved"))
}

func TestHashtagID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v19.0/ig_hashtag_search", r.URL.Path)
		if r.URL.Query().Get("q") == "ootd" {
			_, _ = w.Write([]byte(`{"data":[{"id":"h1"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	id, found, err := c.HashtagID(context.Background(), "ootd", "u")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "h1", id)

	_, found, err = c.HashtagID(context.Background(), "nothing", "u")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHashtagMediaEdges(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":"m"}]}`))
	})

	_, err := c.HashtagTopMedia(context.Background(), "h1", "u", 15)
	require.NoError(t, err)
	_, err = c.HashtagRecentMedia(context.Background(), "h1", "u", 15)
	require.NoError(t, err)
	assert.Equal(t, []string{"/v19.0/h1/top_media", "/v19.0/h1/recent_media"}, paths)
}

func TestBusinessDiscovery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("fields"), "business_discovery.username(brand)")
		_, _ = w.Write([]byte(`{"business_discovery":{"followers_count":500,"media":{"data":[{"like_count":3}]}},"id":"u"}`))
	})

	acc, err := c.BusinessDiscovery(context.Background(), "u", "brand")
	require.NoError(t, err)
	assert.Equal(t, "brand", acc.Username)
	assert.Equal(t, 500, *acc.FollowersCount)
	assert.Len(t, acc.Media.Data, 1)
}

func TestProfile_Error(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad token"}}`, http.StatusBadRequest)
	})

	_, err := c.Profile(context.Background(), "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instagram api error (status 400)")
}
