package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/instagram"
)

func ptr(v int) *int { return &v }

func TestMedian(t *testing.T) {
	assert.Nil(t, Median(nil))
	assert.Equal(t, 2.0, *Median([]int{3, 1, 2}))
	assert.Equal(t, 15.0, *Median([]int{20, 10}))
}

func TestSummarizeMediaItems(t *testing.T) {
	items := []instagram.Media{
		{LikeCount: ptr(10), CommentsCount: ptr(2), Caption: "Test one", MediaType: "IMAGE"},
		{LikeCount: ptr(20), CommentsCount: ptr(4), Caption: "Test two", MediaType: "REEL"},
		{Caption: "", MediaType: "REEL"},
	}
	s := SummarizeMediaItems(items, 8)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 15.0, *s.MedianLikes)
	assert.Equal(t, 3.0, *s.MedianComments)
	assert.Equal(t, map[string]int{"IMAGE": 1, "REEL": 2}, s.MediaTypeCounts)
	assert.Equal(t, []string{"test", "one", "two"}, s.TopKeywords)
}

func insights(impressions, reach int) *instagram.Insights {
	in := &instagram.Insights{}
	add := func(name string, v int) {
		m := instagram.Metric{Name: name}
		m.Values = append(m.Values, struct {
			Value float64 `json:"value"`
		}{Value: float64(v)})
		in.Data = append(in.Data, m)
	}
	add("impressions", impressions)
	add("reach", reach)
	return in
}

func TestSummarizeUserMedia(t *testing.T) {
	page := &instagram.MediaPage{Data: []instagram.Media{
		{ID: "1", LikeCount: ptr(10), CommentsCount: ptr(0), Caption: "linen set", MediaType: "IMAGE", Insights: insights(1000, 500)},
		{ID: "2", LikeCount: ptr(50), CommentsCount: ptr(5), Caption: "linen hijab", MediaType: "REEL", Insights: insights(2000, 900)},
		{ID: "3", LikeCount: ptr(5), MediaType: "IMAGE"},
		{ID: "4", LikeCount: ptr(30), CommentsCount: ptr(30), MediaType: "CAROUSEL_ALBUM"},
		{ID: "5"},
		{ID: "6", LikeCount: ptr(1)},
	}}
	s := SummarizeUserMedia(page)

	assert.False(t, s.Noted())
	assert.Equal(t, 6, s.Count)
	assert.Equal(t, 96, s.TotalLikes)
	assert.Equal(t, 35, s.TotalComments)
	assert.Equal(t, 3000, s.TotalImpressions)
	assert.Equal(t, 1400, s.TotalReach)
	// (96+35)/3000 = 0.043666... 保留 4 位
	assert.Equal(t, 0.0437, s.EngagementRate)
	assert.Len(t, s.Recent, 5)
	require.Len(t, s.TopPosts, 3)
	assert.Equal(t, []string{"4", "2", "1"}, []string{s.TopPosts[0].ID, s.TopPosts[1].ID, s.TopPosts[2].ID})
	assert.Equal(t, "linen", s.TopKeywords[0])
	assert.Equal(t, 2, s.MediaTypeCounts["IMAGE"])
}

func TestSummarizeUserMedia_ReachFallback(t *testing.T) {
	page := &instagram.MediaPage{Data: []instagram.Media{
		{LikeCount: ptr(10), Insights: insights(0, 100)},
	}}
	assert.Equal(t, 0.1, SummarizeUserMedia(page).EngagementRate)

	page = &instagram.MediaPage{Data: []instagram.Media{{LikeCount: ptr(3)}}}
	assert.Equal(t, 3.0, SummarizeUserMedia(page).EngagementRate)
}

func TestSummarizeUserMedia_Empty(t *testing.T) {
	s := SummarizeUserMedia(&instagram.MediaPage{})
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, "No media returned", s.Note.Note)
}

func TestSummarizeCompetitor(t *testing.T) {
	acc := &instagram.BusinessAccount{
		Username:       "brand",
		FollowersCount: ptr(1000),
		Media:          instagram.MediaPage{Data: []instagram.Media{{LikeCount: ptr(4), Caption: "promo lebaran"}}},
	}
	c := SummarizeCompetitor(acc)
	assert.Equal(t, "brand", c.Username)
	assert.Equal(t, 1000, *c.FollowersCount)
	assert.Equal(t, 1, c.MediaSummary.Count)
	assert.Equal(t, []string{"promo", "lebaran"}, c.MediaSummary.TopKeywords)
}
