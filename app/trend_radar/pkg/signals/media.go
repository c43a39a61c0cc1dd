package signals

import (
	"math"
	"sort"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/instagram"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

const (
	mediaKeywords      = 8
	userKeywords       = 10
	competitorKeywords = 6
	recentPosts        = 5
	topPosts           = 3
)

// Median 中位数，空切片返回 nil
func Median(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	var m float64
	if len(sorted)%2 == 1 {
		m = float64(sorted[mid])
	} else {
		m = float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return &m
}

// SummarizeMediaItems 一组帖子的点赞/评论中位数、媒体类型分布与关键词
func SummarizeMediaItems(items []instagram.Media, topKeywords int) *model.MediaSummary {
	var likes, comments []int
	var captions []string
	types := map[string]int{}
	for _, item := range items {
		if item.LikeCount != nil {
			likes = append(likes, *item.LikeCount)
		}
		if item.CommentsCount != nil {
			comments = append(comments, *item.CommentsCount)
		}
		if item.Caption != "" {
			captions = append(captions, item.Caption)
		}
		if item.MediaType != "" {
			types[item.MediaType]++
		}
	}
	return &model.MediaSummary{
		Count:           len(items),
		MedianLikes:     Median(likes),
		MedianComments:  Median(comments),
		MediaTypeCounts: types,
		TopKeywords:     ExtractKeywords(captions, topKeywords),
	}
}

// SummarizeUserMedia 账号近期帖子的总量、互动率、近期与表现最好的帖子
func SummarizeUserMedia(page *instagram.MediaPage) model.UserStatsBundle {
	if page == nil || len(page.Data) == 0 {
		return model.UserStatsBundle{Note: model.Note{Note: "No media returned"}}
	}

	stats := model.UserStatsBundle{
		Count:           len(page.Data),
		MediaTypeCounts: map[string]int{},
	}
	var captions []string
	for _, item := range page.Data {
		stats.TotalLikes += deref(item.LikeCount)
		stats.TotalComments += deref(item.CommentsCount)
		stats.TotalImpressions += item.Insights.Value("impressions")
		stats.TotalReach += item.Insights.Value("reach")
		if item.Caption != "" {
			captions = append(captions, item.Caption)
		}
		if item.MediaType != "" {
			stats.MediaTypeCounts[item.MediaType]++
		}
		if len(stats.Recent) < recentPosts {
			stats.Recent = append(stats.Recent, postRef(item))
		}
	}

	denom := stats.TotalImpressions
	if denom == 0 {
		denom = stats.TotalReach
	}
	if denom == 0 {
		denom = 1
	}
	rate := float64(stats.TotalLikes+stats.TotalComments) / float64(denom)
	stats.EngagementRate = math.Round(rate*10000) / 10000

	ranked := append([]instagram.Media(nil), page.Data...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return interactions(ranked[i]) > interactions(ranked[j])
	})
	for _, item := range ranked[:min(topPosts, len(ranked))] {
		stats.TopPosts = append(stats.TopPosts, postRef(item))
	}

	stats.TopKeywords = ExtractKeywords(captions, userKeywords)
	return stats
}

// SummarizeCompetitor 竞品账号摘要
func SummarizeCompetitor(acc *instagram.BusinessAccount) model.CompetitorBundle {
	return model.CompetitorBundle{
		Username:       acc.Username,
		FollowersCount: acc.FollowersCount,
		MediaCount:     acc.MediaCount,
		MediaSummary:   SummarizeMediaItems(acc.Media.Data, competitorKeywords),
	}
}

func postRef(m instagram.Media) model.PostRef {
	return model.PostRef{
		ID:            m.ID,
		MediaType:     m.MediaType,
		Timestamp:     m.Timestamp,
		LikeCount:     m.LikeCount,
		CommentsCount: m.CommentsCount,
	}
}

func interactions(m instagram.Media) int {
	return deref(m.LikeCount) + deref(m.CommentsCount)
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
