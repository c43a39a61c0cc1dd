package model

// Source 信号来源
type Source string

const (
	SourceProfile    Source = "profile"
	SourceUserStats  Source = "user_stats"
	SourceHashtag    Source = "instagram_hashtags"
	SourceTrend      Source = "pinterest_trends"
	SourceDataset    Source = "apify_trends"
	SourceCompetitor Source = "competitors"
)

// Bundle 证据包：各数据源聚合后的信号，仅作为摘要与策略生成的输入。
// 该接口是封闭的，只有本包内的类型可以实现。
type Bundle interface {
	Source() Source
	isBundle()
}

// Note 采集失败或缺失时的说明，代替真实数据写入证据包
type Note struct {
	Note  string `json:"note,omitempty"`
	Error string `json:"error,omitempty"`
}

// Noted 判断证据包是否只携带说明
func (n Note) Noted() bool { return n.Note != "" || n.Error != "" }

// ErrorNote 根据采集错误生成说明
func ErrorNote(note string, err error) Note {
	n := Note{Note: note}
	if err != nil {
		n.Error = err.Error()
	}
	return n
}

// MediaSummary 一组帖子的统计摘要
type MediaSummary struct {
	Count           int            `json:"count"`
	MedianLikes     *float64       `json:"median_likes"`
	MedianComments  *float64       `json:"median_comments"`
	MediaTypeCounts map[string]int `json:"media_type_counts"`
	TopKeywords     []string       `json:"top_keywords"`
}

// PostRef 帖子摘要
type PostRef struct {
	ID            string `json:"id,omitempty"`
	MediaType     string `json:"media_type,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
	LikeCount     *int   `json:"like_count"`
	CommentsCount *int   `json:"comments_count"`
}

// ProfileBundle 账号资料
type ProfileBundle struct {
	Note
	Username       string `json:"username,omitempty"`
	Biography      string `json:"biography,omitempty"`
	FollowersCount *int   `json:"followers_count,omitempty"`
	MediaCount     *int   `json:"media_count,omitempty"`
}

// UserStatsBundle 账号近期帖子的表现
type UserStatsBundle struct {
	Note
	Count            int            `json:"count"`
	TotalLikes       int            `json:"total_likes,omitempty"`
	TotalComments    int            `json:"total_comments,omitempty"`
	TotalImpressions int            `json:"total_impressions,omitempty"`
	TotalReach       int            `json:"total_reach,omitempty"`
	EngagementRate   float64        `json:"engagement_rate,omitempty"`
	Recent           []PostRef      `json:"recent,omitempty"`
	TopKeywords      []string       `json:"top_keywords,omitempty"`
	MediaTypeCounts  map[string]int `json:"media_type_counts,omitempty"`
	TopPosts         []PostRef      `json:"top_posts,omitempty"`
}

// HashtagBundle 单个跟踪话题标签的热门与最新帖子摘要
type HashtagBundle struct {
	Note
	Hashtag       string        `json:"hashtag"`
	TopSummary    *MediaSummary `json:"top_summary,omitempty"`
	RecentSummary *MediaSummary `json:"recent_summary,omitempty"`
}

// TrendKeyword Pinterest 趋势关键词
type TrendKeyword struct {
	Keyword      string         `json:"keyword"`
	TrendType    string         `json:"trend_type,omitempty"`
	PctGrowthWoW *float64       `json:"pct_growth_wow,omitempty"`
	PctGrowthMoM *float64       `json:"pct_growth_mom,omitempty"`
	PctGrowthYoY *float64       `json:"pct_growth_yoy,omitempty"`
	Volume       *float64       `json:"volume,omitempty"`
	VolumeChange *float64       `json:"volume_change,omitempty"`
	Demographics map[string]any `json:"demographics,omitempty"`
	Prediction   map[string]any `json:"prediction,omitempty"`
	Source       string         `json:"source,omitempty"`
}

// TrendBundle 趋势关键词集合
type TrendBundle struct {
	Note
	Trends []TrendKeyword `json:"trends"`
	Origin string         `json:"source,omitempty"`
}

// DatasetBundle 第三方抓取数据集
type DatasetBundle struct {
	Note
	Items       []map[string]any `json:"items"`
	TopKeywords []string         `json:"top_keywords,omitempty"`
}

// CompetitorBundle 竞品账号
type CompetitorBundle struct {
	Note
	Username       string        `json:"username"`
	FollowersCount *int          `json:"followers_count,omitempty"`
	MediaCount     *int          `json:"media_count,omitempty"`
	MediaSummary   *MediaSummary `json:"media_summary,omitempty"`
}

func (ProfileBundle) Source() Source    { return SourceProfile }
func (UserStatsBundle) Source() Source  { return SourceUserStats }
func (HashtagBundle) Source() Source    { return SourceHashtag }
func (TrendBundle) Source() Source      { return SourceTrend }
func (DatasetBundle) Source() Source    { return SourceDataset }
func (CompetitorBundle) Source() Source { return SourceCompetitor }

func (ProfileBundle) isBundle()    {}
func (UserStatsBundle) isBundle()  {}
func (HashtagBundle) isBundle()    {}
func (TrendBundle) isBundle()      {}
func (DatasetBundle) isBundle()    {}
func (CompetitorBundle) isBundle() {}
