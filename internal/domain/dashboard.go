package domain

// ChannelStats aggregates a channel's totals across three collections.
type ChannelStats struct {
	TotalVideoViews  int64 `json:"totalVideoViews"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}
