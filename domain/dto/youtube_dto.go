package dto

// Thumbnails holds the thumbnail URLs returned by the API; empty when absent
type Thumbnails struct {
	Default string `json:"default,omitempty"`
	Medium  string `json:"medium,omitempty"`
	High    string `json:"high,omitempty"`
}

// Preferred returns the medium, high or default URL, in that order of preference
func (t Thumbnails) Preferred() string {
	switch {
	case t.Medium != "":
		return t.Medium
	case t.High != "":
		return t.High
	default:
		return t.Default
	}
}

// ChannelListing is the subset of channels.list used to page through uploads
type ChannelListing struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	UploadsPlaylistID string `json:"uploads_playlist_id"`
}

// PlaylistEntry is one raw playlistItems.list entry
type PlaylistEntry struct {
	ContentVideoID   string     `json:"content_video_id,omitempty"`   // contentDetails.videoId
	ResourceVideoID  string     `json:"resource_video_id,omitempty"`  // snippet.resourceId.videoId
	VideoPublishedAt string     `json:"video_published_at,omitempty"` // contentDetails.videoPublishedAt
	PublishedAt      string     `json:"published_at,omitempty"`       // snippet.publishedAt
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Thumbnails       Thumbnails `json:"thumbnails"`
}

// PlaylistPage is one page of playlist entries
type PlaylistPage struct {
	Items         []PlaylistEntry `json:"items"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

// VideoDetail is the snippet/statistics/topic view of a video
type VideoDetail struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PublishedAt string     `json:"published_at,omitempty"`
	Thumbnails  Thumbnails `json:"thumbnails"`
	Tags        []string   `json:"tags,omitempty"`
	// ViewCount is nil when the statistics part is absent
	ViewCount       *uint64  `json:"view_count,omitempty"`
	TopicCategories []string `json:"topic_categories,omitempty"`
}
