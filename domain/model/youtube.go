package model

import "fmt"

const (
	// MaxSelection is the maximum number of videos that can be selected for analysis.
	MaxSelection = 50
	// PageSize is the number of uploads fetched per page.
	PageSize = 20
	// Placeholder is shown when a video has no hashtags or keywords.
	Placeholder = "—"
	// NotAvailable is shown when a video has no publish timestamp.
	NotAvailable = "N/A"
)

// Channel represents a resolved YouTube channel
type Channel struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ChannelURL returns the canonical channel URL for a channel ID
func ChannelURL(channelID string) string {
	return "https://www.youtube.com/channel/" + channelID
}

// VideoURL returns the short-form watch URL for a video ID
func VideoURL(videoID string) string {
	return "https://youtu.be/" + videoID
}

// VideoSummary represents one uploaded video in the channel listing
type VideoSummary struct {
	VideoID     string  `json:"videoId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PublishedAt *string `json:"publishedAt"`
	Thumbnail   *string `json:"thumbnail"`
	ViewCount   *uint64 `json:"viewCount"`
	// Display labels, filled by the session before the video is handed to the UI
	PublishedLabel string `json:"publishedLabel,omitempty"`
	ViewsLabel     string `json:"viewsLabel,omitempty"`
}

// ChannelPage is a single page of a channel's uploads
type ChannelPage struct {
	Channel       Channel        `json:"channel"`
	Videos        []VideoSummary `json:"videos"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

// AnalysisRow is the derived, read-only analysis of one selected video
type AnalysisRow struct {
	VideoID     string   `json:"videoId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Tags        string   `json:"tags"`
	Keywords    string   `json:"keywords"`
	ViewCount   string   `json:"viewCount"`
	PublishedAt string   `json:"publishedAt"`
	Topics      []string `json:"topics,omitempty"`
}

// URL returns the short-form watch URL of the analysed video
func (r AnalysisRow) URL() string {
	return VideoURL(r.VideoID)
}

// FavoriteChannel is a persisted favorite; unique by ID
type FavoriteChannel struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SelectionState is the aggregate state of the "select all" control
type SelectionState string

const (
	SelectionNone    SelectionState = "none"
	SelectionPartial SelectionState = "partial"
	SelectionAll     SelectionState = "all"
)

// SelectionStatus is exposed for UI sync of the "select all" control
type SelectionStatus struct {
	State      SelectionState `json:"state"`
	Selected   int            `json:"selected"`
	Selectable int            `json:"selectable"`
	Disabled   bool           `json:"disabled"`
}

// Info returns the selection counter text, e.g. "3 / 50 selected"
func (s SelectionStatus) Info() string {
	return fmt.Sprintf("%d / %d selected", s.Selected, MaxSelection)
}

// Snapshot is the application state returned after every action
type Snapshot struct {
	Channel       *Channel        `json:"channel"`
	Videos        []VideoSummary  `json:"videos"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
	HasMore       bool            `json:"hasMore"`
	SelectedIDs   []string        `json:"selectedIds"`
	Selection     SelectionStatus `json:"selection"`
	SelectionInfo string          `json:"selectionInfo"`
	Analysis      []AnalysisRow   `json:"analysis"`
	CanExport     bool            `json:"canExport"`
}
