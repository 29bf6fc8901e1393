package repository

import (
	"context"

	"channel-insights/domain/dto"
)

// IYouTube defines the read operations used against the YouTube Data API.
// Lookups that find nothing return a zero value and a nil error; the use case
// decides which error kind that is.
type IYouTube interface {
	// Channel operations
	GetChannel(ctx context.Context, channelID string) (*dto.ChannelListing, error)
	FindChannelByUsername(ctx context.Context, username string) (string, error)
	SearchChannel(ctx context.Context, query string) (string, error)

	// Playlist operations
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string, maxResults int64) (*dto.PlaylistPage, error)

	// Video operations
	GetViewCounts(ctx context.Context, videoIDs []string) (map[string]*uint64, error)
	GetVideoDetails(ctx context.Context, videoIDs []string) ([]dto.VideoDetail, error)
}
