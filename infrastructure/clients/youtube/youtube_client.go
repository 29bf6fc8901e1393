package youtube

import (
	"context"
	"errors"
	"fmt"

	"channel-insights/domain/apperror"
	"channel-insights/domain/dto"
	"channel-insights/domain/repository"
	"channel-insights/infrastructure/logger"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client represents YouTube API client in API key (read-only) mode
type Client struct {
	service *youtube.Service
}

// Config represents YouTube API configuration
type Config struct {
	APIKey string `json:"api_key"`
	// Endpoint overrides the API base URL, e.g. for a local stub
	Endpoint string `json:"endpoint"`
}

// NewYouTubeClient creates a new YouTube API client
func NewYouTubeClient(ctx context.Context, config *Config) (repository.IYouTube, error) {
	if config == nil || config.APIKey == "" {
		return nil, fmt.Errorf("%w: YouTube API key is required", apperror.ErrInputValidation)
	}
	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(config.Endpoint))
	}
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
	}
	return &Client{service: service}, nil
}

// GetChannel retrieves the title and uploads playlist of a channel; nil when unknown
func (c *Client) GetChannel(ctx context.Context, channelID string) (*dto.ChannelListing, error) {
	response, err := c.service.Channels.List([]string{"snippet", "contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, providerError("channels", err)
	}
	if len(response.Items) == 0 || response.Items[0] == nil {
		return nil, nil
	}

	item := response.Items[0]
	listing := &dto.ChannelListing{ID: item.Id}
	if item.Snippet != nil {
		listing.Title = item.Snippet.Title
	}
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		listing.UploadsPlaylistID = item.ContentDetails.RelatedPlaylists.Uploads
	}
	return listing, nil
}

// FindChannelByUsername resolves a legacy username; empty when unknown
func (c *Client) FindChannelByUsername(ctx context.Context, username string) (string, error) {
	response, err := c.service.Channels.List([]string{"id"}).
		ForUsername(username).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", providerError("channels", err)
	}
	if len(response.Items) == 0 || response.Items[0] == nil {
		return "", nil
	}
	return response.Items[0].Id, nil
}

// SearchChannel returns the first channel matching query; empty when none
func (c *Client) SearchChannel(ctx context.Context, query string) (string, error) {
	response, err := c.service.Search.List([]string{"id"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", providerError("search", err)
	}
	if len(response.Items) == 0 || response.Items[0] == nil || response.Items[0].Id == nil {
		return "", nil
	}
	return response.Items[0].Id.ChannelId, nil
}

// ListPlaylistItems retrieves one page of a playlist
func (c *Client) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, maxResults int64) (*dto.PlaylistPage, error) {
	call := c.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(maxResults)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Context(ctx).Do()
	if err != nil {
		return nil, providerError("playlistItems", err)
	}

	page := &dto.PlaylistPage{
		Items:         make([]dto.PlaylistEntry, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
	}
	for _, item := range response.Items {
		if item == nil {
			continue
		}
		page.Items = append(page.Items, convertPlaylistItem(item))
	}
	return page, nil
}

// GetViewCounts returns the view count per video id; ids without statistics map to nil
func (c *Client) GetViewCounts(ctx context.Context, videoIDs []string) (map[string]*uint64, error) {
	counts := make(map[string]*uint64, len(videoIDs))
	if len(videoIDs) == 0 {
		return counts, nil
	}

	response, err := c.service.Videos.List([]string{"statistics"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, providerError("videos", err)
	}
	for _, video := range response.Items {
		if video == nil || video.Statistics == nil {
			continue
		}
		viewCount := video.Statistics.ViewCount
		counts[video.Id] = &viewCount
	}
	return counts, nil
}

// GetVideoDetails retrieves snippet, statistics and topics for the given videos
func (c *Client) GetVideoDetails(ctx context.Context, videoIDs []string) ([]dto.VideoDetail, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}

	response, err := c.service.Videos.List([]string{"snippet", "statistics", "topicDetails"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, providerError("videos", err)
	}

	details := make([]dto.VideoDetail, 0, len(response.Items))
	for _, video := range response.Items {
		if video == nil {
			continue
		}
		details = append(details, convertVideo(video))
	}
	return details, nil
}

func convertPlaylistItem(item *youtube.PlaylistItem) dto.PlaylistEntry {
	var entry dto.PlaylistEntry
	if item.ContentDetails != nil {
		entry.ContentVideoID = item.ContentDetails.VideoId
		entry.VideoPublishedAt = item.ContentDetails.VideoPublishedAt
	}
	if item.Snippet != nil {
		entry.Title = item.Snippet.Title
		entry.Description = item.Snippet.Description
		entry.PublishedAt = item.Snippet.PublishedAt
		entry.Thumbnails = convertThumbnails(item.Snippet.Thumbnails)
		if item.Snippet.ResourceId != nil {
			entry.ResourceVideoID = item.Snippet.ResourceId.VideoId
		}
	}
	return entry
}

func convertVideo(video *youtube.Video) dto.VideoDetail {
	detail := dto.VideoDetail{ID: video.Id}
	if video.Snippet != nil {
		detail.Title = video.Snippet.Title
		detail.Description = video.Snippet.Description
		detail.PublishedAt = video.Snippet.PublishedAt
		detail.Tags = video.Snippet.Tags
		detail.Thumbnails = convertThumbnails(video.Snippet.Thumbnails)
	}
	if video.Statistics != nil {
		viewCount := video.Statistics.ViewCount
		detail.ViewCount = &viewCount
	}
	if video.TopicDetails != nil {
		detail.TopicCategories = video.TopicDetails.TopicCategories
	}
	return detail
}

func convertThumbnails(thumbnails *youtube.ThumbnailDetails) dto.Thumbnails {
	var result dto.Thumbnails
	if thumbnails == nil {
		return result
	}
	if thumbnails.Default != nil {
		result.Default = thumbnails.Default.Url
	}
	if thumbnails.Medium != nil {
		result.Medium = thumbnails.Medium.Url
	}
	if thumbnails.High != nil {
		result.High = thumbnails.High.Url
	}
	return result
}

// providerError converts a failed API call into the user-facing provider error
func providerError(endpoint string, err error) error {
	perr := &apperror.ProviderError{
		Endpoint: endpoint,
		Message:  apperror.DefaultProviderMessage,
		Err:      err,
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		perr.Status = gerr.Code
		if gerr.Message != "" {
			perr.Message = gerr.Message
		}
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"endpoint": endpoint,
		"status":   perr.Status,
		"error":    err.Error(),
	}).Warn("YouTube API request failed")
	return perr
}
