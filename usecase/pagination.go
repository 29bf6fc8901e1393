package usecase

import (
	"context"

	"channel-insights/domain/apperror"
	"channel-insights/domain/dto"
	"channel-insights/domain/model"
	"channel-insights/domain/repository"
	"channel-insights/infrastructure/logger"
)

const (
	untitledVideo  = "Untitled"
	unknownChannel = "Unknown channel"
)

// IPageLoader fetches one page of a channel's uploads
type IPageLoader interface {
	// LoadPage uses existingID when set, otherwise resolves channelRef.
	// An empty pageToken requests the first page.
	LoadPage(ctx context.Context, channelRef, existingID, pageToken string) (*model.ChannelPage, error)
}

// PageLoader pages through a channel's uploads playlist
type PageLoader struct {
	youtubeRepo repository.IYouTube
	resolver    IChannelResolver
}

// NewPageLoader creates a new page loader
func NewPageLoader(youtubeRepo repository.IYouTube, resolver IChannelResolver) IPageLoader {
	return &PageLoader{youtubeRepo: youtubeRepo, resolver: resolver}
}

func (p *PageLoader) LoadPage(ctx context.Context, channelRef, existingID, pageToken string) (*model.ChannelPage, error) {
	channelID := existingID
	if channelID == "" {
		resolved, err := p.resolver.Resolve(ctx, channelRef)
		if err != nil {
			return nil, err
		}
		channelID = resolved
	}

	listing, err := p.youtubeRepo.GetChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apperror.ErrChannelNotFound
	}
	if listing.UploadsPlaylistID == "" {
		return nil, apperror.ErrNoUploads
	}

	playlist, err := p.youtubeRepo.ListPlaylistItems(ctx, listing.UploadsPlaylistID, pageToken, model.PageSize)
	if err != nil {
		return nil, err
	}

	videos := make([]model.VideoSummary, 0, len(playlist.Items))
	videoIDs := make([]string, 0, len(playlist.Items))
	for _, entry := range playlist.Items {
		video, ok := toVideoSummary(entry)
		if !ok {
			continue
		}
		videos = append(videos, video)
		videoIDs = append(videoIDs, video.VideoID)
	}

	if len(videoIDs) > 0 {
		counts, err := p.youtubeRepo.GetViewCounts(ctx, videoIDs)
		if err != nil {
			return nil, err
		}
		for i := range videos {
			videos[i].ViewCount = counts[videos[i].VideoID]
		}
	}

	title := listing.Title
	if title == "" {
		title = unknownChannel
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"channel_id": channelID,
		"videos":     len(videos),
		"has_more":   playlist.NextPageToken != "",
	}).Debug("Channel page loaded")

	return &model.ChannelPage{
		Channel: model.Channel{
			ID:    channelID,
			Title: title,
			URL:   model.ChannelURL(channelID),
		},
		Videos:        videos,
		NextPageToken: playlist.NextPageToken,
	}, nil
}

// toVideoSummary maps a playlist entry; entries without a video id are dropped
func toVideoSummary(entry dto.PlaylistEntry) (model.VideoSummary, bool) {
	videoID := entry.ContentVideoID
	if videoID == "" {
		videoID = entry.ResourceVideoID
	}
	if videoID == "" {
		return model.VideoSummary{}, false
	}

	video := model.VideoSummary{
		VideoID:     videoID,
		Title:       entry.Title,
		Description: entry.Description,
	}
	if video.Title == "" {
		video.Title = untitledVideo
	}
	if entry.VideoPublishedAt != "" {
		video.PublishedAt = stringPtr(entry.VideoPublishedAt)
	} else if entry.PublishedAt != "" {
		video.PublishedAt = stringPtr(entry.PublishedAt)
	}
	if thumbnail := entry.Thumbnails.Preferred(); thumbnail != "" {
		video.Thumbnail = stringPtr(thumbnail)
	}
	return video, true
}

func stringPtr(s string) *string {
	return &s
}
