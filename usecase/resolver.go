package usecase

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"channel-insights/domain/apperror"
	"channel-insights/domain/repository"
	"channel-insights/infrastructure/logger"
)

var channelIDPattern = regexp.MustCompile(`^UC[\w-]{20,}$`)

// IChannelResolver turns free-form user input into a canonical channel id
type IChannelResolver interface {
	Resolve(ctx context.Context, input string) (string, error)
}

// ChannelResolver resolves channel ids, URLs, handles and names
type ChannelResolver struct {
	youtubeRepo repository.IYouTube
}

// NewChannelResolver creates a new channel resolver
func NewChannelResolver(youtubeRepo repository.IYouTube) IChannelResolver {
	return &ChannelResolver{youtubeRepo: youtubeRepo}
}

// Resolve applies the first matching rule: canonical id, /channel/ URL,
// /user/ URL, /@handle or /c/ URL, then a search on the last path segment.
// Input that is not a URL is searched as is, without a leading "@".
func (r *ChannelResolver) Resolve(ctx context.Context, input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("%w: enter a channel link", apperror.ErrInputValidation)
	}

	if channelIDPattern.MatchString(trimmed) {
		return trimmed, nil
	}

	candidate := trimmed
	if !strings.HasPrefix(trimmed, "http") {
		candidate = "https://" + trimmed
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Host == "" || parsed.User != nil {
		return r.bySearch(ctx, strings.TrimPrefix(trimmed, "@"))
	}

	path := strings.TrimRight(parsed.Path, "/")
	switch {
	case strings.HasPrefix(path, "/channel/"):
		return firstSegment(strings.TrimPrefix(path, "/channel/")), nil
	case strings.HasPrefix(path, "/user/"):
		return r.byUsername(ctx, firstSegment(strings.TrimPrefix(path, "/user/")))
	case strings.HasPrefix(path, "/@"):
		return r.bySearch(ctx, firstSegment(strings.TrimPrefix(path, "/@")))
	case strings.HasPrefix(path, "/c/"):
		return r.bySearch(ctx, firstSegment(strings.TrimPrefix(path, "/c/")))
	}

	if segment := lastSegment(path); segment != "" {
		return r.bySearch(ctx, segment)
	}
	return r.bySearch(ctx, trimmed)
}

func (r *ChannelResolver) byUsername(ctx context.Context, username string) (string, error) {
	channelID, err := r.youtubeRepo.FindChannelByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if channelID == "" {
		logger.GetLogger().WithField("username", username).Info("No channel for username")
		return "", apperror.ErrUsernameNotFound
	}
	return channelID, nil
}

func (r *ChannelResolver) bySearch(ctx context.Context, query string) (string, error) {
	channelID, err := r.youtubeRepo.SearchChannel(ctx, query)
	if err != nil {
		return "", err
	}
	if channelID == "" {
		logger.GetLogger().WithField("query", query).Info("Channel search returned nothing")
		return "", apperror.ErrSearchNotFound
	}
	return channelID, nil
}

func firstSegment(path string) string {
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i]
	}
	return path
}

func lastSegment(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
