package usecase

import (
	"context"
	"regexp"
	"strings"

	"channel-insights/domain/apperror"
	"channel-insights/domain/dto"
	"channel-insights/domain/model"
	"channel-insights/domain/repository"
	"channel-insights/infrastructure/logger"
)

var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{M}\w-]+`)

// IAnalyzer builds analysis rows for a list of video ids
type IAnalyzer interface {
	Analyze(ctx context.Context, videoIDs []string) ([]model.AnalysisRow, error)
}

// Analyzer fetches video details in one batch and derives the analysis rows
type Analyzer struct {
	youtubeRepo repository.IYouTube
	formatter   *Formatter
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(youtubeRepo repository.IYouTube, formatter *Formatter) IAnalyzer {
	return &Analyzer{youtubeRepo: youtubeRepo, formatter: formatter}
}

// Analyze returns one row per known id, in the order of videoIDs.
// Unknown ids are omitted; no rows at all is ErrEmptyResult.
func (a *Analyzer) Analyze(ctx context.Context, videoIDs []string) ([]model.AnalysisRow, error) {
	if len(videoIDs) == 0 {
		return nil, apperror.ErrEmptyResult
	}

	details, err := a.youtubeRepo.GetVideoDetails(ctx, videoIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]dto.VideoDetail, len(details))
	for _, detail := range details {
		byID[detail.ID] = detail
	}

	rows := make([]model.AnalysisRow, 0, len(videoIDs))
	for _, id := range videoIDs {
		detail, ok := byID[id]
		if !ok {
			continue
		}
		rows = append(rows, a.toRow(detail))
	}

	if len(rows) == 0 {
		return nil, apperror.ErrEmptyResult
	}
	if len(rows) < len(videoIDs) {
		logger.GetLogger().WithFields(map[string]interface{}{
			"requested": len(videoIDs),
			"returned":  len(rows),
		}).Warn("Some selected videos were not returned")
	}
	return rows, nil
}

func (a *Analyzer) toRow(detail dto.VideoDetail) model.AnalysisRow {
	title := detail.Title
	if title == "" {
		title = untitledVideo
	}
	return model.AnalysisRow{
		VideoID:     detail.ID,
		Title:       title,
		Description: detail.Description,
		Thumbnail:   detail.Thumbnails.Preferred(),
		Tags:        ExtractHashtags(detail.Description),
		Keywords:    joinOrPlaceholder(detail.Tags),
		ViewCount:   a.formatter.ViewCount(detail.ViewCount),
		PublishedAt: a.formatter.AnalysisDate(detail.PublishedAt),
		Topics:      detail.TopicCategories,
	}
}

// ExtractHashtags returns every #tag in description, in order of appearance,
// joined by ", ", or "—" when there is none
func ExtractHashtags(description string) string {
	return joinOrPlaceholder(hashtagPattern.FindAllString(description, -1))
}

func joinOrPlaceholder(values []string) string {
	if len(values) == 0 {
		return model.Placeholder
	}
	return strings.Join(values, ", ")
}
