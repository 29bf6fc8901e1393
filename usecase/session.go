package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"channel-insights/domain/apperror"
	"channel-insights/domain/model"
	"channel-insights/domain/repository"
	"channel-insights/infrastructure/logger"
)

// IExportRenderer renders analysis rows into a downloadable document
type IExportRenderer interface {
	ToCSV(rows []model.AnalysisRow) string
	FileName(now time.Time) string
}

// IChannelSession is the application controller: one method per user action
type IChannelSession interface {
	// Channel operations
	LoadChannel(ctx context.Context, input string) (*model.Snapshot, error)
	LoadMore(ctx context.Context) (*model.Snapshot, error)

	// Selection operations
	Toggle(videoID string, selected bool) (*model.Snapshot, error)
	SelectAll(selected bool) *model.Snapshot

	// Analysis operations
	Analyze(ctx context.Context) (*model.Snapshot, error)
	Export(now time.Time) (string, string, error)

	Snapshot() *model.Snapshot

	// Favorite operations
	Favorites(ctx context.Context) ([]model.FavoriteChannel, error)
	AddFavorite(ctx context.Context) ([]model.FavoriteChannel, error)
	RemoveFavorite(ctx context.Context, channelID string) ([]model.FavoriteChannel, error)
	ClearFavorites(ctx context.Context) ([]model.FavoriteChannel, error)
	LoadFavorite(ctx context.Context, channelID string) (*model.Snapshot, error)
}

// ChannelSession owns the application state. The mutex is never held across
// a network call; every load records the generation it started in and is
// discarded with ErrSuperseded when a newer load began meanwhile.
type ChannelSession struct {
	loader    IPageLoader
	analyzer  IAnalyzer
	favorites repository.IFavorites
	formatter *Formatter
	renderer  IExportRenderer

	mu            sync.Mutex
	generation    uint64
	channel       *model.Channel
	videos        []model.VideoSummary
	nextPageToken string
	selection     *SelectionTracker
	analysis      []model.AnalysisRow

	// favMu serializes read-modify-write cycles on the favorites store
	favMu sync.Mutex
}

// NewChannelSession creates a new channel session
func NewChannelSession(loader IPageLoader, analyzer IAnalyzer, favorites repository.IFavorites, formatter *Formatter, renderer IExportRenderer) *ChannelSession {
	return &ChannelSession{
		loader:    loader,
		analyzer:  analyzer,
		favorites: favorites,
		formatter: formatter,
		renderer:  renderer,
		selection: NewSelectionTracker(model.MaxSelection),
	}
}

// LoadChannel replaces the current channel with the first page of input's uploads
func (s *ChannelSession) LoadChannel(ctx context.Context, input string) (*model.Snapshot, error) {
	ref := strings.TrimSpace(input)
	if ref == "" {
		return nil, fmt.Errorf("%w: enter a channel link first", apperror.ErrInputValidation)
	}

	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	page, err := s.loader.LoadPage(ctx, ref, "", "")

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		logger.GetLogger().WithField("input", ref).Info("Discarding superseded channel load")
		return nil, apperror.ErrSuperseded
	}
	if err != nil {
		logger.GetLogger().WithField("input", ref).WithField("error", err).Warn("Channel load failed")
		s.videos = nil
		s.nextPageToken = ""
		s.selection.Clear()
		s.analysis = nil
		return nil, err
	}

	channel := page.Channel
	s.channel = &channel
	s.videos = s.decorate(page.Videos)
	s.nextPageToken = page.NextPageToken
	s.selection.Clear()
	s.analysis = nil

	logger.GetLogger().WithFields(map[string]interface{}{
		"channel_id": channel.ID,
		"videos":     len(s.videos),
	}).Info("Channel loaded")
	return s.snapshotLocked(), nil
}

// LoadMore appends the next page of the current channel
func (s *ChannelSession) LoadMore(ctx context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	if s.channel == nil || s.nextPageToken == "" {
		s.mu.Unlock()
		return nil, apperror.ErrNoMorePages
	}
	generation := s.generation
	channel := *s.channel
	token := s.nextPageToken
	s.mu.Unlock()

	page, err := s.loader.LoadPage(ctx, channel.URL, channel.ID, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation || token != s.nextPageToken {
		logger.GetLogger().WithField("channel_id", channel.ID).Info("Discarding superseded page load")
		return nil, apperror.ErrSuperseded
	}
	if err != nil {
		logger.GetLogger().WithField("channel_id", channel.ID).WithField("error", err).Warn("Loading more videos failed")
		return nil, err
	}

	loaded := page.Channel
	s.channel = &loaded
	s.videos = append(s.videos, s.decorate(page.Videos)...)
	s.nextPageToken = page.NextPageToken

	logger.GetLogger().WithFields(map[string]interface{}{
		"channel_id": loaded.ID,
		"appended":   len(page.Videos),
		"total":      len(s.videos),
	}).Info("More videos loaded")
	return s.snapshotLocked(), nil
}

// Toggle selects or deselects one loaded video
func (s *ChannelSession) Toggle(videoID string, selected bool) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !selected {
		s.selection.Remove(videoID)
		return s.snapshotLocked(), nil
	}
	if !s.isLoaded(videoID) {
		return nil, fmt.Errorf("%w: video %s is not loaded", apperror.ErrInputValidation, videoID)
	}
	if err := s.selection.Add(videoID); err != nil {
		return nil, fmt.Errorf("%w: at most %d videos can be selected", err, s.selection.Capacity())
	}
	return s.snapshotLocked(), nil
}

// SelectAll selects the first loaded videos up to the cap, or clears the selection
func (s *ChannelSession) SelectAll(selected bool) *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if selected {
		ids := make([]string, 0, len(s.videos))
		for _, video := range s.videos {
			ids = append(ids, video.VideoID)
		}
		s.selection.SelectAll(ids)
	} else {
		s.selection.Clear()
	}
	return s.snapshotLocked()
}

// Analyze builds analysis rows for the selection, in selection order
func (s *ChannelSession) Analyze(ctx context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	ids := s.selection.IDs()
	generation := s.generation
	s.mu.Unlock()

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: select at least one video", apperror.ErrInputValidation)
	}

	rows, err := s.analyzer.Analyze(ctx, ids)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return nil, apperror.ErrSuperseded
	}
	if err != nil {
		logger.GetLogger().WithField("videos", len(ids)).WithField("error", err).Warn("Analysis failed")
		return nil, err
	}

	s.analysis = rows
	logger.GetLogger().WithField("rows", len(rows)).Info("Analysis complete")
	return s.snapshotLocked(), nil
}

// Export renders the current analysis rows; it returns the file name and the document
func (s *ChannelSession) Export(now time.Time) (string, string, error) {
	s.mu.Lock()
	rows := make([]model.AnalysisRow, len(s.analysis))
	copy(rows, s.analysis)
	s.mu.Unlock()

	if len(rows) == 0 {
		return "", "", fmt.Errorf("%w: nothing to export", apperror.ErrEmptyResult)
	}
	return s.renderer.FileName(now), s.renderer.ToCSV(rows), nil
}

// Snapshot returns a copy of the current state
func (s *ChannelSession) Snapshot() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Favorites lists the stored favorite channels
func (s *ChannelSession) Favorites(ctx context.Context) ([]model.FavoriteChannel, error) {
	return s.favorites.List(ctx)
}

// AddFavorite stores the current channel
func (s *ChannelSession) AddFavorite(ctx context.Context) ([]model.FavoriteChannel, error) {
	s.mu.Lock()
	var channel *model.Channel
	if s.channel != nil {
		c := *s.channel
		channel = &c
	}
	s.mu.Unlock()

	if channel == nil {
		return nil, fmt.Errorf("%w: load a channel first", apperror.ErrInputValidation)
	}

	s.favMu.Lock()
	defer s.favMu.Unlock()

	favorites, err := s.favorites.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, favorite := range favorites {
		if favorite.ID == channel.ID {
			return nil, apperror.ErrAlreadyFavorite
		}
	}

	favorites = append(favorites, model.FavoriteChannel{ID: channel.ID, Title: channel.Title, URL: channel.URL})
	if err := s.favorites.Save(ctx, favorites); err != nil {
		return nil, err
	}
	logger.GetLogger().WithField("channel_id", channel.ID).Info("Channel added to favorites")
	return favorites, nil
}

// RemoveFavorite deletes channelID from favorites; unknown ids are ignored
func (s *ChannelSession) RemoveFavorite(ctx context.Context, channelID string) ([]model.FavoriteChannel, error) {
	s.favMu.Lock()
	defer s.favMu.Unlock()

	favorites, err := s.favorites.List(ctx)
	if err != nil {
		return nil, err
	}
	kept := make([]model.FavoriteChannel, 0, len(favorites))
	for _, favorite := range favorites {
		if favorite.ID != channelID {
			kept = append(kept, favorite)
		}
	}
	if err := s.favorites.Save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// ClearFavorites removes every favorite
func (s *ChannelSession) ClearFavorites(ctx context.Context) ([]model.FavoriteChannel, error) {
	s.favMu.Lock()
	defer s.favMu.Unlock()

	if err := s.favorites.Clear(ctx); err != nil {
		return nil, err
	}
	return []model.FavoriteChannel{}, nil
}

// LoadFavorite loads a stored channel by its saved URL
func (s *ChannelSession) LoadFavorite(ctx context.Context, channelID string) (*model.Snapshot, error) {
	favorites, err := s.favorites.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, favorite := range favorites {
		if favorite.ID == channelID {
			return s.LoadChannel(ctx, favorite.URL)
		}
	}
	return nil, fmt.Errorf("%w: favorite %s", apperror.ErrNotFound, channelID)
}

func (s *ChannelSession) isLoaded(videoID string) bool {
	for _, video := range s.videos {
		if video.VideoID == videoID {
			return true
		}
	}
	return false
}

func (s *ChannelSession) decorate(videos []model.VideoSummary) []model.VideoSummary {
	decorated := make([]model.VideoSummary, len(videos))
	for i, video := range videos {
		video.PublishedLabel = s.formatter.GridDate(video.PublishedAt)
		video.ViewsLabel = s.formatter.Compact(video.ViewCount)
		decorated[i] = video
	}
	return decorated
}

func (s *ChannelSession) snapshotLocked() *model.Snapshot {
	snapshot := &model.Snapshot{
		Videos:        make([]model.VideoSummary, len(s.videos)),
		NextPageToken: s.nextPageToken,
		HasMore:       s.nextPageToken != "",
		SelectedIDs:   s.selection.IDs(),
		Selection:     s.selection.Status(len(s.videos)),
		Analysis:      make([]model.AnalysisRow, len(s.analysis)),
		CanExport:     len(s.analysis) > 0,
	}
	copy(snapshot.Videos, s.videos)
	copy(snapshot.Analysis, s.analysis)
	snapshot.SelectionInfo = snapshot.Selection.Info()
	if s.channel != nil {
		channel := *s.channel
		snapshot.Channel = &channel
	}
	return snapshot
}
