package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"channel-insights/domain/dto"
	"channel-insights/domain/model"
)

// MockYouTube is a testify mock of repository.IYouTube
type MockYouTube struct {
	mock.Mock
}

func (m *MockYouTube) GetChannel(ctx context.Context, channelID string) (*dto.ChannelListing, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChannelListing), args.Error(1)
}

func (m *MockYouTube) FindChannelByUsername(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

func (m *MockYouTube) SearchChannel(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

func (m *MockYouTube) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, maxResults int64) (*dto.PlaylistPage, error) {
	args := m.Called(ctx, playlistID, pageToken, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlaylistPage), args.Error(1)
}

func (m *MockYouTube) GetViewCounts(ctx context.Context, videoIDs []string) (map[string]*uint64, error) {
	args := m.Called(ctx, videoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*uint64), args.Error(1)
}

func (m *MockYouTube) GetVideoDetails(ctx context.Context, videoIDs []string) ([]dto.VideoDetail, error) {
	args := m.Called(ctx, videoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.VideoDetail), args.Error(1)
}

// memoryFavorites is an in-memory repository.IFavorites
type memoryFavorites struct {
	mu    sync.Mutex
	items []model.FavoriteChannel
}

func (f *memoryFavorites) List(context.Context) ([]model.FavoriteChannel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]model.FavoriteChannel, len(f.items))
	copy(items, f.items)
	return items, nil
}

func (f *memoryFavorites) Save(_ context.Context, favorites []model.FavoriteChannel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]model.FavoriteChannel(nil), favorites...)
	return nil
}

func (f *memoryFavorites) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
	return nil
}

func uint64Ptr(n uint64) *uint64 {
	return &n
}
