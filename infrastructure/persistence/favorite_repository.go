package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"channel-insights/domain/model"
	"channel-insights/domain/repository"
	"channel-insights/infrastructure/logger"
)

// FavoriteRepository stores the favorite list as a JSON array under one key
type FavoriteRepository struct {
	kv  repository.IKeyValue
	key string
}

func NewFavoriteRepository(kv repository.IKeyValue, key string) repository.IFavorites {
	return &FavoriteRepository{kv: kv, key: key}
}

func (r *FavoriteRepository) List(ctx context.Context) ([]model.FavoriteChannel, error) {
	raw, err := r.kv.Get(ctx, r.key)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrKeyNotFound):
		return []model.FavoriteChannel{}, nil
	case errors.Is(err, repository.ErrCorruptValue):
		logger.GetLogger().WithField("error", err).Warn("Stored favorites are unreadable, using an empty list")
		return []model.FavoriteChannel{}, nil
	default:
		logger.GetLogger().WithField("error", err).Error("Error while reading favorites")
		return nil, fmt.Errorf("read favorites: %w", err)
	}

	var favorites []model.FavoriteChannel
	if err := json.Unmarshal([]byte(raw), &favorites); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Stored favorites are not a JSON array, using an empty list")
		return []model.FavoriteChannel{}, nil
	}
	if favorites == nil {
		favorites = []model.FavoriteChannel{}
	}
	return favorites, nil
}

func (r *FavoriteRepository) Save(ctx context.Context, favorites []model.FavoriteChannel) error {
	if favorites == nil {
		favorites = []model.FavoriteChannel{}
	}
	raw, err := json.Marshal(favorites)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, r.key, string(raw))
}

func (r *FavoriteRepository) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, r.key)
}
