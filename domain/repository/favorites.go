package repository

import (
	"context"
	"errors"

	"channel-insights/domain/model"
)

var (
	// ErrKeyNotFound is returned by IKeyValue.Get when the key holds no value
	ErrKeyNotFound = errors.New("key not found")
	// ErrCorruptValue is returned by IKeyValue.Get when the stored data cannot be decoded
	ErrCorruptValue = errors.New("stored value is corrupt")
)

// IKeyValue is the minimal key-value store favorites are persisted in
type IKeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// IFavorites persists the favorite channel list
type IFavorites interface {
	// List degrades to an empty list on absent or corrupt data. Read failures
	// are returned so callers never overwrite a list they could not read.
	List(ctx context.Context) ([]model.FavoriteChannel, error)
	Save(ctx context.Context, favorites []model.FavoriteChannel) error
	Clear(ctx context.Context) error
}
