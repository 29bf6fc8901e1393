// Package apperror defines the error kinds surfaced to the user as notifications.
//
// Sentinel errors are matched with errors.Is; upstream API failures are carried
// by *ProviderError and matched with errors.As:
//
//	var perr *apperror.ProviderError
//	if errors.As(err, &perr) {
//		fmt.Println(perr.Message)
//	}
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the user-visible failure kinds.
var (
	// ErrInputValidation indicates empty or malformed user input.
	ErrInputValidation = errors.New("invalid input")
	// ErrNotFound is the parent of every "could not determine the channel" error.
	ErrNotFound = errors.New("not found")
	// ErrChannelNotFound indicates the channel lookup returned no item.
	ErrChannelNotFound = fmt.Errorf("%w: channel not found", ErrNotFound)
	// ErrUsernameNotFound indicates no channel exists for a legacy username.
	ErrUsernameNotFound = fmt.Errorf("%w: no channel with this username", ErrNotFound)
	// ErrSearchNotFound indicates the channel search returned no channel.
	ErrSearchNotFound = fmt.Errorf("%w: could not find a channel for this link", ErrNotFound)
	// ErrNoUploads indicates the channel exposes no uploads collection.
	ErrNoUploads = errors.New("could not get the channel's video list")
	// ErrEmptyResult indicates an analysis or export produced no rows.
	ErrEmptyResult = errors.New("no video data returned")
	// ErrCapacityExceeded indicates the selection is already at its maximum.
	ErrCapacityExceeded = errors.New("selection limit reached")
	// ErrNoMorePages indicates there is no continuation token to load more with.
	ErrNoMorePages = errors.New("no more pages")
	// ErrAlreadyFavorite indicates the channel is already in favorites.
	ErrAlreadyFavorite = errors.New("channel is already in favorites")
	// ErrSuperseded indicates a load finished after a newer load had started.
	ErrSuperseded = errors.New("request superseded by a newer one")
)

// DefaultProviderMessage is used when the provider error payload carries no message.
const DefaultProviderMessage = "YouTube API request failed"

// ProviderError wraps a non-success response from the remote API.
type ProviderError struct {
	// Endpoint is the API resource that failed ("channels", "search", ...).
	Endpoint string
	// Status is the HTTP status code returned by the provider, 0 if unknown.
	Status int
	// Message is the provider's error message or DefaultProviderMessage.
	Message string
	// Err is the underlying transport or API error.
	Err error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Kind returns a stable machine-readable name for err.
func Kind(err error) string {
	var perr *ProviderError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &perr):
		return "provider"
	case errors.Is(err, ErrInputValidation):
		return "input_validation"
	case errors.Is(err, ErrChannelNotFound):
		return "channel_not_found"
	case errors.Is(err, ErrUsernameNotFound):
		return "username_not_found"
	case errors.Is(err, ErrSearchNotFound):
		return "search_not_found"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNoUploads):
		return "no_uploads"
	case errors.Is(err, ErrEmptyResult):
		return "empty_result"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrNoMorePages):
		return "no_more_pages"
	case errors.Is(err, ErrAlreadyFavorite):
		return "already_favorite"
	case errors.Is(err, ErrSuperseded):
		return "superseded"
	default:
		return "internal"
	}
}

// HTTPStatus maps err to the status code the API layer responds with.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case "input_validation", "no_more_pages":
		return http.StatusBadRequest
	case "channel_not_found", "username_not_found", "search_not_found", "not_found", "no_uploads":
		return http.StatusNotFound
	case "capacity_exceeded", "already_favorite", "superseded":
		return http.StatusConflict
	case "empty_result":
		return http.StatusUnprocessableEntity
	case "provider":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
