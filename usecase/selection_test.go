package usecase_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channel-insights/domain/apperror"
	"channel-insights/domain/model"
	"channel-insights/usecase"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("v%02d", i)
	}
	return out
}

func TestSelectionTracker_Capacity(t *testing.T) {
	tracker := usecase.NewSelectionTracker(model.MaxSelection)
	for _, id := range ids(50) {
		require.NoError(t, tracker.Add(id))
	}
	assert.Equal(t, 50, tracker.Size())

	err := tracker.Add("v-extra")
	assert.True(t, errors.Is(err, apperror.ErrCapacityExceeded))
	assert.Equal(t, 50, tracker.Size())
	assert.False(t, tracker.Has("v-extra"))

	// re-adding a member of a full set is fine
	require.NoError(t, tracker.Add("v00"))
	assert.Equal(t, 50, tracker.Size())
}

func TestSelectionTracker_AddRemoveOrder(t *testing.T) {
	tracker := usecase.NewSelectionTracker(0)
	assert.Equal(t, model.MaxSelection, tracker.Capacity())

	require.NoError(t, tracker.Add("c"))
	require.NoError(t, tracker.Add("a"))
	require.NoError(t, tracker.Add("b"))
	require.NoError(t, tracker.Add("a"))
	assert.Equal(t, []string{"c", "a", "b"}, tracker.IDs())

	tracker.Remove("a")
	tracker.Remove("a")
	tracker.Remove("missing")
	assert.Equal(t, []string{"c", "b"}, tracker.IDs())
	assert.False(t, tracker.Has("a"))

	tracker.Clear()
	assert.Zero(t, tracker.Size())
	assert.Empty(t, tracker.IDs())
}

func TestSelectionTracker_SelectAll(t *testing.T) {
	t.Run("more than capacity", func(t *testing.T) {
		tracker := usecase.NewSelectionTracker(model.MaxSelection)
		candidates := ids(73)
		tracker.SelectAll(candidates)
		assert.Equal(t, candidates[:50], tracker.IDs())

		tracker.SelectAll(candidates)
		assert.Equal(t, candidates[:50], tracker.IDs(), "idempotent")
	})

	t.Run("fewer than capacity replaces", func(t *testing.T) {
		tracker := usecase.NewSelectionTracker(model.MaxSelection)
		require.NoError(t, tracker.Add("old"))
		tracker.SelectAll([]string{"a", "b", "a", "c"})
		assert.Equal(t, []string{"a", "b", "c"}, tracker.IDs())
	})

	t.Run("empty", func(t *testing.T) {
		tracker := usecase.NewSelectionTracker(model.MaxSelection)
		require.NoError(t, tracker.Add("old"))
		tracker.SelectAll(nil)
		assert.Zero(t, tracker.Size())
	})
}

func TestSelectionTracker_Status(t *testing.T) {
	tracker := usecase.NewSelectionTracker(model.MaxSelection)

	status := tracker.Status(0)
	assert.Equal(t, model.SelectionStatus{State: model.SelectionNone, Selectable: 0, Disabled: true}, status)

	status = tracker.Status(20)
	assert.Equal(t, model.SelectionNone, status.State)
	assert.False(t, status.Disabled)
	assert.Equal(t, 20, status.Selectable)

	require.NoError(t, tracker.Add("v00"))
	status = tracker.Status(20)
	assert.Equal(t, model.SelectionPartial, status.State)
	assert.Equal(t, "1 / 50 selected", status.Info())

	tracker.SelectAll(ids(20))
	assert.Equal(t, model.SelectionAll, tracker.Status(20).State)

	tracker.SelectAll(ids(80))
	status = tracker.Status(80)
	assert.Equal(t, model.SelectionAll, status.State)
	assert.Equal(t, 50, status.Selectable)
	assert.Equal(t, "50 / 50 selected", status.Info())
}
