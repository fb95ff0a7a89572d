package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs-labs/askdoc-cli/internal/adapters/driving/tui/keymap"
)

func TestNewBar(t *testing.T) {
	b := NewBar(nil, nil)

	require.NotNil(t, b)
	assert.Equal(t, StateReady, b.State())
}

func TestBar_NotLoggedInByDefault(t *testing.T) {
	b := NewBar(nil, nil)

	assert.Contains(t, b.View(), "not logged in")
}

func TestBar_ShowsEmail(t *testing.T) {
	b := NewBar(nil, nil)

	b.SetEmail("dev@example.com")

	assert.Contains(t, b.View(), "dev@example.com")
}

func TestBar_ThinkingState(t *testing.T) {
	b := NewBar(nil, nil)

	b.SetState(StateThinking)

	assert.Contains(t, b.View(), "thinking...")
}

func TestBar_ErrorStateWithMessage(t *testing.T) {
	b := NewBar(nil, nil)

	b.SetState(StateError)
	b.SetMessage("transport failure")

	assert.Contains(t, b.View(), "error: transport failure")
}

func TestBar_PendingCount(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetEmail("dev@example.com")

	b.SetPending(2)

	assert.Contains(t, b.View(), "2 processing")
}

func TestBar_PendingHiddenWhenZero(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetEmail("dev@example.com")

	assert.NotContains(t, b.View(), "processing")
}

func TestBar_Clear(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetState(StateError)
	b.SetMessage("boom")

	b.Clear()

	assert.Equal(t, StateReady, b.State())
	assert.NotContains(t, b.View(), "boom")
}

func TestBar_HintsFollowView(t *testing.T) {
	km := keymap.DefaultKeyMap()
	b := NewBar(nil, km)

	assert.Contains(t, b.View(), "enter: send")

	b.SetHints(km.DocumentsHelp)

	assert.Contains(t, b.View(), "d: delete")
	assert.NotContains(t, b.View(), "enter: send")
}
