package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	t.Run("should start empty when no file exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")

		h, err := NewHistory(path)
		require.NoError(t, err)
		assert.Empty(t, h.GetMessages())
	})

	t.Run("should round-trip messages through disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")

		h, err := NewHistory(path)
		require.NoError(t, err)

		user := NewUserMessage("2月7日の予定を確認して")
		require.NoError(t, h.Add(user))

		assistant := NewPendingAssistantMessage()
		assistant.Content = "2月7日は13:00〜15:00が空いています"
		assistant.Status = StatusComplete
		require.NoError(t, h.Add(assistant))

		reloaded, err := NewHistory(path)
		require.NoError(t, err)

		msgs := reloaded.GetMessages()
		require.Len(t, msgs, 2)
		assert.Equal(t, user.ID, msgs[0].ID)
		assert.Equal(t, user.Content, msgs[0].Content)
		assert.Equal(t, assistant.Content, msgs[1].Content)
		assert.Equal(t, StatusComplete, msgs[1].Status)
	})

	t.Run("should skip in-flight messages", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")

		h, err := NewHistory(path)
		require.NoError(t, err)

		require.NoError(t, h.Add(NewPendingAssistantMessage()))
		assert.Empty(t, h.GetMessages())
	})

	t.Run("should clear the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")

		h, err := NewHistory(path)
		require.NoError(t, err)
		require.NoError(t, h.Add(NewUserMessage("hi")))
		require.NoError(t, h.Clear())

		reloaded, err := NewHistory(path)
		require.NoError(t, err)
		assert.Empty(t, reloaded.GetMessages())
	})

	t.Run("should fail on an unreadable file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "history.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

		_, err := NewHistory(path)
		assert.Error(t, err)
	})
}
