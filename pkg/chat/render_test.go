package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The suppression branch for a stale empty pending message cannot be
// reached through the public API while the one-in-flight invariant holds,
// so these tests build the transcript state directly.
func TestRenderSuppression(t *testing.T) {
	t.Run("should suppress a stale empty pending message", func(t *testing.T) {
		transcript := &Transcript{
			messages: []Message{
				NewUserMessage("hello"),
				NewPendingAssistantMessage(),
				NewUserMessage("still there?"),
			},
		}

		rendered := transcript.Render()
		require.Len(t, rendered, 2)
		assert.Equal(t, "hello", rendered[0].Content)
		assert.Equal(t, "still there?", rendered[1].Content)
	})

	t.Run("should keep an empty pending message that is most recent", func(t *testing.T) {
		transcript := &Transcript{
			messages: []Message{
				NewUserMessage("hello"),
				NewPendingAssistantMessage(),
			},
		}

		rendered := transcript.Render()
		require.Len(t, rendered, 2)
		assert.Equal(t, StatusPending, rendered[1].Status)
	})

	t.Run("should keep a stale pending message once it has content", func(t *testing.T) {
		pending := NewPendingAssistantMessage()
		pending.Content = "partial"

		transcript := &Transcript{
			messages: []Message{
				pending,
				NewUserMessage("next"),
			},
		}

		rendered := transcript.Render()
		assert.Len(t, rendered, 2)
	})

	t.Run("should render an empty transcript as empty", func(t *testing.T) {
		transcript := NewTranscript()
		assert.Empty(t, transcript.Render())
	})
}
