package chat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yotei-chat/yotei/pkg/chat"
	"github.com/yotei-chat/yotei/pkg/sse"
)

var _ = Describe("Transcript", func() {
	var transcript *chat.Transcript

	BeforeEach(func() {
		transcript = chat.NewTranscript()
	})

	Describe("SubmitUserTurn", func() {
		It("should append a completed user message", func() {
			msg, err := transcript.SubmitUserTurn("2月7日の13時から15時に会議を入れて")

			Expect(err).ToNot(HaveOccurred())
			Expect(msg.Status).To(Equal(chat.StatusComplete))
			Expect(transcript.Messages()).To(HaveLen(1))
		})

		It("should reject blank input and leave the transcript unchanged", func() {
			_, err := transcript.SubmitUserTurn("   ")

			Expect(err).To(MatchError(chat.ErrEmptyInput))
			Expect(transcript.Messages()).To(BeEmpty())
		})
	})

	Describe("BeginAssistantTurn", func() {
		It("should open a pending assistant message and return its id", func() {
			turnID := transcript.BeginAssistantTurn()

			msgs := transcript.Messages()
			Expect(msgs).To(HaveLen(1))
			Expect(msgs[0].ID).To(Equal(turnID))
			Expect(msgs[0].Status).To(Equal(chat.StatusPending))
		})

		It("should panic when a turn is already in flight", func() {
			transcript.BeginAssistantTurn()

			Expect(func() { transcript.BeginAssistantTurn() }).To(Panic())
		})

		It("should allow a new turn once the previous one completed", func() {
			turnID := transcript.BeginAssistantTurn()
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.StreamEnded})).To(Succeed())

			Expect(func() { transcript.BeginAssistantTurn() }).ToNot(Panic())
		})
	})

	Describe("ApplyEvent", func() {
		var turnID string

		BeforeEach(func() {
			turnID = transcript.BeginAssistantTurn()
		})

		It("should concatenate deltas in application order", func() {
			for _, text := range []string{"2月7日", "の13時に", "会議を登録しました"} {
				Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.ContentDelta, Text: text})).To(Succeed())
			}

			msgs := transcript.Messages()
			Expect(msgs[0].Content).To(Equal("2月7日の13時に会議を登録しました"))
			Expect(msgs[0].Status).To(Equal(chat.StatusStreaming))
		})

		It("should transition pending to streaming on role announcement", func() {
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.RoleAnnounced, Role: "assistant"})).To(Succeed())

			Expect(transcript.Messages()[0].Status).To(Equal(chat.StatusStreaming))
		})

		It("should treat a repeated role announcement as a no-op", func() {
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.RoleAnnounced, Role: "assistant"})).To(Succeed())
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.ContentDelta, Text: "text"})).To(Succeed())

			before := transcript.Messages()[0]
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.RoleAnnounced, Role: "assistant"})).To(Succeed())
			after := transcript.Messages()[0]

			Expect(after.Content).To(Equal(before.Content))
			Expect(after.Status).To(Equal(before.Status))
		})

		It("should complete on stream end", func() {
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.ContentDelta, Text: "Hi"})).To(Succeed())
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.StreamEnded})).To(Succeed())

			msg := transcript.Messages()[0]
			Expect(msg.Content).To(Equal("Hi"))
			Expect(msg.Status).To(Equal(chat.StatusComplete))
		})

		It("should allow pending to complete directly for an empty stream", func() {
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.StreamEnded})).To(Succeed())

			msg := transcript.Messages()[0]
			Expect(msg.Content).To(Equal(""))
			Expect(msg.Status).To(Equal(chat.StatusComplete))
		})

		It("should fail with a stale turn error after completion and never reopen", func() {
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.StreamEnded})).To(Succeed())

			err := transcript.ApplyEvent(turnID, sse.Event{Kind: sse.StreamEnded})
			Expect(err).To(MatchError(chat.ErrStaleTurn))
			Expect(transcript.Messages()[0].Status).To(Equal(chat.StatusComplete))

			err = transcript.ApplyEvent(turnID, sse.Event{Kind: sse.ContentDelta, Text: "late"})
			Expect(err).To(MatchError(chat.ErrStaleTurn))
			Expect(transcript.Messages()[0].Content).To(Equal(""))
		})

		It("should fail for an unknown turn id", func() {
			err := transcript.ApplyEvent("no-such-turn", sse.Event{Kind: sse.ContentDelta, Text: "x"})
			Expect(err).To(MatchError(chat.ErrUnknownTurn))
		})

		It("should count malformed frames without touching the message", func() {
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.MalformedFrame, Raw: "data: junk"})).To(Succeed())

			Expect(transcript.MalformedFrames()).To(Equal(1))
			Expect(transcript.Messages()[0].Content).To(Equal(""))
			Expect(transcript.Messages()[0].Status).To(Equal(chat.StatusPending))
		})

		It("should keep at most one message in flight", func() {
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.ContentDelta, Text: "partial"})).To(Succeed())

			inFlight := 0
			for _, m := range transcript.Messages() {
				if m.InFlight() {
					inFlight++
				}
			}
			Expect(inFlight).To(Equal(1))
		})
	})

	Describe("Abort", func() {
		It("should finalize an in-flight turn with its partial content", func() {
			turnID := transcript.BeginAssistantTurn()
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.ContentDelta, Text: "partial "})).To(Succeed())

			transcript.Abort(turnID)

			msg := transcript.Messages()[0]
			Expect(msg.Status).To(Equal(chat.StatusComplete))
			Expect(msg.Content).To(Equal("partial "))
			Expect(transcript.AwaitingResponse()).To(BeFalse())
		})

		It("should ignore unknown turn ids", func() {
			Expect(func() { transcript.Abort("missing") }).ToNot(Panic())
		})
	})

	Describe("AwaitingResponse", func() {
		It("should report true only while a turn is in flight", func() {
			Expect(transcript.AwaitingResponse()).To(BeFalse())

			turnID := transcript.BeginAssistantTurn()
			Expect(transcript.AwaitingResponse()).To(BeTrue())

			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.StreamEnded})).To(Succeed())
			Expect(transcript.AwaitingResponse()).To(BeFalse())
		})
	})

	Describe("Render", func() {
		It("should include a just-started empty pending turn as the last entry", func() {
			_, err := transcript.SubmitUserTurn("明日の予定を教えて")
			Expect(err).ToNot(HaveOccurred())
			transcript.BeginAssistantTurn()

			rendered := transcript.Render()
			Expect(rendered).To(HaveLen(2))
			Expect(rendered[1].Status).To(Equal(chat.StatusPending))
		})

		It("should trim content for display only", func() {
			turnID := transcript.BeginAssistantTurn()
			Expect(transcript.ApplyEvent(turnID, sse.Event{Kind: sse.ContentDelta, Text: "  答え  "})).To(Succeed())

			rendered := transcript.Render()
			Expect(rendered[0].DisplayContent()).To(Equal("答え"))
			Expect(transcript.Messages()[0].Content).To(Equal("  答え  "))
		})
	})

	Describe("Restore", func() {
		It("should seed the transcript with persisted messages", func() {
			saved := []chat.Message{
				chat.NewUserMessage("hi"),
				chat.NewErrorMessage("boom"),
			}

			transcript.Restore(saved)
			Expect(transcript.Messages()).To(HaveLen(2))
			Expect(transcript.AwaitingResponse()).To(BeFalse())
		})
	})
})
