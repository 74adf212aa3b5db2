package chat

import "github.com/yotei-chat/yotei/pkg/sse"

// streamEventMsg carries one decoded stream event (or a transport failure)
// from the network goroutine into the update loop. All transcript mutation
// happens on the update loop, keeping the assembler single-writer.
// AuthHint is set alongside Err when the backend rejected the request for
// missing calendar authorization.
type streamEventMsg struct {
	TurnID   string
	Event    sse.Event
	Err      error
	AuthHint string
}

// streamClosedMsg signals that the event channel for the current turn has
// been closed (stream end, EOF, or cancellation).
type streamClosedMsg struct{}
