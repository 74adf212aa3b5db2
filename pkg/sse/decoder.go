package sse

import (
	"encoding/json"
	"strings"
)

// EventKind identifies the variant of a decoded stream event.
type EventKind int

const (
	// RoleAnnounced carries the role of the message being streamed.
	RoleAnnounced EventKind = iota
	// ContentDelta carries an incremental fragment of assistant text.
	ContentDelta
	// StreamEnded marks normal termination of the stream.
	StreamEnded
	// MalformedFrame reports a data line that could not be parsed.
	MalformedFrame
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case RoleAnnounced:
		return "role"
	case ContentDelta:
		return "content"
	case StreamEnded:
		return "done"
	case MalformedFrame:
		return "malformed"
	default:
		return "unknown"
	}
}

// Event is a single application-level event decoded from the stream.
// Role is set for RoleAnnounced, Text for ContentDelta and Raw holds the
// offending line for MalformedFrame.
type Event struct {
	Kind EventKind
	Role string
	Text string
	Raw  string
}

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

// Frame payload shape: {"choices":[{"delta":{"role"?,"content"?}}]}
type frame struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Delta delta `json:"delta"`
}

type delta struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Decoder turns a raw byte stream into a sequence of Events. A line may
// span two reads, so the undecoded tail is buffered between Feed calls.
// A Decoder is created per stream and discarded at stream end.
type Decoder struct {
	buf strings.Builder
}

// NewDecoder creates a decoder with an empty buffer.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends raw bytes to the buffer and returns the events decoded from
// every newline-terminated line now available. The final unterminated
// segment is retained for the next call. Malformed payloads are reported
// as MalformedFrame events, never as errors.
func (d *Decoder) Feed(p []byte) []Event {
	pending := d.buf.String() + string(p)
	d.buf.Reset()

	var events []Event
	for {
		idx := strings.IndexByte(pending, '\n')
		if idx < 0 {
			break
		}
		line := strings.TrimSuffix(pending[:idx], "\r")
		pending = pending[idx+1:]
		events = append(events, decodeLine(line)...)
	}

	d.buf.WriteString(pending)
	return events
}

// Close drains the buffer. If it holds an unterminated data frame, the
// frame is decoded as if it had been newline-terminated; any other partial
// tail is discarded, since the transport ended mid-line.
func (d *Decoder) Close() []Event {
	tail := d.buf.String()
	d.buf.Reset()

	if !strings.HasPrefix(tail, dataPrefix) {
		return nil
	}
	return decodeLine(tail)
}

// decodeLine maps one complete line to zero or more events.
func decodeLine(line string) []Event {
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, dataPrefix) {
		// Stream framing may include directives not modeled here.
		return nil
	}

	payload := line[len(dataPrefix):]
	if payload == doneSentinel {
		return []Event{{Kind: StreamEnded}}
	}

	var f frame
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		return []Event{{Kind: MalformedFrame, Raw: line}}
	}
	if len(f.Choices) == 0 {
		return nil
	}

	// Role and content may arrive on the same frame; role goes first.
	var events []Event
	de := f.Choices[0].Delta
	if de.Role != "" {
		events = append(events, Event{Kind: RoleAnnounced, Role: de.Role})
	}
	if de.Content != "" {
		events = append(events, Event{Kind: ContentDelta, Text: de.Content})
	}
	return events
}
