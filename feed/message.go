package feed

import "encoding/json"

// Message is the wire envelope used by the websocket feed protocol, shared
// by the Live client and cmd/feedsrv.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const TypeFrame = "frame"

// NewFrameMessage wraps a frame in a wire envelope.
func NewFrameMessage(f Frame) (Message, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: TypeFrame, Data: data}, nil
}
