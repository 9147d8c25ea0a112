package ws

// Client control messages accepted on an open socket.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	ActionPing        = "ping"
)

type ClientMessage struct {
	Action   string `json:"action"`
	Topic    string `json:"topic,omitempty"`
	EntityID string `json:"entity_id,omitempty"`
}

// ErrorMessage is the payload of an "error" event sent back on the socket
// when a control message cannot be honored.
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
