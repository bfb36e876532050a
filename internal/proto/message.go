package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeAddUser     = "addUser"
	InboundTypeSendMessage = "sendMessage"
	InboundTypeTyping      = "typing"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventUsers        = "getUsers"
	EventMessage      = "getMessage"
	EventNotification = "getNotification"
	EventTyping       = "getTyping"
)

// AddUserData announces the connecting user's identity.
type AddUserData struct {
	UserID int64 `json:"userId"`
}

// SendMessageData is a direct message from the client.
type SendMessageData struct {
	SenderID       int64  `json:"senderId"`
	ReceiverID     int64  `json:"receiverId"`
	Content        string `json:"content"`
	ConversationID int64  `json:"conversationId"`
	MessageType    string `json:"messageType"`
}

// TypingData is an ephemeral typing signal from the client.
type TypingData struct {
	ReceiverID int64 `json:"receiverId"`
	IsTyping   bool  `json:"isTyping"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// OnlineUser is one entry of the presence snapshot broadcast.
type OnlineUser struct {
	UserID   int64  `json:"userId"`
	SocketID string `json:"socketId"`
}

// MessageFrame is pushed to the receiver when a message is relayed.
type MessageFrame struct {
	SenderID       int64  `json:"sender_id"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
	ConversationID int64  `json:"conversation_id"`
	MessageType    string `json:"message_type"`
}

// NotificationFrame is the best-effort notification pushed after a message.
type NotificationFrame struct {
	SenderName string `json:"senderName"`
	Message    string `json:"message"`
}

// TypingFrame is pushed to the receiver for typing signals.
type TypingFrame struct {
	IsTyping bool `json:"isTyping"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
