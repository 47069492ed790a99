package realtime

import (
	"encoding/json"
	"fmt"

	"ripple/infrastructure"
)

// Inbound event kinds carried over the websocket.
const (
	EventConnect       = "connect"
	EventDirectMessage = "direct_message"
	EventTyping        = "typing"
	EventChat          = "chat"
)

// Outbound event kinds.
const (
	EventUserOnline        = "user_online"
	EventUserOffline       = "user_offline"
	EventDirectMessageSent = "direct_message_sent"
	EventGroupMessage      = "group_message"
	EventNotification      = "notification"
	EventError             = "error"
)

// Inbound is the decoded form of a client envelope. The router switches over
// these variants exhaustively; adding an event kind means adding a variant.
type Inbound interface {
	inbound()
}

type ConnectEvent struct {
	UserID string `json:"userId"`
}

type DirectMessageEvent struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

type TypingEvent struct {
	ReceiverID string `json:"receiverId"`
	IsTyping   bool   `json:"isTyping"`
}

type ChatEvent struct {
	Content string `json:"content"`
}

func (ConnectEvent) inbound()       {}
func (DirectMessageEvent) inbound() {}
func (TypingEvent) inbound()        {}
func (ChatEvent) inbound()          {}

type rawEnvelope struct {
	Type string `json:"type"`
}

// DecodeInbound parses one client envelope, discriminated by the type field.
func DecodeInbound(data []byte) (Inbound, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", infrastructure.ErrMalformedEvent, err)
	}

	var (
		ev  Inbound
		err error
	)
	switch raw.Type {
	case EventConnect:
		var e ConnectEvent
		err = json.Unmarshal(data, &e)
		ev = e
	case EventDirectMessage:
		var e DirectMessageEvent
		err = json.Unmarshal(data, &e)
		ev = e
	case EventTyping:
		var e TypingEvent
		err = json.Unmarshal(data, &e)
		ev = e
	case EventChat:
		var e ChatEvent
		err = json.Unmarshal(data, &e)
		ev = e
	default:
		return nil, fmt.Errorf("%w: unknown type %q", infrastructure.ErrMalformedEvent, raw.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", infrastructure.ErrMalformedEvent, err)
	}
	return ev, nil
}

// Envelope is the wire form of every server-to-client event.
type Envelope struct {
	Type     string      `json:"type"`
	UserID   string      `json:"userId,omitempty"`
	IsTyping *bool       `json:"isTyping,omitempty"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

func UserOnline(userID string) Envelope {
	return Envelope{Type: EventUserOnline, UserID: userID}
}

func UserOffline(userID string) Envelope {
	return Envelope{Type: EventUserOffline, UserID: userID}
}

func DirectMessagePush(data interface{}) Envelope {
	return Envelope{Type: EventDirectMessage, Data: data}
}

func DirectMessageAck(data interface{}) Envelope {
	return Envelope{Type: EventDirectMessageSent, Data: data}
}

func TypingPush(userID string, isTyping bool) Envelope {
	return Envelope{Type: EventTyping, UserID: userID, IsTyping: &isTyping}
}

func ChatPush(data interface{}) Envelope {
	return Envelope{Type: EventChat, Data: data}
}

func GroupMessagePush(data interface{}) Envelope {
	return Envelope{Type: EventGroupMessage, Data: data}
}

func NotificationPush(data interface{}) Envelope {
	return Envelope{Type: EventNotification, Data: data}
}

func ErrorEvent(message string) Envelope {
	return Envelope{Type: EventError, Message: message}
}
