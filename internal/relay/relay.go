// Package relay routes socket events between live connections: presence
// announcements, direct message delivery, and typing signals. Delivery is
// at-most-once and best-effort: a receiver that is not online at the moment
// of the send simply never sees the event.
package relay

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/presence"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/proto"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/store"
)

// imageNotificationText is the notification body used for any non-text message.
const imageNotificationText = "Sent an image"

// UserDirectory is the profile lookup the relay needs to build notifications.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id int64) (*store.User, error)
}

// SendMessage is an inbound "send message" intent.
type SendMessage struct {
	SenderID       int64
	ReceiverID     int64
	Content        string
	ConversationID int64
	MessageType    string
}

// Typing is an inbound typing signal.
type Typing struct {
	ReceiverID int64
	IsTyping   bool
}

// Relay bridges inbound client events to the presence registry and to
// outbound pushes on the correct live connection.
type Relay struct {
	mu       sync.Mutex
	clients  map[string]*Client // conn id -> client
	registry *presence.Registry
	users    UserDirectory
	log      *zerolog.Logger
}

// New constructs a relay over the given registry and user directory.
func New(registry *presence.Registry, users UserDirectory, logger *zerolog.Logger) *Relay {
	return &Relay{
		clients:  make(map[string]*Client),
		registry: registry,
		users:    users,
		log:      logger,
	}
}

// Connect registers a live connection with the relay.
func (r *Relay) Connect(c *Client) {
	r.mu.Lock()
	r.clients[c.ConnID] = c
	r.mu.Unlock()
}

// Announce records the user behind a connection, then broadcasts the full
// online-user snapshot to every connected client.
func (r *Relay) Announce(c *Client, userID int64) {
	if !r.registry.Add(userID, c.ConnID) {
		r.log.Debug().Int64("user_id", userID).Str("conn_id", c.ConnID).Msg("user already announced")
	}
	r.broadcastPresence()
}

// Disconnect removes the connection from the relay and the registry, then
// broadcasts the updated online-user snapshot.
func (r *Relay) Disconnect(c *Client) {
	r.mu.Lock()
	delete(r.clients, c.ConnID)
	r.mu.Unlock()

	r.registry.RemoveConn(c.ConnID)
	r.broadcastPresence()
}

// Send relays a direct message to the receiver's connection, if the
// receiver is online, followed by a best-effort notification. An offline
// receiver drops the whole event silently.
func (r *Relay) Send(ctx context.Context, in SendMessage) {
	entry, ok := r.registry.Get(in.ReceiverID)
	if !ok {
		r.log.Debug().Int64("receiver_id", in.ReceiverID).Msg("receiver offline, dropping message")
		return
	}

	r.push(entry.ConnID, proto.Outbound{
		Type:  proto.OutboundTypeEvent,
		Event: proto.EventMessage,
		Data: proto.MessageFrame{
			SenderID:       in.SenderID,
			Content:        in.Content,
			CreatedAt:      time.Now().UTC().Format(time.RFC3339),
			ConversationID: in.ConversationID,
			MessageType:    in.MessageType,
		},
	})

	// The message push above stands even if the name lookup fails.
	sender, err := r.users.GetUserByID(ctx, in.SenderID)
	if err != nil {
		r.log.Warn().Err(err).Int64("sender_id", in.SenderID).Msg("sender lookup failed, skipping notification")
		return
	}

	body := in.Content
	if in.MessageType != string(store.MessageTypeText) {
		body = imageNotificationText
	}
	r.push(entry.ConnID, proto.Outbound{
		Type:  proto.OutboundTypeEvent,
		Event: proto.EventNotification,
		Data: proto.NotificationFrame{
			SenderName: sender.FullName,
			Message:    body,
		},
	})
}

// Typing relays a typing signal to the receiver's connection, if online.
func (r *Relay) Typing(in Typing) {
	entry, ok := r.registry.Get(in.ReceiverID)
	if !ok {
		return
	}
	r.push(entry.ConnID, proto.Outbound{
		Type:  proto.OutboundTypeEvent,
		Event: proto.EventTyping,
		Data:  proto.TypingFrame{IsTyping: in.IsTyping},
	})
}

// broadcastPresence sends the full registry snapshot to all connections.
func (r *Relay) broadcastPresence() {
	snapshot := r.registry.Snapshot()
	users := make([]proto.OnlineUser, 0, len(snapshot))
	for _, e := range snapshot {
		users = append(users, proto.OnlineUser{UserID: e.UserID, SocketID: e.ConnID})
	}

	out := proto.Outbound{
		Type:  proto.OutboundTypeEvent,
		Event: proto.EventUsers,
		Data:  users,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		select {
		case c.Events <- out:
		default:
			// Drop if slow consumer.
		}
	}
}

// push delivers an event to a single connection.
func (r *Relay) push(connID string, out proto.Outbound) {
	r.mu.Lock()
	c, ok := r.clients[connID]
	r.mu.Unlock()
	if !ok {
		return
	}

	select {
	case c.Events <- out:
	default:
		r.log.Warn().Str("conn_id", connID).Str("event", out.Event).Msg("slow consumer, dropping event")
	}
}
