package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/proto"
)

// rawOutbound mirrors proto.Outbound with raw data for test-side decoding.
type rawOutbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func announce(t *testing.T, ctx context.Context, conn *websocket.Conn, userID int64) {
	t.Helper()

	payload, _ := json.Marshal(proto.AddUserData{UserID: userID})
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeAddUser, Data: payload}); err != nil {
		t.Fatalf("send addUser: %v", err)
	}
}

// readUntilEvent drains frames until one with the wanted event arrives.
func readUntilEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) rawOutbound {
	t.Helper()

	for {
		var out rawOutbound
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			t.Fatalf("read outbound waiting for %s: %v", event, err)
		}
		if out.Event == event {
			return out
		}
	}
}

// waitForSnapshot reads presence broadcasts until the snapshot contains all ids.
func waitForSnapshot(t *testing.T, ctx context.Context, conn *websocket.Conn, ids ...int64) {
	t.Helper()

	for {
		out := readUntilEvent(t, ctx, conn, proto.EventUsers)
		var users []proto.OnlineUser
		if err := json.Unmarshal(out.Data, &users); err != nil {
			t.Fatalf("unmarshal snapshot: %v", err)
		}
		present := make(map[int64]bool, len(users))
		for _, u := range users {
			present[u.UserID] = true
		}
		all := true
		for _, id := range ids {
			if !present[id] {
				all = false
				break
			}
		}
		if all {
			return
		}
	}
}

func TestWebSocketMessageAndNotificationDelivery(t *testing.T) {
	ts := startTestServer(t)

	// Sender profile must exist for the notification lookup.
	registerUser(t, ts, "Alice Kim", "alice@alumni.edu")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	connB := dialWS(t, ctx, ts)

	announce(t, ctx, connA, 1)
	announce(t, ctx, connB, 2)

	// Both users online before sending.
	waitForSnapshot(t, ctx, connA, 1, 2)
	waitForSnapshot(t, ctx, connB, 1, 2)

	payload, _ := json.Marshal(proto.SendMessageData{
		SenderID:       1,
		ReceiverID:     2,
		Content:        "see you at the reunion",
		ConversationID: 7,
		MessageType:    "text",
	})
	if err := wsjson.Write(ctx, connA, proto.Inbound{Type: proto.InboundTypeSendMessage, Data: payload}); err != nil {
		t.Fatalf("send message: %v", err)
	}

	msgOut := readUntilEvent(t, ctx, connB, proto.EventMessage)
	var frame proto.MessageFrame
	if err := json.Unmarshal(msgOut.Data, &frame); err != nil {
		t.Fatalf("unmarshal message frame: %v", err)
	}
	if frame.SenderID != 1 || frame.Content != "see you at the reunion" || frame.ConversationID != 7 {
		t.Fatalf("unexpected message frame: %+v", frame)
	}

	notifOut := readUntilEvent(t, ctx, connB, proto.EventNotification)
	var notif proto.NotificationFrame
	if err := json.Unmarshal(notifOut.Data, &notif); err != nil {
		t.Fatalf("unmarshal notification frame: %v", err)
	}
	if notif.SenderName != "Alice Kim" || notif.Message != "see you at the reunion" {
		t.Fatalf("unexpected notification frame: %+v", notif)
	}
}

func TestWebSocketTypingRelay(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	connB := dialWS(t, ctx, ts)

	announce(t, ctx, connA, 1)
	announce(t, ctx, connB, 2)
	waitForSnapshot(t, ctx, connA, 1, 2)
	waitForSnapshot(t, ctx, connB, 1, 2)

	payload, _ := json.Marshal(proto.TypingData{ReceiverID: 2, IsTyping: true})
	if err := wsjson.Write(ctx, connA, proto.Inbound{Type: proto.InboundTypeTyping, Data: payload}); err != nil {
		t.Fatalf("send typing: %v", err)
	}

	out := readUntilEvent(t, ctx, connB, proto.EventTyping)
	var tf proto.TypingFrame
	if err := json.Unmarshal(out.Data, &tf); err != nil {
		t.Fatalf("unmarshal typing frame: %v", err)
	}
	if !tf.IsTyping {
		t.Fatalf("expected isTyping true")
	}
}

func TestWebSocketUnknownTypeReturnsError(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)

	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: "bogus"}); err != nil {
		t.Fatalf("send bogus: %v", err)
	}

	var out rawOutbound
	if err := wsjson.Read(ctx, conn, &out); err != nil {
		t.Fatalf("read outbound: %v", err)
	}
	if out.Type != proto.OutboundTypeError || out.Error == nil || out.Error.Code != "invalid_message" {
		t.Fatalf("expected invalid_message error, got %+v", out)
	}
}

func TestWebSocketDisconnectUpdatesPresence(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	connB := dialWS(t, ctx, ts)

	announce(t, ctx, connA, 1)
	announce(t, ctx, connB, 2)
	waitForSnapshot(t, ctx, connB, 1, 2)

	connA.Close(websocket.StatusNormalClosure, "bye")

	// B eventually sees a snapshot without user 1.
	deadline := time.Now().Add(4 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for presence update")
		}
		out := readUntilEvent(t, ctx, connB, proto.EventUsers)
		var users []proto.OnlineUser
		if err := json.Unmarshal(out.Data, &users); err != nil {
			t.Fatalf("unmarshal snapshot: %v", err)
		}
		gone := true
		for _, u := range users {
			if u.UserID == 1 {
				gone = false
				break
			}
		}
		if gone {
			return
		}
	}
}
