// Command ws_chat is a small interactive client for manually exercising the
// relay protocol: announce an identity, then type "<receiverId> <message>"
// lines to send direct messages.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	userID := flag.Int64("user", 1, "user id to announce")
	conversationID := flag.Int64("conversation", 0, "conversation id to attach to messages")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(v interface{}) {
		if writeErr := wsjson.Write(ctx, conn, v); writeErr != nil {
			cancel()
			log.Printf("send: %v", writeErr)
		}
	}

	announcePayload, err := json.Marshal(proto.AddUserData{UserID: *userID})
	if err != nil {
		return fmt.Errorf("marshal announce: %w", err)
	}
	send(proto.Inbound{Type: proto.InboundTypeAddUser, Data: announcePayload})

	go func() {
		for {
			var outbound proto.Outbound
			if readErr := wsjson.Read(ctx, conn, &outbound); readErr != nil {
				if !errors.Is(readErr, context.Canceled) {
					log.Printf("read: %v", readErr)
				}
				cancel()
				return
			}
			data, _ := json.Marshal(outbound.Data)
			fmt.Printf("<< %s %s\n", outbound.Event, data)
		}
	}()

	fmt.Println("type '<receiverId> <message>' and press enter; ctrl-c to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			fmt.Println("usage: <receiverId> <message>")
			continue
		}
		receiverID, parseErr := strconv.ParseInt(parts[0], 10, 64)
		if parseErr != nil {
			fmt.Println("invalid receiver id")
			continue
		}

		payload, marshalErr := json.Marshal(proto.SendMessageData{
			SenderID:       *userID,
			ReceiverID:     receiverID,
			Content:        parts[1],
			ConversationID: *conversationID,
			MessageType:    "text",
		})
		if marshalErr != nil {
			return fmt.Errorf("marshal message: %w", marshalErr)
		}
		send(proto.Inbound{Type: proto.InboundTypeSendMessage, Data: payload})
	}

	return scanner.Err()
}
