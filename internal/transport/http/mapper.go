package http

import (
	"context"
	"encoding/json"

	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/proto"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/relay"
)

// dispatchInbound maps a wire message to the matching relay call.
// A non-nil proto.Error is a client mistake reported on the socket; a
// non-nil error tears the connection down.
func (h *WSHandler) dispatchInbound(ctx context.Context, client *relay.Client, inbound proto.Inbound) (*proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeAddUser:
		var data proto.AddUserData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, err
		}
		if data.UserID == 0 {
			return &proto.Error{Code: "bad_request", Msg: "userId is required"}, nil
		}
		h.relay.Announce(client, data.UserID)
		return nil, nil
	case proto.InboundTypeSendMessage:
		var data proto.SendMessageData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, err
		}
		if data.ReceiverID == 0 {
			return &proto.Error{Code: "bad_request", Msg: "receiverId is required"}, nil
		}
		h.relay.Send(ctx, relay.SendMessage{
			SenderID:       data.SenderID,
			ReceiverID:     data.ReceiverID,
			Content:        data.Content,
			ConversationID: data.ConversationID,
			MessageType:    data.MessageType,
		})
		return nil, nil
	case proto.InboundTypeTyping:
		var data proto.TypingData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, err
		}
		if data.ReceiverID == 0 {
			return &proto.Error{Code: "bad_request", Msg: "receiverId is required"}, nil
		}
		h.relay.Typing(relay.Typing{
			ReceiverID: data.ReceiverID,
			IsTyping:   data.IsTyping,
		})
		return nil, nil
	default:
		return &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}
