package relay

import (
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/proto"
)

// Client is one live socket connection as seen by the relay.
type Client struct {
	ConnID string
	Events chan proto.Outbound
}

// NewClient constructs a client with an initialized event channel.
func NewClient(connID string) *Client {
	return &Client{
		ConnID: connID,
		Events: make(chan proto.Outbound, 16),
	}
}
