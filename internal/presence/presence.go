// Package presence broadcasts rich-presence status over the local
// Discord IPC socket.
package presence

import (
	"log"
	"time"

	"github.com/hugolgst/rich-go/client"
)

// AppID is the Discord application id used for rich presence.
const AppID = "1045242932128919633"

// Client owns the rich-presence connection. Connect and Drop are
// idempotent; toggling the setting twice connects and disconnects
// exactly once each.
type Client struct {
	connected bool

	// Overridable for tests.
	login       func(appID string) error
	logout      func()
	setActivity func(activity client.Activity) error
}

// NewClient creates a disconnected presence client.
func NewClient() *Client {
	return &Client{
		login:       client.Login,
		logout:      client.Logout,
		setActivity: client.SetActivity,
	}
}

// Connect establishes the presence connection and publishes the idle
// activity. Fire-and-forget: failures are logged, never surfaced.
func (c *Client) Connect() {
	if c.connected {
		return
	}
	if err := c.login(AppID); err != nil {
		log.Printf("presence: connect failed: %v", err)
		return
	}
	c.connected = true

	now := time.Now()
	if err := c.setActivity(client.Activity{
		Details:    "Chatting on Cinder",
		LargeImage: "cinder",
		Timestamps: &client.Timestamps{Start: &now},
	}); err != nil {
		log.Printf("presence: set activity failed: %v", err)
	}
}

// Drop tears the presence connection down.
func (c *Client) Drop() {
	if !c.connected {
		return
	}
	c.logout()
	c.connected = false
}

// Connected reports the current connection state.
func (c *Client) Connected() bool {
	return c.connected
}
