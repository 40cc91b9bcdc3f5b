// Package telemetry sends opt-in product analytics events.
package telemetry

import (
	"log"

	"github.com/posthog/posthog-go"

	"github.com/cinder-app/cinder/internal/buildinfo"
)

const (
	apiKey   = "phc_cinder_desktop"
	endpoint = "https://eu.i.posthog.com"
)

// Client captures analytics events. A disabled client is a no-op, so
// callers never branch on the telemetry setting.
type Client struct {
	ph        posthog.Client
	installID string
}

// New creates a telemetry client. When enabled is false the returned
// client discards every event.
func New(installID string, enabled bool) *Client {
	c := &Client{installID: installID}
	if !enabled {
		return c
	}
	ph, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		log.Printf("telemetry: disabled, client init failed: %v", err)
		return c
	}
	c.ph = ph
	return c
}

// Capture records one event with the app version attached.
func (c *Client) Capture(event string) {
	if c.ph == nil {
		return
	}
	err := c.ph.Enqueue(posthog.Capture{
		DistinctId: c.installID,
		Event:      event,
		Properties: posthog.NewProperties().
			Set("version", buildinfo.Version),
	})
	if err != nil {
		log.Printf("telemetry: capture %s failed: %v", event, err)
	}
}

// Close flushes pending events.
func (c *Client) Close() {
	if c.ph == nil {
		return
	}
	if err := c.ph.Close(); err != nil {
		log.Printf("telemetry: close failed: %v", err)
	}
}
