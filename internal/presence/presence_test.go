package presence

import (
	"testing"

	"github.com/hugolgst/rich-go/client"
)

func newTestClient() (*Client, *int, *int) {
	logins := 0
	logouts := 0
	c := &Client{
		login: func(string) error {
			logins++
			return nil
		},
		logout: func() {
			logouts++
		},
		setActivity: func(client.Activity) error { return nil },
	}
	return c, &logins, &logouts
}

func TestConnectThenDropExactlyOnceEach(t *testing.T) {
	c, logins, logouts := newTestClient()

	c.Connect()
	c.Drop()

	if *logins != 1 {
		t.Errorf("logins = %d, want 1", *logins)
	}
	if *logouts != 1 {
		t.Errorf("logouts = %d, want 1", *logouts)
	}
	if c.Connected() {
		t.Error("client should end disconnected")
	}
}

func TestConnectIsIdempotent(t *testing.T) {
	c, logins, _ := newTestClient()

	c.Connect()
	c.Connect()
	c.Connect()

	if *logins != 1 {
		t.Errorf("logins = %d, want 1", *logins)
	}
}

func TestDropWithoutConnectIsNoop(t *testing.T) {
	c, _, logouts := newTestClient()

	c.Drop()

	if *logouts != 0 {
		t.Errorf("logouts = %d, want 0", *logouts)
	}
}
