// Package instance implements single-instance coordination over a
// localhost TCP lock.
//
// The first process to bind a port in the range owns the instance lock.
// A second launch finds the resident through a PING handshake, forwards
// its invocation as an ACTIVATE request, and exits without creating a
// window. Because the lock is a bound socket, a crashed holder releases
// it at OS level; a stale lock can never wedge startup.
package instance

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	host      = "127.0.0.1"
	portStart = 47769
	portEnd   = 47779

	pingLine = "CINDER PING"
	pongLine = "CINDER PONG"
	okLine   = "CINDER OK"

	dialTimeout = 300 * time.Millisecond
)

// ErrAlreadyRunning reports that another instance holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Activation is a forwarded invocation from a second launch attempt.
type Activation struct {
	Args []string `json:"args"`
}

// Lock is the held single-instance lock. The holder must drain
// Activations until Close.
type Lock struct {
	ln          net.Listener
	activations chan Activation
	done        chan struct{}
}

// Acquire attempts to take the single-instance lock. Acquisition is
// binary: it either succeeds, fails with ErrAlreadyRunning when a live
// resident answers the handshake, or fails hard when the whole port
// range is occupied by foreign services. It is never retried.
func Acquire() (*Lock, error) {
	for port := portStart; port <= portEnd; port++ {
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		ln, err := net.Listen("tcp", addr)
		if err == nil {
			l := &Lock{
				ln:          ln,
				activations: make(chan Activation, 4),
				done:        make(chan struct{}),
			}
			go l.serve()
			return l, nil
		}
		if ping(addr) {
			return nil, ErrAlreadyRunning
		}
		// Port taken by something that is not us; try the next one.
	}
	return nil, fmt.Errorf("no free port in %d-%d", portStart, portEnd)
}

// Activations returns forwarded invocations from second launch attempts.
func (l *Lock) Activations() <-chan Activation {
	return l.activations
}

// Addr returns the bound lock address.
func (l *Lock) Addr() string {
	return l.ln.Addr().String()
}

// Close releases the lock.
func (l *Lock) Close() error {
	close(l.done)
	return l.ln.Close()
}

func (l *Lock) serve() {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			return
		}
		go l.handle(conn)
	}
}

func (l *Lock) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(dialTimeout))

	r := bufio.NewReader(conn)
	line, err := r.ReadString('\n')
	if err != nil {
		return
	}
	line = strings.TrimRight(line, "\n")

	switch {
	case line == pingLine:
		fmt.Fprintln(conn, pongLine)

	case strings.HasPrefix(line, "CINDER ACTIVATE "):
		var act Activation
		payload := strings.TrimPrefix(line, "CINDER ACTIVATE ")
		if err := json.Unmarshal([]byte(payload), &act); err != nil {
			return
		}
		select {
		case l.activations <- act:
		case <-l.done:
			return
		}
		fmt.Fprintln(conn, okLine)
	}
}

// Forward hands this launch's arguments to the resident instance so it
// can restore and focus its window.
func Forward(args []string) error {
	for port := portStart; port <= portEnd; port++ {
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		if !ping(addr) {
			continue
		}
		return activate(addr, args)
	}
	return errors.New("no resident instance found")
}

func activate(addr string, args []string) error {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(dialTimeout))

	payload, err := json.Marshal(Activation{Args: args})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(conn, "CINDER ACTIVATE %s\n", payload); err != nil {
		return err
	}
	resp, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return err
	}
	if strings.TrimRight(resp, "\n") != okLine {
		return fmt.Errorf("unexpected response %q", resp)
	}
	return nil
}

func ping(addr string) bool {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return false
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(dialTimeout))

	if _, err := fmt.Fprintln(conn, pingLine); err != nil {
		return false
	}
	resp, err := bufio.NewReader(conn).ReadString('\n')
	return err == nil && strings.TrimRight(resp, "\n") == pongLine
}
