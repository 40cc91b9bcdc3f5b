package shell

import "sync/atomic"

// ShutdownIntent is the teardown signal: keep running, quit
// for good, or quit and respawn. It is written only by user-initiated
// quit/relaunch commands and consumed exactly once at teardown.
type ShutdownIntent int32

const (
	// IntentContinue keeps the process alive; a close request may still
	// be converted into a hide.
	IntentContinue ShutdownIntent = iota
	// IntentQuit terminates the process for good.
	IntentQuit
	// IntentRelaunch terminates the process and spawns a replacement
	// with the original arguments.
	IntentRelaunch
)

func (i ShutdownIntent) String() string {
	switch i {
	case IntentQuit:
		return "quit"
	case IntentRelaunch:
		return "relaunch"
	default:
		return "continue"
	}
}

// intentFlag holds the shutdown intent. The event loop is the only
// writer; the teardown path reads it after the loop has stopped, so the
// atomic is the whole synchronization story.
type intentFlag struct {
	v atomic.Int32
}

func (f *intentFlag) Store(i ShutdownIntent) { f.v.Store(int32(i)) }

func (f *intentFlag) Load() ShutdownIntent { return ShutdownIntent(f.v.Load()) }
