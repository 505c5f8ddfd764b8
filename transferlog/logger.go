// Package transferlog records channel lifecycle events into a database.
// A Logger hooks into a controller instance and turns every configure,
// start, stop, release and completion into one row, so a transfer history
// can be inspected after the run with plain SQL.
package transferlog

import (
	"sync"
	"time"

	"github.com/soclab/edma/edma"
	"github.com/soclab/edma/recording"
)

const tableName = "channel_events"

// ChannelEvent is the row type of the channel_events table. Seq orders
// events that land on the same wall-clock stamp.
type ChannelEvent struct {
	Seq      uint64
	Time     float64
	Instance string
	Event    string
	Channel  uint32
	Detail   string
}

// A Logger records the lifecycle events of the controllers it is hooked
// into. One Logger can serve several instances; rows carry the instance
// name.
type Logger struct {
	mu      sync.Mutex
	backend recording.DataRecorder
	now     func() time.Time
	seq     uint64
}

// NewLogger creates a Logger writing into backend.
func NewLogger(backend recording.DataRecorder) *Logger {
	backend.CreateTable(tableName, ChannelEvent{})

	return &Logger{
		backend: backend,
		now:     time.Now,
	}
}

// Func records one hook invocation. Completion events arrive in
// interrupt-dispatch context; inserting only buffers the row, so the
// dispatch scan is never blocked on the database.
func (l *Logger) Func(ctx edma.HookCtx) {
	row := ChannelEvent{
		Event: ctx.Pos.Name,
	}

	if named, ok := ctx.Domain.(interface{ Name() string }); ok {
		row.Instance = named.Name()
	}
	if ch, ok := ctx.Item.(uint32); ok {
		row.Channel = ch
	}
	switch d := ctx.Detail.(type) {
	case edma.Direction:
		row.Detail = d.String()
	case edma.TransferStatus:
		row.Detail = d.String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	row.Seq = l.seq
	l.seq++
	row.Time = float64(l.now().UnixNano()) / 1e9
	l.backend.InsertData(tableName, row)
}

// Flush forces buffered rows into the database.
func (l *Logger) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.backend.Flush()
}
