// Package notify keeps the set of toast notifications a page is showing.
//
// A Center owns every active notification and its timers. Rendering is left
// to the caller, which can observe changes through OnChange.
package notify

import (
	"sync"
	"time"
)

type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Info    Type = "info"
)

const (
	DefaultDuration = 5000 * time.Millisecond
	// RemoveDelay is how long a dismissed notification stays in the list,
	// hidden, so an exit transition can finish.
	RemoveDelay = 300 * time.Millisecond
	// NoAutoDismiss keeps a notification until it is dismissed explicitly.
	NoAutoDismiss time.Duration = -1
)

// Notification is what the caller asks to show. A zero Duration means
// DefaultDuration; a negative one disables auto-dismiss.
type Notification struct {
	Type     Type
	Title    string
	Message  string
	Duration time.Duration
}

// Icon returns the glyph shown next to the message.
func (n Notification) Icon() string {
	switch n.Type {
	case Success:
		return "✅"
	case Error:
		return "❌"
	default:
		return "📢"
	}
}

type Handle uint64

// Entry is a snapshot of one notification in the center.
type Entry struct {
	Handle  Handle
	Visible bool
	Notification
}

type entry struct {
	Entry
	autoTimer   *time.Timer
	removeTimer *time.Timer
}

type Center struct {
	mu          sync.Mutex
	next        Handle
	entries     []*entry
	removeDelay time.Duration
	onChange    func([]Entry)
	closed      bool
}

type Option func(*Center)

// OnChange registers fn to receive a snapshot after every change. fn is
// called without the center's lock held.
func OnChange(fn func([]Entry)) Option {
	return func(c *Center) { c.onChange = fn }
}

// WithRemoveDelay overrides RemoveDelay.
func WithRemoveDelay(d time.Duration) Option {
	return func(c *Center) { c.removeDelay = d }
}

func NewCenter(opts ...Option) *Center {
	c := &Center{removeDelay: RemoveDelay}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show adds n to the center and returns a handle for early dismissal.
// Identical notifications are not merged.
func (c *Center) Show(n Notification) Handle {
	if n.Type == "" {
		n.Type = Info
	}
	if n.Duration == 0 {
		n.Duration = DefaultDuration
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	c.next++
	h := c.next
	e := &entry{Entry: Entry{Handle: h, Visible: true, Notification: n}}
	if n.Duration > 0 {
		e.autoTimer = time.AfterFunc(n.Duration, func() { c.Dismiss(h) })
	}
	c.entries = append(c.entries, e)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
	return h
}

// Dismiss hides the notification and removes it after the remove delay.
// It reports false when h is unknown or already being dismissed.
func (c *Center) Dismiss(h Handle) bool {
	c.mu.Lock()
	e := c.findLocked(h)
	if e == nil || !e.Visible {
		c.mu.Unlock()
		return false
	}
	e.Visible = false
	if e.autoTimer != nil {
		e.autoTimer.Stop()
	}
	e.removeTimer = time.AfterFunc(c.removeDelay, func() { c.remove(h) })
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
	return true
}

// Active returns the notifications still on screen, including ones that are
// fading out, in the order they were shown.
func (c *Center) Active() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close stops all timers and drops every notification.
func (c *Center) Close() {
	c.mu.Lock()
	for _, e := range c.entries {
		if e.autoTimer != nil {
			e.autoTimer.Stop()
		}
		if e.removeTimer != nil {
			e.removeTimer.Stop()
		}
	}
	c.entries = nil
	c.closed = true
	c.mu.Unlock()
}

func (c *Center) remove(h Handle) {
	c.mu.Lock()
	removed := false
	for i, e := range c.entries {
		if e.Handle == h {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			removed = true
			break
		}
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if removed {
		c.emit(snap)
	}
}

func (c *Center) findLocked(h Handle) *entry {
	for _, e := range c.entries {
		if e.Handle == h {
			return e
		}
	}
	return nil
}

func (c *Center) snapshotLocked() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Entry
	}
	return out
}

func (c *Center) emit(snap []Entry) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}
