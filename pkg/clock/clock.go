// Package clock supplies the timestamps stamped into registry metadata.
package clock

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Layout is the timestamp format used by the npm registry. It is UTC with
// fixed-width fields, so timestamps sort lexicographically.
const Layout = "2006-01-02T15:04:05.000Z"

// Clock returns the current time as a formatted string.
type Clock interface {
	Now() string
}

// Wall formats the time reported by an underlying clock.Clock.
type Wall struct {
	c clock.Clock
}

// New returns a Wall backed by the system clock.
func New() *Wall {
	return NewWith(clock.New())
}

// NewWith returns a Wall backed by c; tests pass a *clock.Mock.
func NewWith(c clock.Clock) *Wall {
	return &Wall{c: c}
}

// Now returns the current time in Layout.
func (w *Wall) Now() string {
	return Format(w.c.Now())
}

// Format renders t in UTC using Layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Fixed always reports the same timestamp.
type Fixed string

// Now returns f.
func (f Fixed) Now() string {
	return string(f)
}
