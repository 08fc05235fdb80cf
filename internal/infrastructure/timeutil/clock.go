// Package timeutil provides the clock abstraction and local calendar date helpers.
package timeutil

import (
	"sync"
	"time"
)

// Clock provides an abstraction over time.Now() for testability.
// Use RealClock in production and MockClock in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock uses the actual system time in a fixed location.
type RealClock struct {
	loc *time.Location
}

// NewRealClock creates a RealClock reporting time in the process location.
func NewRealClock() *RealClock {
	return &RealClock{loc: time.Local}
}

// NewRealClockIn creates a RealClock reporting time in loc.
func NewRealClockIn(loc *time.Location) *RealClock {
	if loc == nil {
		loc = time.Local
	}
	return &RealClock{loc: loc}
}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	if c == nil || c.loc == nil {
		return time.Now()
	}
	return time.Now().In(c.loc)
}

// MockClock returns a controllable time for testing.
// It is safe for use from multiple goroutines.
type MockClock struct {
	mu        sync.RWMutex
	fixedTime time.Time
}

// NewMockClock creates a mock clock with the given fixed time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{fixedTime: t}
}

// Now returns the fixed time.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fixedTime
}

// Set sets the mock clock to a specific time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.fixedTime = t
	m.mu.Unlock()
}

// Advance moves the mock clock forward by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.fixedTime = m.fixedTime.Add(d)
	m.mu.Unlock()
}

// AdvanceDays moves the mock clock forward by whole calendar days.
func (m *MockClock) AdvanceDays(days int) {
	m.mu.Lock()
	m.fixedTime = m.fixedTime.AddDate(0, 0, days)
	m.mu.Unlock()
}

// Today returns local midnight of the clock's current day.
func Today(c Clock) time.Time {
	return StartOfDay(c.Now())
}

var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*MockClock)(nil)
)
