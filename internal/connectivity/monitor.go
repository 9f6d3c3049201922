// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

// Package connectivity tracks whether the client can reach the backend and
// fans connectivity transitions out to interested components.
package connectivity

import (
	"sync"

	"github.com/andrinek/notesync/internal/logger"
	"github.com/nats-io/nats.go"
)

// Monitor holds the current online flag and notifies subscribers on
// transitions only: a repeated "still offline" signal does not fire
// callbacks. Callbacks run synchronously on the goroutine that reported the
// transition, so they must be quick or hand off to their own goroutine.
type Monitor struct {
	log *logger.Logger

	mu     sync.RWMutex
	online bool
	subs   map[int]func(online bool)
	nextID int
}

func NewMonitor(initiallyOnline bool, log *logger.Logger) *Monitor {
	if log == nil {
		log = logger.Nop()
	}
	return &Monitor{
		log:    &logger.Logger{Logger: log.With().Str("component", "connectivity").Logger()},
		online: initiallyOnline,
		subs:   make(map[int]func(online bool)),
	}
}

// Online reports the last observed connectivity state.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Subscribe registers fn for future transitions. It is not called with the
// current state. The returned function unsubscribes.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// SetOnline records a connectivity observation. Subscribers fire only when
// the state actually changes.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	subs := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	m.log.Info().Bool("online", online).Msg("connectivity changed")
	for _, fn := range subs {
		fn(online)
	}
}

// BindNATS wires the monitor to a broker connection: a dropped connection
// marks the client offline, a successful reconnect marks it online again.
func (m *Monitor) BindNATS(conn *nats.Conn) {
	conn.SetDisconnectErrHandler(func(_ *nats.Conn, err error) {
		if err != nil {
			m.log.Warn().Err(err).Msg("broker connection lost")
		}
		m.SetOnline(false)
	})
	conn.SetReconnectHandler(func(_ *nats.Conn) {
		m.SetOnline(true)
	})
	conn.SetClosedHandler(func(_ *nats.Conn) {
		m.SetOnline(false)
	})

	m.SetOnline(conn.IsConnected())
}
