// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package adapter

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// change feed subjects are scoped per owner: notes.changed.<ownerID>
const changeSubjectFormat = "notes.changed.%d"

// NATSChangeFeed implements ChangeFeed over a NATS connection.
type NATSChangeFeed struct {
	conn *nats.Conn
}

// NewNATSChangeFeed connects to the broker at url and returns a ChangeFeed
// over it. The connection reconnects indefinitely; connectivity transitions
// are observable through the handlers installed by opts.
func NewNATSChangeFeed(url string, opts ...nats.Option) (*NATSChangeFeed, error) {
	base := []nats.Option{
		nats.Name("notesync-client"),
		nats.MaxReconnects(-1),
	}
	conn, err := nats.Connect(url, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connect change feed broker: %w: %w", ErrRemoteUnavailable, err)
	}
	return &NATSChangeFeed{conn: conn}, nil
}

func (f *NATSChangeFeed) SubscribeChanges(ownerID int64, fn func()) (func(), error) {
	subject := fmt.Sprintf(changeSubjectFormat, ownerID)
	sub, err := f.conn.Subscribe(subject, func(_ *nats.Msg) {
		fn()
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}

	return func() { _ = sub.Unsubscribe() }, nil
}

// Conn exposes the underlying connection so the connectivity monitor can
// install disconnect/reconnect handlers on it.
func (f *NATSChangeFeed) Conn() *nats.Conn {
	return f.conn
}

func (f *NATSChangeFeed) Close() {
	if f.conn != nil {
		f.conn.Drain() //nolint:errcheck
	}
}

// ChangePublisher is the server-side half of the change feed: every mutation
// of the notes table publishes an empty signal to the owner's subject.
type ChangePublisher struct {
	conn *nats.Conn
}

func NewChangePublisher(url string) (*ChangePublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("notesync-server"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect change feed broker: %w", err)
	}
	return &ChangePublisher{conn: conn}, nil
}

// Publish signals subscribers of ownerID that the notes table changed. The
// payload carries no data; subscribers re-fetch on their own.
func (p *ChangePublisher) Publish(ownerID int64) error {
	return p.conn.Publish(fmt.Sprintf(changeSubjectFormat, ownerID), nil)
}

func (p *ChangePublisher) Close() {
	if p.conn != nil {
		p.conn.Drain() //nolint:errcheck
	}
}
