// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

// Package validators enforces the note invariants shared by the client and
// the server: a note must carry a non-empty title and content before it may
// be persisted anywhere, locally or remotely.
//
// Validation runs before any I/O, so an invalid note is rejected without a
// network round-trip and without an outbox entry being created.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input
// values. Implementations may perform structural validation, semantic
// checks, or cross-field rules. Optional field names restrict validation to
// a subset of fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
