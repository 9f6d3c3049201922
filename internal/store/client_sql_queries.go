// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

package store

const (
	enqueueOutboxEntry = `
		INSERT INTO outbox (
			note_id,
			owner_id,
			title,
			content,
			subject,
			folder,
			tags,
			created_at,
			queued_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	listOutboxEntries = `
		SELECT
			note_id,
			owner_id,
			title,
			content,
			subject,
			folder,
			tags,
			created_at,
			queued_at
		FROM outbox
		WHERE owner_id = $1
		ORDER BY queued_at ASC;`

	clearOutboxEntries = `
		DELETE FROM outbox
		WHERE owner_id = $1;`

	insertCachedNote = `
		INSERT INTO note_cache (
			note_id,
			owner_id,
			title,
			content,
			subject,
			subject_color,
			custom_color,
			summary,
			folder,
			tags,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`

	getAllCachedNotes = `
		SELECT
			note_id,
			owner_id,
			title,
			content,
			subject,
			subject_color,
			custom_color,
			summary,
			folder,
			tags,
			created_at
		FROM note_cache
		WHERE owner_id = $1
		ORDER BY created_at DESC;`

	clearCachedNotes = `
		DELETE FROM note_cache
		WHERE owner_id = $1;`
)
