// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrey Nekrutenko

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI, client services, connectivity monitoring and the
// background outbox drain into a single process lifecycle.
package client
