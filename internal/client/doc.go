// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the demo sync client runtime.
//
// It wires the SQLite note store, the HTTP remote and the sync engine
// together with the periodic sync job and the notification listeners
// (websocket stream and webhook) into a single process lifecycle.
package client
