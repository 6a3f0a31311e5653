// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for nutrirag.
//
// Storage is a small key-value layer with interchangeable backends. On top of
// it sits ProfileStore, which keeps the user's clinical profile under a single
// fixed key.
//
// # Key Types
//
//   - KV: Minimal key-value interface (Get, Set, Delete, Has)
//   - FileKV: One file per key, written atomically (default backend)
//   - SQLiteKV: Single-table SQLite database (modernc.org/sqlite, no cgo)
//   - MemoryKV: In-process map for tests and ephemeral runs
//   - ProfileStore: Best-effort clinical profile persistence
//
// # Usage
//
//	kv, err := storage.Open(storage.BackendFile, dir)
//	if err != nil {
//	    return err
//	}
//	defer kv.Close()
//
//	profiles := storage.NewProfileStore(kv, logger)
//	if data, ok := profiles.Load(); ok {
//	    fmt.Println(*data.Age)
//	}
//
// # Failure Policy
//
// ProfileStore never returns storage errors. Failed writes and unreadable
// records are logged and treated as "no profile". Concurrent processes are not
// coordinated; the last writer wins.
package storage
