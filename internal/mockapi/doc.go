// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mockapi is an in-memory development backend speaking the NutriRAG
// HTTP contract.
//
// It serves /api/health, /api/query and /api/chats with canned answers and
// sources drawn from the FAO, OPS and SESAL demo guides, so the client can be
// exercised without the retrieval service.
//
// # Usage
//
//	srv := mockapi.New(mockapi.Options{Logger: logger})
//	http.ListenAndServe(":8000", srv.Handler())
package mockapi
