// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the NutriRAG answering API.
//
// The backend owns chat persistence and answer generation. This package only
// speaks its JSON contract:
//
//	POST   /api/query          answer a question
//	GET    /api/health         liveness
//	POST   /api/chats          create a chat
//	GET    /api/chats?limit=N  list chats, most recently updated first
//	GET    /api/chats/{id}     messages of one chat
//	DELETE /api/chats/{id}     delete a chat
//
// # Key Types
//
//   - Client: Thread-safe API client (one round trip per call, no retries)
//   - ClientConfig: Base URL and HTTP settings
//   - ClientError: Typed error for failed requests and unreachable servers
//   - QueryRequest / QueryResponse: Wire shapes of the query endpoint
//
// # Errors
//
// A non-2xx response yields a *ClientError of type ErrTypeRequestFailed whose
// Status field carries the HTTP status text. Malformed response bodies are
// returned exactly as encoding/json reports them; use IsDecodeFailure to
// detect them.
//
//	resp, err := client.Query(ctx, req)
//	if backend.IsRequestFailed(err) {
//	    // server answered with an error status
//	}
package backend
