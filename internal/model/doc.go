// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages, citations
// and the locally stored clinical profile.
//
// This package defines the domain types shared by the backend client, the
// session controller and the presentation layer. It has no dependencies on
// any of them.
//
// # Key Types
//
//   - Message: Single chat message with role, content, timestamp and citations
//   - Citation: Display-ready reference derived from a backend Source
//   - Source: Reference record returned by the answering backend
//   - Chat: Persisted conversation thread metadata
//   - ClinicalData: Optional personal health attributes used to personalise answers
//   - Role: Message role enumeration (user, assistant)
//
// # Usage
//
// Derive citations for an answer:
//
//	citations := model.CitationsFromSources(resp.Sources)
//	msg := model.NewAssistantMessage(id, resp.Answer, citations, time.Now())
//
// Validate a clinical profile entered by the user:
//
//	if err := data.Validate(); err != nil {
//	    var verrs model.ValidationErrors
//	    errors.As(err, &verrs)
//	    fmt.Println(verrs.For("age"))
//	}
package model
