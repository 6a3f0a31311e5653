// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router decides how a nutrition query is sent to the answering backend.
//
// A query is either general or clinical. Clinical queries carry the locally
// stored clinical profile so the backend can personalise its answer; general
// queries never do.
//
// # Key Types
//
//   - Mode: Query mode enumeration (general, clinical)
//   - Decision: Mode plus the clinical payload to attach, if any
//
// # Usage
//
//	decision := router.Decide(text, profile)
//	req := backend.QueryRequest{
//	    Query:        text,
//	    Mode:         decision.Mode.String(),
//	    ClinicalData: decision.ClinicalData,
//	}
//
// Classification is a case-insensitive substring match against a fixed
// Spanish keyword list. It is pure and safe for concurrent use.
package router
