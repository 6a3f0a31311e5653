// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package profile provides the clinical data form of the TUI.
//
// The form edits a model.ClinicalForm and validates it with
// model.ClinicalForm.Parse, showing each validation message under its field.
// It reports the outcome as SubmitMsg, CancelMsg or ClearMsg; the caller
// decides what to do with the data.
package profile
