// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// ProfileKey is the fixed key holding the clinical profile record.
const ProfileKey = "nutrirag_clinical_data"

// ProfileStore persists the clinical profile on a best-effort basis.
// None of its methods return errors; failures are logged.
type ProfileStore struct {
	kv     KV
	logger *slog.Logger
}

// NewProfileStore wraps kv. A nil logger uses slog.Default().
func NewProfileStore(kv KV, logger *slog.Logger) *ProfileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileStore{
		kv:     kv,
		logger: logger.With("component", "profile_store"),
	}
}

// Save overwrites the stored profile with data. Empty lists are stored as
// absent, so Load returns data.Clone().
func (s *ProfileStore) Save(data model.ClinicalData) {
	encoded, err := json.Marshal(data.Clone())
	if err != nil {
		s.logger.Error("failed to encode clinical data", "error", err)
		return
	}
	if err := s.kv.Set(ProfileKey, encoded); err != nil {
		s.logger.Error("failed to save clinical data", "error", err)
		return
	}
	s.logger.Debug("clinical data saved", "bytes", len(encoded))
}

// Load returns the stored profile. It reports false when nothing is stored or
// the record cannot be decoded.
func (s *ProfileStore) Load() (*model.ClinicalData, bool) {
	raw, err := s.kv.Get(ProfileKey)
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		s.logger.Error("failed to load clinical data", "error", err)
		return nil, false
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}

	var data model.ClinicalData
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Warn("stored clinical data is unreadable, ignoring it", "error", err)
		return nil, false
	}
	return &data, true
}

// Clear removes the stored profile. Clearing an absent profile is a no-op.
func (s *ProfileStore) Clear() {
	if err := s.kv.Delete(ProfileKey); err != nil {
		s.logger.Error("failed to clear clinical data", "error", err)
	}
}

// Exists reports whether a profile record is stored, without decoding it.
func (s *ProfileStore) Exists() bool {
	ok, err := s.kv.Has(ProfileKey)
	if err != nil {
		s.logger.Error("failed to check clinical data", "error", err)
		return false
	}
	return ok
}
