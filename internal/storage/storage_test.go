// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/nutrirag-tui/internal/model"
)

// =============================================================================
// KV BACKEND TESTS
// =============================================================================

func backends(t *testing.T) map[string]KV {
	t.Helper()

	fileKV, err := NewFileKV(filepath.Join(t.TempDir(), "storage"))
	require.NoError(t, err)

	sqliteKV, err := NewSQLiteKV(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]KV{
		"file":   fileKV,
		"sqlite": sqliteKV,
		"memory": NewMemoryKV(),
	}
}

func TestKV_Contract(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get("missing")
			assert.ErrorIs(t, err, ErrNotFound)

			ok, err := kv.Has("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("k", []byte("v1")))
			require.NoError(t, kv.Set("k", []byte("v2")))

			got, err := kv.Get("k")
			require.NoError(t, err)
			assert.Equal(t, "v2", string(got))

			ok, err = kv.Has("k")
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, kv.Delete("k"))
			require.NoError(t, kv.Delete("k"), "delete must be idempotent")

			_, err = kv.Get("k")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestKV_RejectsUnsafeKeys(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../escape", "a/b", ".."} {
				assert.ErrorIs(t, kv.Set(key, []byte("x")), ErrInvalidKey, "key %q", key)
			}
		})
	}
}

func TestFileKV_Permissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "storage")
	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ProfileKey, []byte("{}")))

	info, err := os.Stat(filepath.Join(dir, ProfileKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	kv, err := Open(BackendFile, dir)
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)

	kv, err = Open("", dir)
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)

	kv, err = Open(BackendSQLite, dir)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteKV{}, kv)
	require.NoError(t, kv.Close())
	assert.FileExists(t, filepath.Join(dir, SQLiteFileName))

	kv, err = Open(BackendMemory, dir)
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	_, err = Open("redis", dir)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

// =============================================================================
// PROFILE STORE TESTS
// =============================================================================

func sampleProfile() model.ClinicalData {
	age := 34
	weight := 72.5
	height := 168.0
	return model.ClinicalData{
		Age:           &age,
		Gender:        model.GenderFemale,
		Weight:        &weight,
		Height:        &height,
		Conditions:    []string{"diabetes", "hipertensión"},
		Allergies:     []string{"nueces"},
		Medications:   []string{"metformina"},
		DietType:      model.DietVegetarian,
		ActivityLevel: model.ActivityModerate,
	}
}

func TestProfileStore_RoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewProfileStore(kv, nil)

			_, ok := store.Load()
			assert.False(t, ok)
			assert.False(t, store.Exists())

			want := sampleProfile()
			store.Save(want)
			assert.True(t, store.Exists())

			got, ok := store.Load()
			require.True(t, ok)
			assert.Equal(t, want, *got)

			store.Clear()
			_, ok = store.Load()
			assert.False(t, ok)
			assert.False(t, store.Exists())

			store.Clear()
		})
	}
}

func TestProfileStore_EmptyListsLoadAsAbsent(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewProfileStore(kv, nil)
			saved := model.ClinicalData{DietType: model.DietVegan, Conditions: []string{}, Allergies: []string{}}
			store.Save(saved)

			got, ok := store.Load()
			require.True(t, ok)
			assert.Nil(t, got.Conditions)
			assert.Nil(t, got.Allergies)
			assert.Equal(t, saved.Clone(), *got)
			assert.Equal(t, model.ClinicalData{DietType: model.DietVegan}, *got)
		})
	}
}

func TestProfileStore_SaveOverwrites(t *testing.T) {
	store := NewProfileStore(NewMemoryKV(), nil)
	store.Save(sampleProfile())
	store.Save(model.ClinicalData{DietType: model.DietKeto})

	got, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, model.ClinicalData{DietType: model.DietKeto}, *got)
}

func TestProfileStore_CorruptRecord(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ProfileKey, []byte("{not json")))

	store := NewProfileStore(kv, logger)
	data, ok := store.Load()
	assert.False(t, ok)
	assert.Nil(t, data)
	assert.True(t, store.Exists(), "exists does not decode")
	assert.Contains(t, logs.String(), "unreadable")
}

func TestProfileStore_NullRecord(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ProfileKey, []byte("null")))

	_, ok := NewProfileStore(kv, nil).Load()
	assert.False(t, ok)
}

// failingKV fails every operation.
type failingKV struct{}

var errDisk = errors.New("disk full")

func (failingKV) Get(string) ([]byte, error) { return nil, errDisk }
func (failingKV) Set(string, []byte) error { return errDisk }
func (failingKV) Delete(string) error { return errDisk }
func (failingKV) Has(string) (bool, error) { return false, errDisk }
func (failingKV) Close() error { return nil }

func TestProfileStore_FailuresAreLoggedNotPropagated(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	store := NewProfileStore(failingKV{}, logger)

	store.Save(sampleProfile())
	store.Clear()
	_, ok := store.Load()
	assert.False(t, ok)
	assert.False(t, store.Exists())

	out := logs.String()
	assert.Contains(t, out, "failed to save clinical data")
	assert.Contains(t, out, "failed to clear clinical data")
	assert.Contains(t, out, "failed to load clinical data")
	assert.Contains(t, out, "component=profile_store")
	assert.Contains(t, out, "disk full")
}
