// Package storetest provides a conformance suite every store.Store adapter
// must pass.
package storetest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/store"
)

// Factory returns a fresh, empty store for each subtest.
type Factory func(t *testing.T) store.Store

// Run executes the conformance suite against stores produced by factory.
func Run(t *testing.T, factory Factory) {
	t.Helper()

	cases := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"SaveAndLoad", testSaveAndLoad},
		{"LoadMissing", testLoadMissing},
		{"Overwrite", testOverwrite},
		{"Clear", testClear},
		{"ClearMissing", testClearMissing},
		{"KeyIsolation", testKeyIsolation},
		{"BlobsAreCopied", testBlobsAreCopied},
		{"EmptyKey", testEmptyKey},
		{"CancelledContext", testCancelledContext},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := factory(t)
			t.Cleanup(func() { _ = s.Close() })
			tc.fn(t, s)
		})
	}
}

func testSaveAndLoad(t *testing.T, s store.Store) {
	ctx := context.Background()
	blob := []byte(`{"name":"Ada"}`)

	if err := s.Save(ctx, "session-1", blob); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Fatalf("load mismatch: got %q want %q", got, blob)
	}
}

func testLoadMissing(t *testing.T, s store.Store) {
	_, err := s.Load(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testOverwrite(t *testing.T, s store.Store) {
	ctx := context.Background()
	mustSave(t, s, "k", []byte("first"))
	mustSave(t, s, "k", []byte("second"))

	got, err := s.Load(ctx, "k")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("expected overwrite, got %q", got)
	}
}

func testClear(t *testing.T, s store.Store) {
	ctx := context.Background()
	mustSave(t, s, "k", []byte("value"))

	if err := s.Clear(ctx, "k"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := s.Load(ctx, "k"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}

func testClearMissing(t *testing.T, s store.Store) {
	if err := s.Clear(context.Background(), "never-saved"); err != nil {
		t.Fatalf("clearing a missing key should succeed: %v", err)
	}
}

func testKeyIsolation(t *testing.T, s store.Store) {
	ctx := context.Background()
	mustSave(t, s, "a", []byte("alpha"))
	mustSave(t, s, "b", []byte("beta"))

	if err := s.Clear(ctx, "a"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := s.Load(ctx, "b")
	if err != nil {
		t.Fatalf("load b: %v", err)
	}
	if string(got) != "beta" {
		t.Fatalf("key b affected by clearing a: %q", got)
	}
}

func testBlobsAreCopied(t *testing.T, s store.Store) {
	ctx := context.Background()
	blob := []byte("original")
	mustSave(t, s, "k", blob)
	blob[0] = 'X'

	got, err := s.Load(ctx, "k")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("store kept a reference to the caller's slice: %q", got)
	}
	got[0] = 'Y'

	again, err := s.Load(ctx, "k")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if string(again) != "original" {
		t.Fatalf("store returned a shared slice: %q", again)
	}
}

func testEmptyKey(t *testing.T, s store.Store) {
	ctx := context.Background()
	if err := s.Save(ctx, "", []byte("x")); err == nil {
		t.Fatalf("expected error saving empty key")
	}
	if _, err := s.Load(ctx, ""); err == nil || errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected key validation error loading empty key, got %v", err)
	}
}

func testCancelledContext(t *testing.T, s store.Store) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Save(ctx, "k", []byte("x")); err == nil {
		t.Fatalf("expected error saving with cancelled context")
	}
	if _, err := s.Load(ctx, "k"); err == nil {
		t.Fatalf("expected error loading with cancelled context")
	}
}

func mustSave(t *testing.T, s store.Store, key string, blob []byte) {
	t.Helper()
	if err := s.Save(context.Background(), key, blob); err != nil {
		t.Fatalf("save %s: %v", key, err)
	}
}
