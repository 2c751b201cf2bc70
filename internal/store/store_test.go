package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/replay"
)

func openSQLite(t *testing.T) *SQLite {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "tuiracer.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return st
}

func TestBlobStores(t *testing.T) {
	ctx := context.Background()
	stores := map[string]replay.BlobStore{
		"memory": NewMemory(),
		"file":   NewFile(filepath.Join(t.TempDir(), "replays")),
		"sqlite": openSQLite(t),
	}
	for name, st := range stores {
		if _, ok, err := st.Get(ctx, replay.StoreKey); err != nil || ok {
			t.Fatalf("%s: expected clean miss, got ok=%v err=%v", name, ok, err)
		}
		if err := st.Set(ctx, replay.StoreKey, []byte("one")); err != nil {
			t.Fatalf("%s: set: %v", name, err)
		}
		if err := st.Set(ctx, replay.StoreKey, []byte("two")); err != nil {
			t.Fatalf("%s: overwrite: %v", name, err)
		}
		data, ok, err := st.Get(ctx, replay.StoreKey)
		if err != nil || !ok || string(data) != "two" {
			t.Fatalf("%s: expected overwritten blob, got %q ok=%v err=%v", name, data, ok, err)
		}
	}
}

func TestReplayRoundTripThroughSQLite(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)
	events := []replay.Event{
		{TimestampMs: 10, PassageIndex: 0, Character: 'a'},
		{TimestampMs: 20, PassageIndex: 0, Edit: replay.EditDelete},
		{TimestampMs: 30, PassageIndex: 0, Character: replay.Sentinel},
	}
	if err := replay.Save(ctx, st, events); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := replay.Load(ctx, st, zerolog.Nop()); !reflect.DeepEqual(got, events) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	st := NewFile(t.TempDir())
	if err := st.Set(context.Background(), "../escape", []byte("x")); err == nil {
		t.Fatalf("expected error for key with separator")
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st := NewFile(dir)
	if err := st.Set(context.Background(), "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "k.blob" {
		t.Fatalf("unexpected dir contents %v", entries)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	data := []byte("abc")
	if err := st.Set(ctx, "k", data); err != nil {
		t.Fatalf("set: %v", err)
	}
	data[0] = 'z'
	got, _, _ := st.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("store must keep its own copy, got %q", got)
	}
}

func TestInsertAndListRaces(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := model.RaceRecord{
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			EndedAt:    base.Add(time.Duration(i)*time.Hour + time.Minute),
			Seed:       "default-seed",
			Passages:   2,
			Chars:      100 + i,
			Errors:     i,
			DurationMs: 60_000,
			WPM:        20 + float64(i),
			Accuracy:   99,
		}
		if _, err := st.InsertRace(ctx, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	all, err := st.ListRaces(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Chars != 100 || !all[2].EndedAt.Equal(base.Add(2*time.Hour+time.Minute)) {
		t.Fatalf("unexpected races %+v", all)
	}
	since := base.Add(90 * time.Minute)
	filtered, err := st.ListRaces(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Errors != 2 {
		t.Fatalf("unexpected filtered races %+v", filtered)
	}
	last, err := st.ListRaces(ctx, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 2 || last[0].Chars != 101 {
		t.Fatalf("unexpected last races %+v", last)
	}
}
