package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/adofai-tools/tilebeat/pkg/pipeline"
	"github.com/adofai-tools/tilebeat/pkg/timing"
)

func testEntry(id string, created time.Time) *Entry {
	return &Entry{
		ID:        id,
		Name:      "Level " + id,
		Info:      timing.Info{Song: "Song " + id, BPM: 120, TotalTiles: 3},
		Times:     []float64{500, 750, 1000},
		CreatedAt: created,
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	want := testEntry("a", time.Now().UTC())
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStorePutReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := testEntry("a", time.Now().UTC())
	if err := s.Put(ctx, first); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	second := testEntry("a", time.Now().UTC())
	second.Name = "Renamed"
	if err := s.Put(ctx, second); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("Name = %q, want %q", got.Name, "Renamed")
	}
}

func TestMemoryStoreList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		e := testEntry(fmt.Sprintf("e%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := s.Put(ctx, e); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	entries, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	// Newest first
	for i, want := range []string{"e2", "e1", "e0"} {
		if entries[i].ID != want {
			t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, want)
		}
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len(limited) = %d, want 2", len(limited))
	}
	if limited[0].ID != "e2" {
		t.Errorf("limited[0].ID = %q, want %q", limited[0].ID, "e2")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, testEntry("a", time.Now().UTC())); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	e := testEntry("a", time.Now().UTC())
	if err := s.Put(ctx, e); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	// Mutating the caller's entry and a returned entry must not affect
	// what is stored.
	e.Times[0] = -1
	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Times[0] != 500 {
		t.Errorf("stored Times[0] = %v, want 500", got.Times[0])
	}

	got.Times[0] = -2
	again, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if again.Times[0] != 500 {
		t.Errorf("stored Times[0] = %v after mutation, want 500", again.Times[0])
	}
}

func TestNewEntry(t *testing.T) {
	result := &pipeline.Result{
		Times:       []float64{500, 1000},
		AutoOffset:  250,
		ContentHash: "hash",
		Info:        timing.Info{Song: "World's End"},
	}

	e := NewEntry("id-1", "", result)
	if e.Name != "World's End" {
		t.Errorf("Name = %q, want song title fallback", e.Name)
	}
	if e.ID != "id-1" || e.ContentHash != "hash" || e.AutoOffset != 250 {
		t.Errorf("entry fields not copied: %+v", e)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	named := NewEntry("id-2", "Custom", result)
	if named.Name != "Custom" {
		t.Errorf("Name = %q, want %q", named.Name, "Custom")
	}
}
