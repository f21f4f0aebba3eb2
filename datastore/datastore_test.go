package datastore

import (
	"path/filepath"
	"testing"
	"time"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestPutGetRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.json")
	ds, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ds.Close()

	if err := ds.Put("a", sample{Name: "x", Count: 2}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got sample
	ok, err := ds.Get("a", &got)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Name != "x" || got.Count != 2 {
		t.Errorf("Get = %+v", got)
	}

	ok, err = ds.Get("missing", &got)
	if err != nil || ok {
		t.Errorf("Get(missing) = %v, %v; want false, nil", ok, err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.json")

	ds, err := NewWithConfig(&Config{FilePath: path, AutoSaveInterval: time.Hour})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ds.Put("k", sample{Name: "persisted"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := ds.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	var got sample
	ok, err := reopened.Get("k", &got)
	if err != nil || !ok || got.Name != "persisted" {
		t.Errorf("after reopen: ok=%v err=%v got=%+v", ok, err, got)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.json")
	ds, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ds.Close()

	if err := ds.Put("k", 1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	ds.Delete("k")

	var got int
	if ok, _ := ds.Get("k", &got); ok {
		t.Error("key still present after Delete")
	}
	if len(ds.Keys()) != 0 {
		t.Errorf("Keys = %v, want empty", ds.Keys())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	ds, err := New(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ds.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := ds.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
