package contentstore

import (
	"context"
	"testing"

	"github.com/corpusdb/contentstore/pkg/options"
)

func TestOpenStoreRetrieveClose(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(context.Background(), dir, true, "test", options.WithBlockSizeCharacters(4))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	id, err := s.Store("hello")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, ok, err := s.Retrieve(id)
	if err != nil || !ok || got != "hello" {
		t.Fatalf("Retrieve = %q, %v, %v; want hello, true, nil", got, ok, err)
	}

	parts, ok, err := s.RetrieveParts(id, []int{1, 3}, []int{4, 5})
	if err != nil || !ok || parts[0] != "ell" || parts[1] != "lo" {
		t.Fatalf("RetrieveParts = %v, %v, %v", parts, ok, err)
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := s.Retrieve(id); ok {
		t.Fatal("expected absence after Delete")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(context.Background(), dir, false, "test")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if _, ok, _ := reopened.Retrieve(id); ok {
		t.Fatal("tombstone should survive reopen")
	}
}

func TestOpenRejectsEmptyDir(t *testing.T) {
	if _, err := Open(context.Background(), "", true, "test"); err == nil {
		t.Fatal("expected an error opening a store with an empty directory")
	}
}
