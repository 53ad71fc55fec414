package engine

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/corpusdb/contentstore/pkg/options"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func openEngine(t *testing.T, dir string, create bool, overrides ...options.OptionFunc) *Engine {
	t.Helper()

	opts := options.NewDefaultOptions()
	for _, o := range overrides {
		o(&opts)
	}

	e, err := New(context.Background(), &Config{Dir: dir, Create: create, Options: &opts, Logger: testLogger()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

// TestSingleASCII mirrors spec scenario 1: store("hello") with B=4.
func TestSingleASCII(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir, true, options.WithBlockSizeCharacters(4))

	id, err := e.Store("hello")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}

	entry, ok := e.toc.Get(1)
	if !ok {
		t.Fatal("entry 1 not found")
	}
	if entry.EntryLengthBytes != 5 {
		t.Fatalf("EntryLengthBytes = %d, want 5", entry.EntryLengthBytes)
	}
	want := []uint32{0, 4}
	if len(entry.BlockOffsetBytes) != len(want) || entry.BlockOffsetBytes[0] != want[0] || entry.BlockOffsetBytes[1] != want[1] {
		t.Fatalf("BlockOffsetBytes = %v, want %v", entry.BlockOffsetBytes, want)
	}

	got, ok, err := e.Retrieve(1)
	if err != nil || !ok || got != "hello" {
		t.Fatalf("Retrieve(1) = %q, %v, %v; want hello, true, nil", got, ok, err)
	}

	parts, ok, err := e.RetrieveParts(1, []int{1, 3}, []int{4, 5})
	if err != nil || !ok {
		t.Fatalf("RetrieveParts failed: ok=%v err=%v", ok, err)
	}
	if parts[0] != "ell" || parts[1] != "lo" {
		t.Fatalf("RetrieveParts = %v, want [ell lo]", parts)
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

// TestMultiByte mirrors spec scenario 2.
func TestMultiByte(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir, true, options.WithBlockSizeCharacters(4))
	defer e.Close()

	id, err := e.Store("héllo")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	entry, _ := e.toc.Get(id)
	if entry.EntryLengthCharacters != 5 {
		t.Fatalf("EntryLengthCharacters = %d, want 5", entry.EntryLengthCharacters)
	}
	if entry.EntryLengthBytes != 6 {
		t.Fatalf("EntryLengthBytes = %d, want 6", entry.EntryLengthBytes)
	}
	if len(entry.BlockOffsetBytes) != 2 || entry.BlockOffsetBytes[1] != 5 {
		t.Fatalf("BlockOffsetBytes = %v, want [0 5]", entry.BlockOffsetBytes)
	}

	parts, ok, err := e.RetrieveParts(id, []int{0}, []int{5})
	if err != nil || !ok || parts[0] != "héllo" {
		t.Fatalf("RetrieveParts = %v, %v, %v; want [héllo] true nil", parts, ok, err)
	}
}

// TestChunkedEquivalence mirrors spec scenario 3 and invariant 8.
func TestChunkedEquivalence(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir, true, options.WithBlockSizeCharacters(3))
	defer e.Close()

	if err := e.StorePart("ab"); err != nil {
		t.Fatalf("StorePart failed: %v", err)
	}
	if err := e.StorePart("cdef"); err != nil {
		t.Fatalf("StorePart failed: %v", err)
	}
	id, err := e.Store("")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	entry, _ := e.toc.Get(id)
	if entry.EntryLengthCharacters != 6 || entry.EntryLengthBytes != 6 {
		t.Fatalf("entry = %+v, want 6 chars / 6 bytes", entry)
	}
	want := []uint32{0, 3}
	if len(entry.BlockOffsetBytes) != 2 || entry.BlockOffsetBytes[0] != want[0] || entry.BlockOffsetBytes[1] != want[1] {
		t.Fatalf("BlockOffsetBytes = %v, want %v", entry.BlockOffsetBytes, want)
	}

	got, _, err := e.Retrieve(id)
	if err != nil || got != "abcdef" {
		t.Fatalf("Retrieve = %q, %v; want abcdef", got, err)
	}
}

// TestRollover mirrors spec scenario 4.
func TestRollover(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir, true, options.WithDataFileSizeHint(10))
	defer e.Close()

	id1, err := e.Store("abcdefghijk") // 11 bytes, still fits file 1 (rollover only before the next entry)
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	entry1, _ := e.toc.Get(id1)
	if entry1.FileID != 1 {
		t.Fatalf("entry1 FileID = %d, want 1", entry1.FileID)
	}

	id2, err := e.Store("z")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	entry2, _ := e.toc.Get(id2)
	if entry2.FileID != 2 {
		t.Fatalf("entry2 FileID = %d, want 2", entry2.FileID)
	}
	if entry2.EntryOffsetBytes != 0 {
		t.Fatalf("entry2 EntryOffsetBytes = %d, want 0", entry2.EntryOffsetBytes)
	}
}

// TestReopen mirrors spec scenario 5 and invariant 6.
func TestReopen(t *testing.T) {
	dir := t.TempDir()

	e := openEngine(t, dir, true, options.WithBlockSizeCharacters(4))
	if _, err := e.Store("hello"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := openEngine(t, dir, false)
	defer reopened.Close()

	if reopened.nextID != 2 {
		t.Fatalf("nextID after reopen = %d, want 2", reopened.nextID)
	}

	got, ok, err := reopened.Retrieve(1)
	if err != nil || !ok || got != "hello" {
		t.Fatalf("Retrieve(1) after reopen = %q, %v, %v; want hello, true, nil", got, ok, err)
	}
}

// TestDeleteThenRetrieve mirrors spec scenario 6.
func TestDeleteThenRetrieve(t *testing.T) {
	dir := t.TempDir()

	e := openEngine(t, dir, true, options.WithBlockSizeCharacters(4))
	if _, err := e.Store("hello"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := e.Delete(1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err := e.Retrieve(1)
	if err != nil || ok {
		t.Fatalf("Retrieve(1) after delete = ok=%v err=%v, want ok=false", ok, err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := openEngine(t, dir, false)
	defer reopened.Close()

	_, ok, err = reopened.Retrieve(1)
	if err != nil || ok {
		t.Fatalf("tombstone did not survive reopen: ok=%v err=%v", ok, err)
	}
}

// TestArbitrarySlicing checks invariant 2 across a range of offsets.
func TestArbitrarySlicing(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir, true, options.WithBlockSizeCharacters(4))
	defer e.Close()

	s := "the quick brown fox jumps over the lazy dog"
	id, err := e.Store(s)
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	runes := []rune(s)
	for a := 0; a < len(runes); a++ {
		for b := a + 1; b <= len(runes); b++ {
			parts, ok, err := e.RetrieveParts(id, []int{a}, []int{b})
			if err != nil || !ok {
				t.Fatalf("RetrieveParts(%d,%d) failed: ok=%v err=%v", a, b, ok, err)
			}
			want := string(runes[a:b])
			if parts[0] != want {
				t.Fatalf("RetrieveParts(%d,%d) = %q, want %q", a, b, parts[0], want)
			}
		}
	}
}

// TestEmptyEntry checks the open-question decision: store("") is
// representable and retrieve(id) returns "" without error.
func TestEmptyEntry(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir, true)
	defer e.Close()

	id, err := e.Store("")
	if err != nil {
		t.Fatalf("Store(\"\") failed: %v", err)
	}

	entry, ok := e.toc.Get(id)
	if !ok || entry.EntryLengthCharacters != 0 || entry.NumBlocks() != 0 {
		t.Fatalf("empty entry = %+v, ok=%v", entry, ok)
	}

	got, ok, err := e.Retrieve(id)
	if err != nil || !ok || got != "" {
		t.Fatalf("Retrieve of empty entry = %q, %v, %v; want \"\", true, nil", got, ok, err)
	}
}

// TestRetrieveAbsentEntry checks that a never-stored id signals
// absence rather than an error.
func TestRetrieveAbsentEntry(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir, true)
	defer e.Close()

	_, ok, err := e.Retrieve(999)
	if err != nil || ok {
		t.Fatalf("Retrieve(999) = ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}

// TestRetrievePartsErrorSignals checks the failure modes of spec.md §7.
func TestRetrievePartsErrorSignals(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir, true, options.WithBlockSizeCharacters(4))
	defer e.Close()

	id, err := e.Store("hello")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if _, _, err := e.RetrieveParts(id, []int{0, 1}, []int{1}); err == nil {
		t.Fatal("expected a shape mismatch error")
	}
	if _, _, err := e.RetrieveParts(id, []int{-2}, []int{3}); err == nil {
		t.Fatal("expected an illegal range error for a negative start")
	}
	if _, _, err := e.RetrieveParts(id, []int{0}, []int{100}); err == nil {
		t.Fatal("expected a range-out-of-bounds error")
	}
	if _, _, err := e.RetrieveParts(id, []int{3}, []int{3}); err == nil {
		t.Fatal("expected an empty-snippet error")
	}
	if _, _, err := e.RetrieveParts(id, []int{3}, []int{1}); err == nil {
		t.Fatal("expected an empty-snippet error for end < start")
	}
}

// TestClearResetsStore checks that Clear removes entries and data
// files and resets counters to their fresh-store values.
func TestClearResetsStore(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir, true)

	if _, err := e.Store("hello"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := e.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if e.nextID != 1 {
		t.Fatalf("nextID after Clear = %d, want 1", e.nextID)
	}
	if e.toc.Len() != 0 {
		t.Fatalf("toc.Len() after Clear = %d, want 0", e.toc.Len())
	}

	id, err := e.Store("world")
	if err != nil {
		t.Fatalf("Store after Clear failed: %v", err)
	}
	if id != 1 {
		t.Fatalf("id after Clear = %d, want 1", id)
	}

	got, ok, err := e.Retrieve(id)
	if err != nil || !ok || got != "world" {
		t.Fatalf("Retrieve after Clear = %q, %v, %v", got, ok, err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

// TestExactMultipleOfBlockSize checks the boundary behavior: a document
// whose length is an exact multiple of B produces n/B full blocks, the
// last of which is never an empty tail block.
func TestExactMultipleOfBlockSize(t *testing.T) {
	dir := t.TempDir()
	e := openEngine(t, dir, true, options.WithBlockSizeCharacters(4))
	defer e.Close()

	id, err := e.Store(strings.Repeat("x", 8))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	entry, _ := e.toc.Get(id)
	if entry.NumBlocks() != 2 {
		t.Fatalf("NumBlocks() = %d, want 2 for an 8-character entry with B=4", entry.NumBlocks())
	}
	if entry.BlockOffsetBytes[1] != 4 {
		t.Fatalf("second block offset = %d, want 4 (first block must be full)", entry.BlockOffsetBytes[1])
	}
}
