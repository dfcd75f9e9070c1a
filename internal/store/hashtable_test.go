package store

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestTable(t *testing.T, size int, opts ...Option) *HashTable[int] {
	t.Helper()

	ht, err := NewHashTable[int](size, opts...)
	if err != nil {
		t.Fatalf("NewHashTable(%d) failed: %v", size, err)
	}
	return ht
}

// collide sends every key to the same bucket.
func collide(string) uint64 { return 7 }

func TestNewHashTableInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -10} {
		ht, err := NewHashTable[int](size)
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Expected ErrInvalidSize for size %d, got %v", size, err)
		}
		if ht != nil {
			t.Errorf("Expected nil table for size %d", size)
		}
	}
}

func TestHashTablePutGet(t *testing.T) {
	ht := newTestTable(t, DefaultSize)

	if isNew := ht.Put("apple", 5); !isNew {
		t.Error("Expected isNew to be true for new key")
	}

	value, exists := ht.Get("apple")
	if !exists {
		t.Error("Expected apple to exist")
	}
	if value != 5 {
		t.Errorf("Expected 5, got %d", value)
	}

	if _, exists := ht.Get("dragonfruit"); exists {
		t.Error("Expected dragonfruit to not exist")
	}
}

func TestHashTableUpdateKeepsCount(t *testing.T) {
	ht := newTestTable(t, DefaultSize)

	ht.Put("apple", 5)
	if isNew := ht.Put("apple", 10); isNew {
		t.Error("Expected isNew to be false for updated key")
	}

	if ht.Len() != 1 {
		t.Errorf("Expected count 1 after two puts of one key, got %d", ht.Len())
	}

	if value, _ := ht.Get("apple"); value != 10 {
		t.Errorf("Expected 10, got %d", value)
	}
}

func TestHashTableDelete(t *testing.T) {
	ht := newTestTable(t, DefaultSize)

	ht.Put("banana", 3)
	ht.Put("cherry", 7)

	if !ht.Delete("banana") {
		t.Error("Expected banana to be deleted")
	}
	if _, exists := ht.Get("banana"); exists {
		t.Error("Expected banana to not exist after deletion")
	}
	if ht.Len() != 1 {
		t.Errorf("Expected count 1, got %d", ht.Len())
	}

	before := ht.BucketLens()
	if ht.Delete("banana") {
		t.Error("Expected delete of absent key to return false")
	}
	if diff := cmp.Diff(before, ht.BucketLens()); diff != "" {
		t.Errorf("Delete of absent key changed buckets (-before +after):\n%s", diff)
	}
	if ht.Len() != 1 {
		t.Errorf("Expected count 1 after failed delete, got %d", ht.Len())
	}
}

func TestHashTableLoadFactor(t *testing.T) {
	ht := newTestTable(t, 10)

	if lf := ht.LoadFactor(); lf != 0 {
		t.Errorf("Expected load factor 0, got %v", lf)
	}

	ht.Put("a", 1)
	ht.Put("b", 2)
	if lf := ht.LoadFactor(); lf != 0.2 {
		t.Errorf("Expected load factor 0.2, got %v", lf)
	}

	ht.Delete("a")
	if lf := ht.LoadFactor(); lf != 0.1 {
		t.Errorf("Expected load factor 0.1, got %v", lf)
	}
}

func TestHashTableNeverResizes(t *testing.T) {
	ht := newTestTable(t, 2)

	for i, key := range []string{"a", "b", "c", "d", "e"} {
		ht.Put(key, i)
	}

	if ht.Size() != 2 {
		t.Errorf("Expected size 2, got %d", ht.Size())
	}
	if lf := ht.LoadFactor(); lf != 2.5 {
		t.Errorf("Expected load factor 2.5, got %v", lf)
	}
}

func TestHashTableIndexFor(t *testing.T) {
	ht := newTestTable(t, 7)

	for _, key := range []string{"", "apple", "banana", "a much longer key than the others"} {
		idx := ht.IndexFor(key)
		if idx < 0 || idx >= ht.Size() {
			t.Errorf("IndexFor(%q) = %d, out of range", key, idx)
		}
		if again := ht.IndexFor(key); again != idx {
			t.Errorf("IndexFor(%q) not deterministic: %d then %d", key, idx, again)
		}
	}
}

func TestHashTableWithHasher(t *testing.T) {
	ht := newTestTable(t, 10, WithHasher(collide))

	if idx := ht.IndexFor("anything"); idx != 7 {
		t.Errorf("Expected index 7, got %d", idx)
	}

	ht = newTestTable(t, 10, WithHasher(nil))
	if idx := ht.IndexFor("anything"); idx < 0 || idx >= 10 {
		t.Errorf("Expected default hasher to be kept, got index %d", idx)
	}
}

func TestHashTableChaining(t *testing.T) {
	ht := newTestTable(t, 4, WithHasher(collide))

	ht.Put("a", 1)
	ht.Put("b", 2)
	ht.Put("c", 3)
	ht.Put("d", 4)

	if diff := cmp.Diff([]int{0, 0, 0, 4}, ht.BucketLens()); diff != "" {
		t.Errorf("BucketLens mismatch (-want +got):\n%s", diff)
	}

	ht.Put("b", 20)
	ht.Delete("a")
	ht.Delete("c")

	if diff := cmp.Diff([]string{"b", "d"}, ht.Keys()); diff != "" {
		t.Errorf("Keys mismatch after deletes (-want +got):\n%s", diff)
	}

	for key, want := range map[string]int{"b": 20, "d": 4} {
		if got, exists := ht.Get(key); !exists || got != want {
			t.Errorf("Expected %s=%d, got %d (exists=%v)", key, want, got, exists)
		}
	}
}

func TestHashTableCountMatchesBuckets(t *testing.T) {
	ht := newTestTable(t, 3)

	ops := []struct {
		put bool
		key string
	}{
		{true, "a"}, {true, "b"}, {true, "a"}, {false, "z"},
		{true, "c"}, {false, "b"}, {true, "d"}, {false, "a"}, {true, "a"},
	}

	for _, op := range ops {
		if op.put {
			ht.Put(op.key, 0)
		} else {
			ht.Delete(op.key)
		}

		sum := 0
		for _, n := range ht.BucketLens() {
			sum += n
		}
		if sum != ht.Len() {
			t.Fatalf("count %d does not match bucket total %d", ht.Len(), sum)
		}
	}

	if ht.Len() != 3 {
		t.Errorf("Expected 3 entries, got %d", ht.Len())
	}
}

func TestHashTableScenario(t *testing.T) {
	ht := newTestTable(t, 10)

	ht.Put("apple", 5)
	ht.Put("banana", 3)
	ht.Put("cherry", 7)

	for key, want := range map[string]int{"apple": 5, "banana": 3, "cherry": 7} {
		if got, _ := ht.Get(key); got != want {
			t.Errorf("Expected %s=%d, got %d", key, want, got)
		}
	}

	ht.Put("apple", 10)
	if got, _ := ht.Get("apple"); got != 10 {
		t.Errorf("Expected apple=10, got %d", got)
	}

	if _, exists := ht.Get("dragonfruit"); exists {
		t.Error("Expected dragonfruit to not exist")
	}

	if !ht.Delete("banana") {
		t.Error("Expected banana to be deleted")
	}
	if _, exists := ht.Get("banana"); exists {
		t.Error("Expected banana to not exist after deletion")
	}
}

func TestHashTableExistsAndClear(t *testing.T) {
	ht := newTestTable(t, 5)

	if ht.Exists("a") {
		t.Error("Expected a to not exist")
	}

	ht.Put("a", 1)
	ht.Put("b", 2)
	if !ht.Exists("a") {
		t.Error("Expected a to exist")
	}

	ht.Clear()
	if ht.Len() != 0 || ht.Exists("a") {
		t.Errorf("Expected empty table after Clear, got %d entries", ht.Len())
	}
	if ht.Size() != 5 {
		t.Errorf("Expected size 5 after Clear, got %d", ht.Size())
	}
}

func TestHashTableArbitraryValues(t *testing.T) {
	ht, err := NewHashTable[any](DefaultSize)
	if err != nil {
		t.Fatalf("NewHashTable failed: %v", err)
	}

	ht.Put("list", []string{"x", "y"})
	ht.Put("number", 3.5)
	ht.Put("nothing", nil)

	got, exists := ht.Get("list")
	if !exists {
		t.Fatal("Expected list to exist")
	}
	if diff := cmp.Diff([]string{"x", "y"}, got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	if v, exists := ht.Get("nothing"); !exists || v != nil {
		t.Errorf("Expected stored nil to be found, got %v (exists=%v)", v, exists)
	}
}
