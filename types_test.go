/*
@Description: Tests for shard identifiers, shard maps and legacy/modern conversions
@Language: Go 1.23.4
*/

package sizeceph

import "testing"

func TestShardSetEqual(t *testing.T) {
	a := NewShardSet(0, 1, 2)
	b := NewShardSet(2, 1, 0)
	if !a.Equal(b) {
		t.Fatal("sets with the same members in different insertion order must be equal")
	}

	c := NewShardSet(0, 1)
	if a.Equal(c) {
		t.Fatal("sets of different size must not be equal")
	}
}

func TestShardSetSorted(t *testing.T) {
	s := NewShardSet(4, 1, 3, 0, 2)
	got := s.Sorted()
	want := []ShardID{0, 1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sorted() = %v, want %v", got, want)
		}
	}
}

func TestRangeBuildsContiguousSet(t *testing.T) {
	s := Range(5)
	for i := 0; i < 5; i++ {
		if !s.Contains(ShardID(i)) {
			t.Fatalf("Range(5) missing id %d", i)
		}
	}
	if s.Contains(5) {
		t.Fatal("Range(5) must not contain id 5")
	}
}

func TestLegacyModernMapRoundTrip(t *testing.T) {
	legacy := map[int][]byte{0: {1, 2}, 3: {3, 4}}
	modern := legacyToModernMap(legacy)
	back := modernToLegacyMap(modern)

	if len(back) != len(legacy) {
		t.Fatalf("round trip changed size: %v -> %v -> %v", legacy, modern, back)
	}
	for id, buf := range legacy {
		if string(back[id]) != string(buf) {
			t.Fatalf("round trip lost key %d", id)
		}
	}
}

func TestLegacyToModernIDsPreservesOrder(t *testing.T) {
	legacy := []int{3, 1, 2}
	got := legacyToModernIDs(legacy)
	want := []ShardID{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("legacyToModernIDs(%v) = %v, want %v", legacy, got, want)
		}
	}
}
