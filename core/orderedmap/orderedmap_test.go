package orderedmap

import (
	"testing"
)

func TestOrderedMap(t *testing.T) {
	om := New[string, int]()

	om.Set("third", 3)
	om.Set("first", 1)
	om.Set("second", 2)

	if v, ok := om.Get("first"); !ok || v != 1 {
		t.Errorf("Expected Get('first') to return 1, got %d (ok=%v)", v, ok)
	}
	if _, ok := om.Get("missing"); ok {
		t.Errorf("Expected Get('missing') to report absence")
	}

	expected := []string{"third", "first", "second"}
	keys := om.Keys()
	if len(keys) != len(expected) {
		t.Fatalf("Expected %d keys, got %d", len(expected), len(keys))
	}
	for i, k := range keys {
		if k != expected[i] {
			t.Errorf("Expected key[%d] = %s, got %s", i, expected[i], k)
		}
	}

	// updating an existing key keeps its position
	om.Set("third", 30)
	if om.Keys()[0] != "third" {
		t.Errorf("Updating a value should not change key order")
	}
	if om.Len() != 3 {
		t.Errorf("Expected Len() = 3, got %d", om.Len())
	}

	values := om.Values()
	expectedValues := []int{30, 1, 2}
	for i, v := range values {
		if v != expectedValues[i] {
			t.Errorf("Expected value[%d] = %d, got %d", i, expectedValues[i], v)
		}
	}
}

func TestOrderedMapKeysIsCopy(t *testing.T) {
	om := New[string, int]()
	om.Set("a", 1)
	keys := om.Keys()
	keys[0] = "mutated"
	if om.Keys()[0] != "a" {
		t.Errorf("Keys() must return a copy")
	}
}

func TestOrderedMapRange(t *testing.T) {
	om := New[int, string]()
	for i, s := range []string{"x", "y", "z"} {
		om.Set(i, s)
	}

	var seen []string
	om.Range(func(k int, v string) bool {
		seen = append(seen, v)
		return true
	})
	if len(seen) != 3 || seen[0] != "x" || seen[1] != "y" || seen[2] != "z" {
		t.Errorf("Range iteration order incorrect: %v", seen)
	}

	count := 0
	om.Range(func(k int, v string) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("Expected Range to stop after 2 iterations, got %d", count)
	}
}
