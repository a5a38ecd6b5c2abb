package domain

import "testing"

func TestAllocatorGenerations(t *testing.T) {
	a := NewEntityAllocator()

	first := a.Alloc()
	if first == NilEntity {
		t.Fatal("allocator returned nil entity")
	}
	if !a.IsLive(first) {
		t.Fatal("fresh entity not live")
	}

	a.FreeEntity(first)
	if a.IsLive(first) {
		t.Fatal("freed entity still live")
	}

	second := a.Alloc()
	if second == first {
		t.Fatal("reused index kept old generation")
	}
	if second.Index() != first.Index() {
		t.Fatalf("free index not reused: %d vs %d", second.Index(), first.Index())
	}
	if second.Generation() != first.Generation()+1 {
		t.Fatalf("generation not bumped: %d -> %d", first.Generation(), second.Generation())
	}
	if a.IsLive(first) {
		t.Fatal("stale handle live after index reuse")
	}
	if !a.IsLive(second) {
		t.Fatal("reissued entity not live")
	}
}

func TestAllocatorDoubleFree(t *testing.T) {
	a := NewEntityAllocator()
	e := a.Alloc()
	a.FreeEntity(e)
	a.FreeEntity(e) // повторное освобождение игнорируется

	x := a.Alloc()
	y := a.Alloc()
	if x.Index() == y.Index() {
		t.Fatalf("double free handed out the same index twice: %s %s", x, y)
	}
}

func TestEntityTextRoundTrip(t *testing.T) {
	a := NewEntityAllocator()
	a.Alloc()
	e := a.Alloc()

	text, err := e.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var decoded Entity
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if decoded != e {
		t.Fatalf("round trip changed entity: %s -> %s", e, decoded)
	}
}

func TestComponentTableSortedIteration(t *testing.T) {
	table := NewComponentTable[string]()
	a := NewEntityAllocator()
	var entities []Entity
	for i := 0; i < 8; i++ {
		entities = append(entities, a.Alloc())
	}
	// Вставляем вразнобой, обход обязан быть по возрастанию.
	for i := len(entities) - 1; i >= 0; i-- {
		table.Insert(entities[i], "v")
	}

	var seen []Entity
	table.ForEach(func(e Entity, _ string) {
		seen = append(seen, e)
	})
	for i := 1; i < len(seen); i++ {
		if seen[i-1] >= seen[i] {
			t.Fatalf("iteration out of order at %d: %s >= %s", i, seen[i-1], seen[i])
		}
	}
	if len(seen) != len(entities) {
		t.Fatalf("iterated %d of %d entries", len(seen), len(entities))
	}
}
