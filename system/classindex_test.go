package system

import (
	"reflect"
	"sync"
	"testing"
)

type posComponent struct{ X, Y float64 }
type velComponent struct{ X, Y float64 }

func TestClassIndexAddClassIsIdempotent(t *testing.T) {
	idx := NewClassIndex(8)
	posType := reflect.TypeOf(posComponent{})

	id1, err := idx.AddClass(posType)
	if err != nil {
		t.Fatalf("AddClass: %v", err)
	}
	id2, err := idx.AddClass(posType)
	if err != nil {
		t.Fatalf("AddClass (second): %v", err)
	}
	if id1 != id2 {
		t.Fatalf("re-registering the same type gave different ids: %d vs %d", id1, id2)
	}
	if got := idx.TypeAt(id1); got != posType {
		t.Fatalf("TypeAt(%d) = %v, want %v", id1, got, posType)
	}
}

func TestClassIndexCapacityExceeded(t *testing.T) {
	idx := NewClassIndex(1)
	if _, err := idx.AddClass(reflect.TypeOf(posComponent{})); err != nil {
		t.Fatalf("first AddClass: %v", err)
	}
	if _, err := idx.AddClass(reflect.TypeOf(velComponent{})); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestClassIndexGetIndexUnknownType(t *testing.T) {
	idx := NewClassIndex(4)
	if _, ok := idx.GetIndex(reflect.TypeOf(posComponent{})); ok {
		t.Fatalf("expected unknown type to report ok=false")
	}
}

func TestClassIndexConcurrentAddClass(t *testing.T) {
	idx := NewClassIndex(2)
	types := []reflect.Type{reflect.TypeOf(posComponent{}), reflect.TypeOf(velComponent{})}

	var wg sync.WaitGroup
	ids := make([][2]int, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, _ := idx.AddClass(types[0])
			b, _ := idx.AddClass(types[1])
			ids[i] = [2]int{a, b}
		}(i)
	}
	wg.Wait()

	want := ids[0]
	for _, got := range ids {
		if got != want {
			t.Fatalf("concurrent AddClass produced inconsistent ids: %v vs %v", got, want)
		}
	}
}
