package engine

import (
	"sync"
	"testing"

	"github.com/dominion-go/ecs-engine/system"
)

type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }
type Health struct{ HP int }

type lifecycleState int

const (
	stateAlive lifecycleState = iota
	stateDead
)

func (s lifecycleState) Ordinal() int { return int(s) }

func newTestRepository(t *testing.T) *CompositionRepository {
	t.Helper()
	cfg := system.Config{Size: system.Small, Logger: system.NewNopLogging()}
	repo := NewCompositionRepository(cfg)
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	})
	return repo
}

func TestCreateEntityStoresComponentsInAnyOrder(t *testing.T) {
	repo := newTestRepository(t)

	e, err := repo.CreateEntity(Velocity{X: 1, Y: 2}, Position{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("CreateEntity: %v", err)
	}

	pos := e.Get(TypeOf[Position]())
	vel := e.Get(TypeOf[Velocity]())
	if !e.Has(TypeOf[Position]()) || !e.Contains(TypeOf[Position](), TypeOf[Velocity]()) {
		t.Fatalf("Has/Contains did not report the entity's own components")
	}
	if pos.(Position) != (Position{X: 3, Y: 4}) {
		t.Fatalf("Position mismatch: %+v", pos)
	}
	if vel.(Velocity) != (Velocity{X: 1, Y: 2}) {
		t.Fatalf("Velocity mismatch: %+v", vel)
	}
}

func TestCreateEntityRejectsWrongArity(t *testing.T) {
	repo := newTestRepository(t)
	c, err := repo.GetOrCreate(TypeOf[Position](), TypeOf[Velocity]())
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if _, err := c.CreateEntity(Position{}); err != ErrInvalidComponent {
		t.Fatalf("expected ErrInvalidComponent, got %v", err)
	}
}

func TestSameTypeSetSharesOneComposition(t *testing.T) {
	repo := newTestRepository(t)
	a, err := repo.CreateEntity(Position{}, Velocity{})
	if err != nil {
		t.Fatalf("CreateEntity a: %v", err)
	}
	b, err := repo.CreateEntity(Velocity{}, Position{})
	if err != nil {
		t.Fatalf("CreateEntity b: %v", err)
	}
	if a.Composition() != b.Composition() {
		t.Fatalf("entities with the same type set (different argument order) landed in different compositions")
	}
}

func TestSelect2FindsMatchingEntitiesAcrossCompositions(t *testing.T) {
	repo := newTestRepository(t)
	if _, err := repo.CreateEntity(Position{X: 1}, Velocity{X: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateEntity(Position{X: 10}, Velocity{X: 20}, Health{HP: 5}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateEntity(Position{X: 100}); err != nil {
		t.Fatal(err)
	}

	rs := Select2[Position, Velocity](repo)
	total := 0.0
	count := 0
	for {
		_, p, v, ok := rs.Next()
		if !ok {
			break
		}
		total += p.X + v.X
		count++
	}
	if count != 2 {
		t.Fatalf("Select2 matched %d entities, want 2 (the one missing Velocity must be excluded)", count)
	}
	if total != (1+2)+(10+20) {
		t.Fatalf("Select2 projected wrong values, total=%v", total)
	}
}

func TestAddComponentMigratesEntity(t *testing.T) {
	repo := newTestRepository(t)
	e, err := repo.CreateEntity(Position{X: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Add(Velocity{X: 9}); !ok {
		t.Fatalf("Add reported failure on a live entity")
	}
	if !e.Composition().Has(TypeOf[Velocity]()) {
		t.Fatalf("entity's composition after Add does not carry Velocity")
	}
	if got := e.Get(TypeOf[Position]()); got.(Position).X != 1 {
		t.Fatalf("Position value lost across migration: %+v", got)
	}
}

func TestRemoveComponentMigratesEntity(t *testing.T) {
	repo := newTestRepository(t)
	e, err := repo.CreateEntity(Position{X: 1}, Velocity{X: 2})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.RemoveType(TypeOf[Velocity]()); !ok {
		t.Fatalf("RemoveType reported failure on a live entity")
	}
	if e.Has(TypeOf[Velocity]()) {
		t.Fatalf("Velocity still present after RemoveType")
	}
	if !e.Has(TypeOf[Position]()) {
		t.Fatalf("Position lost after removing an unrelated component")
	}
}

func TestRemoveEntityIsNoOpAfterwards(t *testing.T) {
	repo := newTestRepository(t)
	e, err := repo.CreateEntity(Position{})
	if err != nil {
		t.Fatal(err)
	}
	if !repo.RemoveEntity(e) {
		t.Fatalf("first RemoveEntity should succeed")
	}
	if repo.RemoveEntity(e) {
		t.Fatalf("second RemoveEntity should be a no-op")
	}
	if _, ok := e.Add(Velocity{}); ok {
		t.Fatalf("Add on a deleted entity should be a no-op")
	}
}

func TestDisabledEntitiesAreExcludedFromSelect(t *testing.T) {
	repo := newTestRepository(t)
	e1, err := repo.CreateEntity(Position{X: 1})
	if err != nil {
		t.Fatal(err)
	}
	e2, err := repo.CreateEntity(Position{X: 2})
	if err != nil {
		t.Fatal(err)
	}
	e1.SetEnabled(false)

	count := 0
	SelectFunc1[Position](repo, func(e *Entity, p Position) bool {
		if e == e1 {
			t.Fatalf("disabled entity must not appear in results")
		}
		count++
		return true
	})
	if count != 1 {
		t.Fatalf("expected exactly 1 enabled entity, got %d", count)
	}
	_ = e2
}

func TestSetStateMovesEntityBetweenStateTenants(t *testing.T) {
	repo := newTestRepository(t)
	e, err := repo.CreateEntity(Health{HP: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !e.SetState(stateAlive) {
		t.Fatalf("SetState(alive) failed")
	}
	if e.State() != stateAlive {
		t.Fatalf("State() = %v, want stateAlive", e.State())
	}
	if !e.SetState(stateDead) {
		t.Fatalf("SetState(dead) failed")
	}
	if e.State() != stateDead {
		t.Fatalf("State() = %v, want stateDead", e.State())
	}
}

func TestConcurrentCreateEntitySameTypeSet(t *testing.T) {
	repo := newTestRepository(t)
	const n = 500
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if _, err := repo.CreateEntity(Position{X: float64(i)}); err != nil {
				t.Errorf("CreateEntity: %v", err)
			}
		}(i)
	}
	wg.Wait()

	comps := repo.Select(TypeOf[Position]())
	if len(comps) != 1 {
		t.Fatalf("expected a single shared composition, got %d", len(comps))
	}
	if got := comps[0].EntityCount(); got != n {
		t.Fatalf("composition entity count = %d, want %d", got, n)
	}
}
