package engine

// This file plays the role the original engine fills with generated
// IteratorWith1..6 records: one typed projection per arity, hand-written
// here since Go type parameters make code generation unnecessary for a
// fixed, small set of arities. Each ResultSetN is a lazy, single-pass,
// disabled-entity-filtering iterator over every composition that carries
// at least the N requested types.

// ResultSet1 iterates entities carrying at least component type T1.
type ResultSet1[T1 any] struct {
	comps []*Composition
	idx   int
	iter  func() (*Entity, bool)
	col1  int
}

func newResultSet1[T1 any](comps []*Composition) *ResultSet1[T1] {
	return &ResultSet1[T1]{comps: comps, idx: -1}
}

// Select1 builds a ResultSet1 over the repository's matching compositions.
func Select1[T1 any](repo *CompositionRepository) *ResultSet1[T1] {
	return newResultSet1[T1](repo.Select(TypeOf[T1]()))
}

// Next advances the iterator. ok is false once every composition has been
// exhausted.
func (rs *ResultSet1[T1]) Next() (entity *Entity, c1 T1, ok bool) {
	for {
		if rs.iter == nil {
			rs.idx++
			if rs.idx >= len(rs.comps) {
				return nil, c1, false
			}
			c := rs.comps[rs.idx]
			rs.col1 = c.columnFor(TypeOf[T1]())
			rs.iter = c.tenant.Iterator()
		}
		e, more := rs.iter()
		if !more {
			rs.iter = nil
			continue
		}
		if e == nil || !e.IsEnabled() {
			continue
		}
		v, _ := e.get(rs.col1).(T1)
		return e, v, true
	}
}

// SelectFunc1 fuses iteration with a callback, avoiding an allocation per
// tuple. Iteration stops early if fn returns false.
func SelectFunc1[T1 any](repo *CompositionRepository, fn func(*Entity, T1) bool) {
	rs := Select1[T1](repo)
	for {
		e, c1, ok := rs.Next()
		if !ok || !fn(e, c1) {
			return
		}
	}
}

// ResultSet2 iterates entities carrying at least T1 and T2.
type ResultSet2[T1, T2 any] struct {
	comps      []*Composition
	idx        int
	iter       func() (*Entity, bool)
	col1, col2 int
}

func newResultSet2[T1, T2 any](comps []*Composition) *ResultSet2[T1, T2] {
	return &ResultSet2[T1, T2]{comps: comps, idx: -1}
}

// Select2 builds a ResultSet2 over the repository's matching compositions.
func Select2[T1, T2 any](repo *CompositionRepository) *ResultSet2[T1, T2] {
	return newResultSet2[T1, T2](repo.Select(TypeOf[T1](), TypeOf[T2]()))
}

func (rs *ResultSet2[T1, T2]) Next() (entity *Entity, c1 T1, c2 T2, ok bool) {
	for {
		if rs.iter == nil {
			rs.idx++
			if rs.idx >= len(rs.comps) {
				return nil, c1, c2, false
			}
			c := rs.comps[rs.idx]
			rs.col1 = c.columnFor(TypeOf[T1]())
			rs.col2 = c.columnFor(TypeOf[T2]())
			rs.iter = c.tenant.Iterator()
		}
		e, more := rs.iter()
		if !more {
			rs.iter = nil
			continue
		}
		if e == nil || !e.IsEnabled() {
			continue
		}
		v1, _ := e.get(rs.col1).(T1)
		v2, _ := e.get(rs.col2).(T2)
		return e, v1, v2, true
	}
}

// SelectFunc2 fuses iteration with a callback.
func SelectFunc2[T1, T2 any](repo *CompositionRepository, fn func(*Entity, T1, T2) bool) {
	rs := Select2[T1, T2](repo)
	for {
		e, c1, c2, ok := rs.Next()
		if !ok || !fn(e, c1, c2) {
			return
		}
	}
}

// ResultSet3 iterates entities carrying at least T1, T2, and T3.
type ResultSet3[T1, T2, T3 any] struct {
	comps            []*Composition
	idx              int
	iter             func() (*Entity, bool)
	col1, col2, col3 int
}

func newResultSet3[T1, T2, T3 any](comps []*Composition) *ResultSet3[T1, T2, T3] {
	return &ResultSet3[T1, T2, T3]{comps: comps, idx: -1}
}

// Select3 builds a ResultSet3 over the repository's matching compositions.
func Select3[T1, T2, T3 any](repo *CompositionRepository) *ResultSet3[T1, T2, T3] {
	return newResultSet3[T1, T2, T3](repo.Select(TypeOf[T1](), TypeOf[T2](), TypeOf[T3]()))
}

func (rs *ResultSet3[T1, T2, T3]) Next() (entity *Entity, c1 T1, c2 T2, c3 T3, ok bool) {
	for {
		if rs.iter == nil {
			rs.idx++
			if rs.idx >= len(rs.comps) {
				return nil, c1, c2, c3, false
			}
			c := rs.comps[rs.idx]
			rs.col1 = c.columnFor(TypeOf[T1]())
			rs.col2 = c.columnFor(TypeOf[T2]())
			rs.col3 = c.columnFor(TypeOf[T3]())
			rs.iter = c.tenant.Iterator()
		}
		e, more := rs.iter()
		if !more {
			rs.iter = nil
			continue
		}
		if e == nil || !e.IsEnabled() {
			continue
		}
		v1, _ := e.get(rs.col1).(T1)
		v2, _ := e.get(rs.col2).(T2)
		v3, _ := e.get(rs.col3).(T3)
		return e, v1, v2, v3, true
	}
}

// SelectFunc3 fuses iteration with a callback.
func SelectFunc3[T1, T2, T3 any](repo *CompositionRepository, fn func(*Entity, T1, T2, T3) bool) {
	rs := Select3[T1, T2, T3](repo)
	for {
		e, c1, c2, c3, ok := rs.Next()
		if !ok || !fn(e, c1, c2, c3) {
			return
		}
	}
}

// ResultSet4 iterates entities carrying at least T1..T4.
type ResultSet4[T1, T2, T3, T4 any] struct {
	comps                  []*Composition
	idx                    int
	iter                   func() (*Entity, bool)
	col1, col2, col3, col4 int
}

func newResultSet4[T1, T2, T3, T4 any](comps []*Composition) *ResultSet4[T1, T2, T3, T4] {
	return &ResultSet4[T1, T2, T3, T4]{comps: comps, idx: -1}
}

// Select4 builds a ResultSet4 over the repository's matching compositions.
func Select4[T1, T2, T3, T4 any](repo *CompositionRepository) *ResultSet4[T1, T2, T3, T4] {
	return newResultSet4[T1, T2, T3, T4](repo.Select(TypeOf[T1](), TypeOf[T2](), TypeOf[T3](), TypeOf[T4]()))
}

func (rs *ResultSet4[T1, T2, T3, T4]) Next() (entity *Entity, c1 T1, c2 T2, c3 T3, c4 T4, ok bool) {
	for {
		if rs.iter == nil {
			rs.idx++
			if rs.idx >= len(rs.comps) {
				return nil, c1, c2, c3, c4, false
			}
			c := rs.comps[rs.idx]
			rs.col1 = c.columnFor(TypeOf[T1]())
			rs.col2 = c.columnFor(TypeOf[T2]())
			rs.col3 = c.columnFor(TypeOf[T3]())
			rs.col4 = c.columnFor(TypeOf[T4]())
			rs.iter = c.tenant.Iterator()
		}
		e, more := rs.iter()
		if !more {
			rs.iter = nil
			continue
		}
		if e == nil || !e.IsEnabled() {
			continue
		}
		v1, _ := e.get(rs.col1).(T1)
		v2, _ := e.get(rs.col2).(T2)
		v3, _ := e.get(rs.col3).(T3)
		v4, _ := e.get(rs.col4).(T4)
		return e, v1, v2, v3, v4, true
	}
}

// SelectFunc4 fuses iteration with a callback.
func SelectFunc4[T1, T2, T3, T4 any](repo *CompositionRepository, fn func(*Entity, T1, T2, T3, T4) bool) {
	rs := Select4[T1, T2, T3, T4](repo)
	for {
		e, c1, c2, c3, c4, ok := rs.Next()
		if !ok || !fn(e, c1, c2, c3, c4) {
			return
		}
	}
}

// ResultSet5 iterates entities carrying at least T1..T5.
type ResultSet5[T1, T2, T3, T4, T5 any] struct {
	comps                        []*Composition
	idx                          int
	iter                         func() (*Entity, bool)
	col1, col2, col3, col4, col5 int
}

func newResultSet5[T1, T2, T3, T4, T5 any](comps []*Composition) *ResultSet5[T1, T2, T3, T4, T5] {
	return &ResultSet5[T1, T2, T3, T4, T5]{comps: comps, idx: -1}
}

// Select5 builds a ResultSet5 over the repository's matching compositions.
func Select5[T1, T2, T3, T4, T5 any](repo *CompositionRepository) *ResultSet5[T1, T2, T3, T4, T5] {
	return newResultSet5[T1, T2, T3, T4, T5](repo.Select(TypeOf[T1](), TypeOf[T2](), TypeOf[T3](), TypeOf[T4](), TypeOf[T5]()))
}

func (rs *ResultSet5[T1, T2, T3, T4, T5]) Next() (entity *Entity, c1 T1, c2 T2, c3 T3, c4 T4, c5 T5, ok bool) {
	for {
		if rs.iter == nil {
			rs.idx++
			if rs.idx >= len(rs.comps) {
				return nil, c1, c2, c3, c4, c5, false
			}
			c := rs.comps[rs.idx]
			rs.col1 = c.columnFor(TypeOf[T1]())
			rs.col2 = c.columnFor(TypeOf[T2]())
			rs.col3 = c.columnFor(TypeOf[T3]())
			rs.col4 = c.columnFor(TypeOf[T4]())
			rs.col5 = c.columnFor(TypeOf[T5]())
			rs.iter = c.tenant.Iterator()
		}
		e, more := rs.iter()
		if !more {
			rs.iter = nil
			continue
		}
		if e == nil || !e.IsEnabled() {
			continue
		}
		v1, _ := e.get(rs.col1).(T1)
		v2, _ := e.get(rs.col2).(T2)
		v3, _ := e.get(rs.col3).(T3)
		v4, _ := e.get(rs.col4).(T4)
		v5, _ := e.get(rs.col5).(T5)
		return e, v1, v2, v3, v4, v5, true
	}
}

// SelectFunc5 fuses iteration with a callback.
func SelectFunc5[T1, T2, T3, T4, T5 any](repo *CompositionRepository, fn func(*Entity, T1, T2, T3, T4, T5) bool) {
	rs := Select5[T1, T2, T3, T4, T5](repo)
	for {
		e, c1, c2, c3, c4, c5, ok := rs.Next()
		if !ok || !fn(e, c1, c2, c3, c4, c5) {
			return
		}
	}
}

// ResultSet6 iterates entities carrying at least T1..T6.
type ResultSet6[T1, T2, T3, T4, T5, T6 any] struct {
	comps                              []*Composition
	idx                                int
	iter                               func() (*Entity, bool)
	col1, col2, col3, col4, col5, col6 int
}

func newResultSet6[T1, T2, T3, T4, T5, T6 any](comps []*Composition) *ResultSet6[T1, T2, T3, T4, T5, T6] {
	return &ResultSet6[T1, T2, T3, T4, T5, T6]{comps: comps, idx: -1}
}

// Select6 builds a ResultSet6 over the repository's matching compositions.
func Select6[T1, T2, T3, T4, T5, T6 any](repo *CompositionRepository) *ResultSet6[T1, T2, T3, T4, T5, T6] {
	return newResultSet6[T1, T2, T3, T4, T5, T6](repo.Select(
		TypeOf[T1](), TypeOf[T2](), TypeOf[T3](), TypeOf[T4](), TypeOf[T5](), TypeOf[T6]()))
}

func (rs *ResultSet6[T1, T2, T3, T4, T5, T6]) Next() (entity *Entity, c1 T1, c2 T2, c3 T3, c4 T4, c5 T5, c6 T6, ok bool) {
	for {
		if rs.iter == nil {
			rs.idx++
			if rs.idx >= len(rs.comps) {
				return nil, c1, c2, c3, c4, c5, c6, false
			}
			c := rs.comps[rs.idx]
			rs.col1 = c.columnFor(TypeOf[T1]())
			rs.col2 = c.columnFor(TypeOf[T2]())
			rs.col3 = c.columnFor(TypeOf[T3]())
			rs.col4 = c.columnFor(TypeOf[T4]())
			rs.col5 = c.columnFor(TypeOf[T5]())
			rs.col6 = c.columnFor(TypeOf[T6]())
			rs.iter = c.tenant.Iterator()
		}
		e, more := rs.iter()
		if !more {
			rs.iter = nil
			continue
		}
		if e == nil || !e.IsEnabled() {
			continue
		}
		v1, _ := e.get(rs.col1).(T1)
		v2, _ := e.get(rs.col2).(T2)
		v3, _ := e.get(rs.col3).(T3)
		v4, _ := e.get(rs.col4).(T4)
		v5, _ := e.get(rs.col5).(T5)
		v6, _ := e.get(rs.col6).(T6)
		return e, v1, v2, v3, v4, v5, v6, true
	}
}

// SelectFunc6 fuses iteration with a callback.
func SelectFunc6[T1, T2, T3, T4, T5, T6 any](repo *CompositionRepository, fn func(*Entity, T1, T2, T3, T4, T5, T6) bool) {
	rs := Select6[T1, T2, T3, T4, T5, T6](repo)
	for {
		e, c1, c2, c3, c4, c5, c6, ok := rs.Next()
		if !ok || !fn(e, c1, c2, c3, c4, c5, c6) {
			return
		}
	}
}
