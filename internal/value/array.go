package value

import "strings"

// ArrayVal is the dynamic sequence of Value backing the `array` kind. Grow
// factor 2, initial capacity 8.
type ArrayVal struct {
	RC
	elems     []Value
	elemKind  *Kind // nil when unconstrained
}

const initialArrayCapacity = 8

func (a *ArrayVal) Kind() Kind { return KindArray }

// NewArray creates an empty, unconstrained array.
func NewArray() *ArrayVal {
	return &ArrayVal{RC: NewRC(), elems: make([]Value, 0, initialArrayCapacity)}
}

// NewArrayFrom creates an array seeded with elems (capacity rounded up
// to the grow-factor-2 schedule starting at 8).
func NewArrayFrom(elems []Value) *ArrayVal {
	cap := initialArrayCapacity
	for cap < len(elems) {
		cap *= 2
	}
	buf := make([]Value, len(elems), cap)
	copy(buf, elems)
	return &ArrayVal{RC: NewRC(), elems: buf}
}

// NewTypedArray creates an empty array constrained to hold only values of
// kind k.
func NewTypedArray(k Kind) *ArrayVal {
	a := NewArray()
	a.elemKind = &k
	return a
}

func (a *ArrayVal) Len() int      { return len(a.elems) }
func (a *ArrayVal) Cap() int      { return cap(a.elems) }
func (a *ArrayVal) Elems() []Value { return a.elems }

// ElemKind returns the constraint kind and whether one is set.
func (a *ArrayVal) ElemKind() (Kind, bool) {
	if a.elemKind == nil {
		return 0, false
	}
	return *a.elemKind, true
}

// CheckElem reports whether v satisfies this array's element-type
// constraint, if any.
func (a *ArrayVal) CheckElem(v Value) bool {
	if a.elemKind == nil {
		return true
	}
	return v.Kind() == *a.elemKind
}

func (a *ArrayVal) grow() {
	if len(a.elems) < cap(a.elems) {
		return
	}
	newCap := cap(a.elems) * 2
	if newCap == 0 {
		newCap = initialArrayCapacity
	}
	ne := make([]Value, len(a.elems), newCap)
	copy(ne, a.elems)
	a.elems = ne
}

// Push appends v (caller must have already validated CheckElem).
func (a *ArrayVal) Push(v Value) {
	a.grow()
	a.elems = append(a.elems, v)
}

// Pop removes and returns the last element; returns (Null, false) on an
// empty array.
func (a *ArrayVal) Pop() (Value, bool) {
	n := len(a.elems)
	if n == 0 {
		return Null(), false
	}
	v := a.elems[n-1]
	a.elems = a.elems[:n-1]
	return v, true
}

// Get returns elems[i], bounds-checked.
func (a *ArrayVal) Get(i int) (Value, bool) {
	if i < 0 || i >= len(a.elems) {
		return Null(), false
	}
	return a.elems[i], true
}

// Set writes elems[i] = v, bounds-checked.
func (a *ArrayVal) Set(i int, v Value) bool {
	if i < 0 || i >= len(a.elems) {
		return false
	}
	a.elems[i] = v
	return true
}

// Insert inserts v at index i, shifting later elements right.
func (a *ArrayVal) Insert(i int, v Value) bool {
	if i < 0 || i > len(a.elems) {
		return false
	}
	a.grow()
	a.elems = append(a.elems, Null())
	copy(a.elems[i+1:], a.elems[i:])
	a.elems[i] = v
	return true
}

// Remove deletes the element at index i.
func (a *ArrayVal) Remove(i int) (Value, bool) {
	if i < 0 || i >= len(a.elems) {
		return Null(), false
	}
	v := a.elems[i]
	a.elems = append(a.elems[:i], a.elems[i+1:]...)
	return v, true
}

// Shift removes and returns the first element.
func (a *ArrayVal) Shift() (Value, bool) { return a.Remove(0) }

// Unshift inserts v at the front.
func (a *ArrayVal) Unshift(v Value) bool { return a.Insert(0, v) }

// Reverse reverses elements in place.
func (a *ArrayVal) Reverse() {
	for i, j := 0, len(a.elems)-1; i < j; i, j = i+1, j-1 {
		a.elems[i], a.elems[j] = a.elems[j], a.elems[i]
	}
}

// Clear empties the array.
func (a *ArrayVal) Clear() { a.elems = a.elems[:0] }

// Slice returns elements [start,end) with Python-style clamping.
func (a *ArrayVal) Slice(start, end int) []Value {
	n := len(a.elems)
	start = clampIndex(start, n)
	end = clampIndex(end, n)
	if end < start {
		end = start
	}
	out := make([]Value, end-start)
	copy(out, a.elems[start:end])
	return out
}

// Render produces a debug string, used by Value.String for printing.
func (a *ArrayVal) Render() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range a.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (a *ArrayVal) Release() int32 { return a.Dec() }
