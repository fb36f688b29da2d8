package methods

import (
	"fmt"
	"strings"

	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	register(value.KindArray, "push", arrayPush)
	register(value.KindArray, "pop", arrayPop)
	register(value.KindArray, "shift", arrayShift)
	register(value.KindArray, "unshift", arrayUnshift)
	register(value.KindArray, "insert", arrayInsert)
	register(value.KindArray, "remove", arrayRemove)
	register(value.KindArray, "find", arrayFind)
	register(value.KindArray, "contains", arrayContains)
	register(value.KindArray, "slice", arraySlice)
	register(value.KindArray, "join", arrayJoin)
	register(value.KindArray, "concat", arrayConcat)
	register(value.KindArray, "reverse", arrayReverse)
	register(value.KindArray, "first", arrayFirst)
	register(value.KindArray, "last", arrayLast)
	register(value.KindArray, "clear", arrayClear)
	register(value.KindArray, "map", arrayMap)
	register(value.KindArray, "filter", arrayFilter)
	register(value.KindArray, "reduce", arrayReduce)
}

func asArray(v value.Value) *value.ArrayVal {
	p, _ := v.Heap()
	return p.(*value.ArrayVal)
}

func arrayPush(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	a := asArray(self)
	for _, v := range args {
		if !a.CheckElem(v) {
			return value.Null(), fmt.Errorf("push: element type mismatch")
		}
		a.Push(v)
	}
	return value.Null(), nil
}

func arrayPop(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	v, _ := asArray(self).Pop()
	return v, nil
}

func arrayShift(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	v, _ := asArray(self).Shift()
	return v, nil
}

func arrayUnshift(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("unshift: missing argument")
	}
	a := asArray(self)
	if !a.CheckElem(args[0]) {
		return value.Null(), fmt.Errorf("unshift: element type mismatch")
	}
	a.Unshift(args[0])
	return value.Null(), nil
}

func arrayInsert(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	idx, err := argInt(args, 0)
	if err != nil {
		return value.Null(), err
	}
	if len(args) < 2 {
		return value.Null(), fmt.Errorf("insert: missing value argument")
	}
	a := asArray(self)
	if !a.CheckElem(args[1]) {
		return value.Null(), fmt.Errorf("insert: element type mismatch")
	}
	if !a.Insert(idx, args[1]) {
		return value.Null(), fmt.Errorf("insert: index %d out of range", idx)
	}
	return value.Null(), nil
}

func arrayRemove(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	idx, err := argInt(args, 0)
	if err != nil {
		return value.Null(), err
	}
	v, ok := asArray(self).Remove(idx)
	if !ok {
		return value.Null(), fmt.Errorf("remove: index %d out of range", idx)
	}
	return v, nil
}

func arrayFind(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("find: missing argument")
	}
	a := asArray(self)
	for idx, e := range a.Elems() {
		if value.Equals(e, args[0]) {
			return value.I32(int32(idx)), nil
		}
	}
	return value.I32(-1), nil
}

func arrayContains(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("contains: missing argument")
	}
	for _, e := range asArray(self).Elems() {
		if value.Equals(e, args[0]) {
			return value.Bool(true), nil
		}
	}
	return value.Bool(false), nil
}

func arraySlice(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	start, err := argInt(args, 0)
	if err != nil {
		return value.Null(), err
	}
	end, err := argInt(args, 1)
	if err != nil {
		return value.Null(), err
	}
	return value.Heap(value.NewArrayFrom(asArray(self).Slice(start, end))), nil
}

func arrayJoin(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	delim, err := argString(args, 0)
	if err != nil {
		return value.Null(), err
	}
	parts := make([]string, 0, asArray(self).Len())
	for _, e := range asArray(self).Elems() {
		parts = append(parts, e.String())
	}
	return value.Heap(value.NewString(strings.Join(parts, delim.String()))), nil
}

func arrayConcat(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if len(args) == 0 || args[0].Kind() != value.KindArray {
		return value.Null(), fmt.Errorf("concat: expected an array argument")
	}
	combined := append(append([]value.Value{}, asArray(self).Elems()...), asArray(args[0]).Elems()...)
	return value.Heap(value.NewArrayFrom(combined)), nil
}

func arrayReverse(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	asArray(self).Reverse()
	return value.Null(), nil
}

func arrayFirst(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	v, ok := asArray(self).Get(0)
	if !ok {
		return value.Null(), nil
	}
	return v, nil
}

func arrayLast(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	a := asArray(self)
	v, ok := a.Get(a.Len() - 1)
	if !ok {
		return value.Null(), nil
	}
	return v, nil
}

func arrayClear(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	asArray(self).Clear()
	return value.Null(), nil
}

func arrayMap(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("map: missing callback")
	}
	a := asArray(self)
	out := make([]value.Value, 0, a.Len())
	for _, e := range a.Elems() {
		r, err := c.Call(args[0], []value.Value{e})
		if err != nil {
			return value.Null(), err
		}
		out = append(out, r)
	}
	return value.Heap(value.NewArrayFrom(out)), nil
}

func arrayFilter(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("filter: missing callback")
	}
	a := asArray(self)
	out := make([]value.Value, 0, a.Len())
	for _, e := range a.Elems() {
		r, err := c.Call(args[0], []value.Value{e})
		if err != nil {
			return value.Null(), err
		}
		if r.Truthy() {
			out = append(out, e)
		}
	}
	return value.Heap(value.NewArrayFrom(out)), nil
}

func arrayReduce(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("reduce: missing callback")
	}
	a := asArray(self)
	elems := a.Elems()
	var acc value.Value
	start := 0
	if len(args) > 1 {
		acc = args[1]
	} else if len(elems) > 0 {
		acc = elems[0]
		start = 1
	} else {
		return value.Null(), fmt.Errorf("reduce: empty array with no initial value")
	}
	for _, e := range elems[start:] {
		r, err := c.Call(args[0], []value.Value{acc, e})
		if err != nil {
			return value.Null(), err
		}
		acc = r
	}
	return acc, nil
}
