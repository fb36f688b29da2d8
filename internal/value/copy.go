package value

// DeepCopy implements deep copy, used to isolate task arguments from the
// parent: primitives are copied bit-for-bit; strings/buffers are cloned;
// arrays/objects are recursively deep-copied; functions share their closure
// environment; channels, tasks, files, sockets are copied by reference.
func DeepCopy(v Value) Value {
	switch v.kind {
	case KindString:
		if s, ok := v.heap.(*StringVal); ok {
			return Heap(s.Clone())
		}
	case KindBuffer:
		if b, ok := v.heap.(*BufferVal); ok {
			return Heap(b.Clone())
		}
	case KindArray:
		if a, ok := v.heap.(*ArrayVal); ok {
			copied := make([]Value, a.Len())
			for i, e := range a.Elems() {
				copied[i] = DeepCopy(e)
			}
			na := NewArrayFrom(copied)
			if k, has := a.ElemKind(); has {
				kk := k
				na.elemKind = &kk
			}
			return Heap(na)
		}
	case KindObject:
		if o, ok := v.heap.(*ObjectVal); ok {
			no := NewObject()
			for _, k := range o.Keys() {
				fv, _ := o.Get(k)
				no.Set(k, DeepCopy(fv))
			}
			no.SetTypeName(o.TypeName())
			return Heap(no)
		}
	case KindFunction:
		// Functions share their closure environment.
		if v.heap != nil {
			v.heap.Retain()
		}
		return v
	case KindChannel, KindTask, KindFile, KindSocket:
		// Copied by reference — the point of these kinds is shared mutation across
		// threads.
		if v.heap != nil {
			v.heap.Retain()
		}
		return v
	}
	// Inline primitives copy bit-for-bit trivially by value semantics.
	return v
}
