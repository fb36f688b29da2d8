package value

import "strings"

// ObjectVal is the insertion-ordered field map backing the `object` kind.
type ObjectVal struct {
	RC
	keys     []string
	fields   map[string]Value
	typeName string // set only after duck-type validation succeeds
}

func (o *ObjectVal) Kind() Kind { return KindObject }

// NewObject creates an empty, untyped object.
func NewObject() *ObjectVal {
	return &ObjectVal{RC: NewRC(), fields: make(map[string]Value)}
}

// TypeName returns the duck-type name, or "" if none has been set.
func (o *ObjectVal) TypeName() string { return o.typeName }

// SetTypeName assigns the duck-type name.
func (o *ObjectVal) SetTypeName(n string) { o.typeName = n }

// Get looks up a field by name.
func (o *ObjectVal) Get(name string) (Value, bool) {
	v, ok := o.fields[name]
	return v, ok
}

// Set inserts or updates a field, preserving insertion order for new keys.
func (o *ObjectVal) Set(name string, v Value) {
	if _, exists := o.fields[name]; !exists {
		o.keys = append(o.keys, name)
	}
	o.fields[name] = v
}

// Delete removes a field.
func (o *ObjectVal) Delete(name string) {
	if _, exists := o.fields[name]; !exists {
		return
	}
	delete(o.fields, name)
	for i, k := range o.keys {
		if k == name {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns field names in insertion order.
func (o *ObjectVal) Keys() []string { return o.keys }

// Len returns the number of fields.
func (o *ObjectVal) Len() int { return len(o.keys) }

// Render produces a debug string, used by Value.String for printing.
func (o *ObjectVal) Render() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(o.fields[k].String())
	}
	b.WriteByte('}')
	return b.String()
}

func (o *ObjectVal) Release() int32 { return o.Dec() }
