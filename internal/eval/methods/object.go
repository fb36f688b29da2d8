package methods

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	register(value.KindObject, "serialize", objectSerialize)
}

func objectSerialize(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	var b strings.Builder
	seen := make(map[value.HeapPayload]bool)
	if err := serializeValue(self, &b, seen); err != nil {
		return value.Null(), err
	}
	return value.Heap(value.NewString(b.String())), nil
}

// serializeValue renders canonical JSON with cycle detection.
func serializeValue(v value.Value, b *strings.Builder, seen map[value.HeapPayload]bool) error {
	switch v.Kind() {
	case value.KindNull:
		b.WriteString("null")
	case value.KindBool:
		b.WriteString(strconv.FormatBool(v.AsBool()))
	case value.KindI8, value.KindI16, value.KindI32, value.KindI64:
		b.WriteString(strconv.FormatInt(v.AsInt64(), 10))
	case value.KindU8, value.KindU16, value.KindU32, value.KindU64:
		b.WriteString(strconv.FormatUint(v.AsUint64(), 10))
	case value.KindF32, value.KindF64:
		b.WriteString(strconv.FormatFloat(v.AsFloat64(), 'g', -1, 64))
	case value.KindString:
		writeJSONString(b, asString(v).String())
	case value.KindArray:
		a := asArray(v)
		payload, _ := v.Heap()
		if seen[payload] {
			return fmt.Errorf("serialize: cyclic reference")
		}
		seen[payload] = true
		b.WriteByte('[')
		for idx, e := range a.Elems() {
			if idx > 0 {
				b.WriteByte(',')
			}
			if err := serializeValue(e, b, seen); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		delete(seen, payload)
	case value.KindObject:
		payload, _ := v.Heap()
		obj := payload.(*value.ObjectVal)
		if seen[payload] {
			return fmt.Errorf("serialize: cyclic reference")
		}
		seen[payload] = true
		b.WriteByte('{')
		for idx, key := range obj.Keys() {
			if idx > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, key)
			b.WriteByte(':')
			fv, _ := obj.Get(key)
			if err := serializeValue(fv, b, seen); err != nil {
				return err
			}
		}
		b.WriteByte('}')
		delete(seen, payload)
	default:
		return fmt.Errorf("serialize: value of kind %s is not serializable", v.Kind())
	}
	return nil
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
