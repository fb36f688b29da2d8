package methods

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nbeerbower/hemlock/internal/value"
	"golang.org/x/text/unicode/norm"
)

func init() {
	register(value.KindString, "length", stringLength)
	register(value.KindString, "byte_length", stringByteLength)
	register(value.KindString, "char_at", stringCharAt)
	register(value.KindString, "byte_at", stringByteAt)
	register(value.KindString, "substr", stringSubstr)
	register(value.KindString, "slice", stringSlice)
	register(value.KindString, "find", stringFind)
	register(value.KindString, "contains", stringContains)
	register(value.KindString, "split", stringSplit)
	register(value.KindString, "trim", stringTrim)
	register(value.KindString, "to_upper", stringToUpper)
	register(value.KindString, "to_lower", stringToLower)
	register(value.KindString, "starts_with", stringStartsWith)
	register(value.KindString, "ends_with", stringEndsWith)
	register(value.KindString, "replace", stringReplace)
	register(value.KindString, "replace_all", stringReplaceAll)
	register(value.KindString, "repeat", stringRepeat)
	register(value.KindString, "chars", stringChars)
	register(value.KindString, "bytes", stringBytes)
	register(value.KindString, "to_bytes", stringToBytes)
	register(value.KindString, "deserialize", stringDeserialize)
	// Supplemental: NFC normalization, grounded on backend/local's use of
	// golang.org/x/text/unicode/norm for filename normalization.
	register(value.KindString, "normalize", stringNormalize)
}

func asString(v value.Value) *value.StringVal {
	p, _ := v.Heap()
	return p.(*value.StringVal)
}

func argString(args []value.Value, i int) (*value.StringVal, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing argument %d", i)
	}
	if args[i].Kind() != value.KindString {
		return nil, fmt.Errorf("argument %d: expected string, got %s", i, args[i].Kind())
	}
	return asString(args[i]), nil
}

func argInt(args []value.Value, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument %d", i)
	}
	if !args[i].Kind().IsNumeric() {
		return 0, fmt.Errorf("argument %d: expected numeric, got %s", i, args[i].Kind())
	}
	return int(args[i].AsInt64()), nil
}

func stringLength(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	return value.I32(int32(asString(self).CodepointLen())), nil
}

func stringByteLength(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	return value.I32(int32(asString(self).ByteLen())), nil
}

func stringCharAt(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	idx, err := argInt(args, 0)
	if err != nil {
		return value.Null(), err
	}
	r, ok := asString(self).CharAt(idx)
	if !ok {
		return value.Null(), fmt.Errorf("char_at: index %d out of range", idx)
	}
	return value.Rune(r), nil
}

func stringByteAt(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	idx, err := argInt(args, 0)
	if err != nil {
		return value.Null(), err
	}
	b, ok := asString(self).ByteAt(idx)
	if !ok {
		return value.Null(), fmt.Errorf("byte_at: index %d out of range", idx)
	}
	return value.U8(b), nil
}

func stringSubstr(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	start, err := argInt(args, 0)
	if err != nil {
		return value.Null(), err
	}
	length, err := argInt(args, 1)
	if err != nil {
		return value.Null(), err
	}
	s := asString(self)
	return value.Heap(value.NewString(s.CodepointSlice(start, start+length))), nil
}

func stringSlice(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	start, err := argInt(args, 0)
	if err != nil {
		return value.Null(), err
	}
	end, err := argInt(args, 1)
	if err != nil {
		return value.Null(), err
	}
	s := asString(self)
	return value.Heap(value.NewString(s.CodepointSlice(start, end))), nil
}

func stringFind(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	needle, err := argString(args, 0)
	if err != nil {
		return value.Null(), err
	}
	idx := strings.Index(asString(self).String(), needle.String())
	if idx < 0 {
		return value.I32(-1), nil
	}
	// Convert byte offset to codepoint offset.
	prefix := asString(self).String()[:idx]
	return value.I32(int32(len([]rune(prefix)))), nil
}

func stringContains(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	needle, err := argString(args, 0)
	if err != nil {
		return value.Null(), err
	}
	return value.Bool(strings.Contains(asString(self).String(), needle.String())), nil
}

func stringSplit(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	sep, err := argString(args, 0)
	if err != nil {
		return value.Null(), err
	}
	parts := strings.Split(asString(self).String(), sep.String())
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.Heap(value.NewString(p))
	}
	return value.Heap(value.NewArrayFrom(elems)), nil
}

func stringTrim(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	return value.Heap(value.NewString(strings.TrimSpace(asString(self).String()))), nil
}

func stringToUpper(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	return value.Heap(value.NewString(strings.ToUpper(asString(self).String()))), nil
}

func stringToLower(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	return value.Heap(value.NewString(strings.ToLower(asString(self).String()))), nil
}

func stringStartsWith(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	prefix, err := argString(args, 0)
	if err != nil {
		return value.Null(), err
	}
	return value.Bool(strings.HasPrefix(asString(self).String(), prefix.String())), nil
}

func stringEndsWith(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	suffix, err := argString(args, 0)
	if err != nil {
		return value.Null(), err
	}
	return value.Bool(strings.HasSuffix(asString(self).String(), suffix.String())), nil
}

func stringReplace(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	old, err := argString(args, 0)
	if err != nil {
		return value.Null(), err
	}
	repl, err := argString(args, 1)
	if err != nil {
		return value.Null(), err
	}
	return value.Heap(value.NewString(strings.Replace(asString(self).String(), old.String(), repl.String(), 1))), nil
}

func stringReplaceAll(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	old, err := argString(args, 0)
	if err != nil {
		return value.Null(), err
	}
	repl, err := argString(args, 1)
	if err != nil {
		return value.Null(), err
	}
	return value.Heap(value.NewString(strings.ReplaceAll(asString(self).String(), old.String(), repl.String()))), nil
}

func stringRepeat(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	n, err := argInt(args, 0)
	if err != nil {
		return value.Null(), err
	}
	if n < 0 {
		return value.Null(), fmt.Errorf("repeat: count must be non-negative")
	}
	return value.Heap(value.NewString(strings.Repeat(asString(self).String(), n))), nil
}

func stringChars(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	runes := []rune(asString(self).String())
	elems := make([]value.Value, len(runes))
	for i, r := range runes {
		elems[i] = value.Rune(r)
	}
	return value.Heap(value.NewArrayFrom(elems)), nil
}

func stringBytes(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	data := asString(self).Bytes()
	elems := make([]value.Value, len(data))
	for i, b := range data {
		elems[i] = value.U8(b)
	}
	return value.Heap(value.NewArrayFrom(elems)), nil
}

func stringToBytes(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	return value.Heap(value.NewBufferFromBytes(asString(self).Bytes())), nil
}

func stringDeserialize(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	dec := json.NewDecoder(strings.NewReader(asString(self).String()))
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return value.Null(), fmt.Errorf("deserialize: %w", err)
	}
	if dec.More() {
		return value.Null(), fmt.Errorf("deserialize: trailing characters after JSON value")
	}
	return jsonToValue(raw), nil
}

func stringNormalize(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	normalized := norm.NFC.String(asString(self).String())
	return value.Heap(value.NewString(normalized)), nil
}

func jsonToValue(raw interface{}) value.Value {
	switch v := raw.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.Bool(v)
	case float64:
		return value.F64(v)
	case string:
		return value.Heap(value.NewString(v))
	case []interface{}:
		elems := make([]value.Value, len(v))
		for i, e := range v {
			elems[i] = jsonToValue(e)
		}
		return value.Heap(value.NewArrayFrom(elems))
	case map[string]interface{}:
		obj := value.NewObject()
		for k, e := range v {
			obj.Set(k, jsonToValue(e))
		}
		return value.Heap(obj)
	}
	return value.Null()
}
