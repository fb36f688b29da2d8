package builtin

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	Register(&Info{Name: "compress", Call: biCompress})
	Register(&Info{Name: "decompress", Call: biDecompress})
}

func bufferArg(args []value.Value, i int) ([]byte, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing buffer argument %d", i)
	}
	payload, ok := args[i].Heap()
	if !ok {
		return nil, fmt.Errorf("argument %d: expected a buffer", i)
	}
	b, ok := payload.(*value.BufferVal)
	if !ok {
		return nil, fmt.Errorf("argument %d: expected a buffer, got %s", i, args[i].Kind())
	}
	return b.Bytes(), nil
}

// compress/decompress use zstd.
func biCompress(args []value.Value, ctx interface{}) (value.Value, error) {
	data, err := bufferArg(args, 0)
	if err != nil {
		return value.Null(), err
	}
	var out bytes.Buffer
	w, err := zstd.NewWriter(&out, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return value.Null(), err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return value.Null(), err
	}
	if err := w.Close(); err != nil {
		return value.Null(), err
	}
	return value.Heap(value.NewBufferFromBytes(out.Bytes())), nil
}

func biDecompress(args []value.Value, ctx interface{}) (value.Value, error) {
	data, err := bufferArg(args, 0)
	if err != nil {
		return value.Null(), err
	}
	r, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return value.Null(), err
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return value.Null(), err
	}
	return value.Heap(value.NewBufferFromBytes(out)), nil
}
