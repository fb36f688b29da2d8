package methods

import (
	"fmt"
	"io"
	"os"

	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	register(value.KindFile, "read", fileRead)
	register(value.KindFile, "write", fileWrite)
	register(value.KindFile, "seek", fileSeek)
	register(value.KindFile, "tell", fileTell)
	register(value.KindFile, "close", fileClose)
}

func asFile(v value.Value) *value.FileVal {
	p, _ := v.Heap()
	return p.(*value.FileVal)
}

func fileRead(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	n := 4096
	if len(args) > 0 {
		var err error
		n, err = argInt(args, 0)
		if err != nil {
			return value.Null(), err
		}
	}
	data, err := asFile(self).Read(n)
	if err != nil && err != io.EOF {
		return value.Null(), err
	}
	return value.Heap(value.NewBufferFromBytes(data)), nil
}

func fileWrite(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("write: missing argument")
	}
	var data []byte
	switch args[0].Kind() {
	case value.KindString:
		data = asString(args[0]).Bytes()
	case value.KindBuffer:
		p, _ := args[0].Heap()
		data = p.(*value.BufferVal).Bytes()
	default:
		return value.Null(), fmt.Errorf("write: expected string or buffer, got %s", args[0].Kind())
	}
	n, err := asFile(self).Write(data)
	if err != nil {
		return value.Null(), err
	}
	return value.I32(int32(n)), nil
}

func fileSeek(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	offset, err := argInt(args, 0)
	if err != nil {
		return value.Null(), err
	}
	whence := os.SEEK_SET
	if len(args) > 1 {
		whence, err = argInt(args, 1)
		if err != nil {
			return value.Null(), err
		}
	}
	pos, err := asFile(self).Seek(int64(offset), whence)
	if err != nil {
		return value.Null(), err
	}
	return value.I64(pos), nil
}

func fileTell(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	pos, err := asFile(self).Tell()
	if err != nil {
		return value.Null(), err
	}
	return value.I64(pos), nil
}

func fileClose(self value.Value, args []value.Value, c Caller) (value.Value, error) {
	if err := asFile(self).Close(); err != nil {
		return value.Null(), err
	}
	return value.Null(), nil
}
