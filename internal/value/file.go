package value

import (
	"os"
	"sync"
)

// FileVal backs the `file` kind: an owning handle to an OS file with an
// idempotent close.
type FileVal struct {
	RC

	mu     sync.Mutex
	handle *os.File
	path   string
	mode   string
	closed bool
}

func (f *FileVal) Kind() Kind { return KindFile }

// NewFile wraps an already-open *os.File.
func NewFile(handle *os.File, path, mode string) *FileVal {
	return &FileVal{RC: NewRC(), handle: handle, path: path, mode: mode}
}

func (f *FileVal) Path() string { return f.path }
func (f *FileVal) Mode() string { return f.mode }
func (f *FileVal) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *FileVal) Read(n int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, os.ErrClosed
	}
	buf := make([]byte, n)
	read, err := f.handle.Read(buf)
	if read == 0 {
		return []byte{}, err
	}
	return buf[:read], nil
}

func (f *FileVal) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, os.ErrClosed
	}
	return f.handle.Write(p)
}

func (f *FileVal) Seek(offset int64, whence int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, os.ErrClosed
	}
	return f.handle.Seek(offset, whence)
}

func (f *FileVal) Tell() (int64, error) {
	return f.Seek(0, os.SEEK_CUR)
}

// Close is idempotent.
func (f *FileVal) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.handle.Close()
}

func (f *FileVal) Release() int32 { return f.Dec() }
