package progress

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
)

// DefaultStateFile is the state file name used when none is configured.
const DefaultStateFile = ".gopherlings-state.txt"

// Backend stores the serialized progress state.
type Backend interface {
	// Load appends the persisted state to dst and returns the extended slice.
	Load(dst []byte) ([]byte, error)

	// Save replaces the persisted state with data.
	Save(data []byte) error

	// Remove deletes the persisted state. Removing absent state is not an error.
	Remove() error

	// String identifies the storage location in errors and logs.
	String() string
}

// FileBackend keeps the state in a plain text file.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend writing to path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load(dst []byte) ([]byte, error) {
	f, err := os.Open(b.path)
	if err != nil {
		return dst, err
	}
	defer f.Close()

	buf := bytes.NewBuffer(dst)
	_, err = buf.ReadFrom(f)
	return buf.Bytes(), err
}

func (b *FileBackend) Save(data []byte) error {
	return os.WriteFile(b.path, data, 0o644)
}

func (b *FileBackend) Remove() error {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (b *FileBackend) String() string {
	return b.path
}
