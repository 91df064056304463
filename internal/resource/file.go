package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Buffer is a live, editable document held by the host. Edits made through
// it stay visible to the host's undo history and unsaved state.
type Buffer interface {
	Text() string
	SetText(text string) error
}

// Workspace gives access to the live buffers of the host, if any.
type Workspace interface {
	// Buffer returns the open buffer for path.
	Buffer(path string) (Buffer, bool)
}

// Transactor is implemented by workspaces that group edits into a single
// undoable transaction.
type Transactor interface {
	Transact(name string, fn func() error) error
}

// File is one resource file. Reads and writes go to the live buffer when the
// workspace has one for the path and to disk otherwise.
type File struct {
	path string
	ws   Workspace
}

// NewFile returns a File for path. ws may be nil.
func NewFile(path string, ws Workspace) *File {
	return &File{path: path, ws: ws}
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Name returns the base name of the file.
func (f *File) Name() string { return filepath.Base(f.path) }

func (f *File) buffer() (Buffer, bool) {
	if f.ws == nil {
		return nil, false
	}
	return f.ws.Buffer(f.path)
}

// Exists reports whether the file has a live buffer or exists on disk.
func (f *File) Exists() bool {
	if _, ok := f.buffer(); ok {
		return true
	}
	info, err := os.Stat(f.path)
	return err == nil && !info.IsDir()
}

// ReadText returns the current content. A missing file reads as empty text.
func (f *File) ReadText() (string, error) {
	if buf, ok := f.buffer(); ok {
		return buf.Text(), nil
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.path, err)
	}
	return string(data), nil
}

// WriteText replaces the content, creating parent directories when the file
// is written to disk.
func (f *File) WriteText(text string) error {
	if buf, ok := f.buffer(); ok {
		if err := buf.SetText(text); err != nil {
			return fmt.Errorf("update buffer %s: %w", f.path, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), dirPerm); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.path, err)
	}
	if err := os.WriteFile(f.path, []byte(text), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// Ensure creates the file with an empty object if it does not exist yet.
func (f *File) Ensure() error {
	if f.Exists() {
		return nil
	}
	return f.WriteText(EmptyDocument)
}

// Load reads and decodes the current content. On ErrMalformed the returned
// map is empty but usable.
func (f *File) Load(c Codec) (*Messages, error) {
	text, err := f.ReadText()
	if err != nil {
		return nil, err
	}
	m, err := c.Decode(text)
	if err != nil {
		return m, fmt.Errorf("%s: %w", f.path, err)
	}
	return m, nil
}

// Store encodes m and writes it.
func (f *File) Store(c Codec, m *Messages) error {
	text, err := c.Encode(m)
	if err != nil {
		return fmt.Errorf("%s: %w", f.path, err)
	}
	return f.WriteText(text)
}

// Update runs a load-modify-store cycle inside a host transaction when the
// workspace supports it. A malformed file is edited as an empty map and
// reported through onMalformed. modify returns false to skip the store.
func (f *File) Update(c Codec, name string, modify func(*Messages) bool, onMalformed func(error)) error {
	run := func() error {
		if err := f.Ensure(); err != nil {
			return err
		}
		m, err := f.Load(c)
		if err != nil {
			if !errors.Is(err, ErrMalformed) {
				return err
			}
			if onMalformed != nil {
				onMalformed(err)
			}
		}
		if !modify(m) {
			return nil
		}
		return f.Store(c, m)
	}

	if tx, ok := f.ws.(Transactor); ok {
		return tx.Transact(name, run)
	}
	return run()
}
