// Package resourcetest provides an in-memory host workspace for tests.
package resourcetest

import (
	"errors"
	"sync"

	"intl-extract/internal/resource"
)

// ErrReadOnly is returned by SetText on a buffer opened read-only.
var ErrReadOnly = errors.New("buffer is read-only")

// Buffer is an in-memory live document.
type Buffer struct {
	mu       sync.Mutex
	text     string
	readOnly bool
	edits    int
}

func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

func (b *Buffer) SetText(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.readOnly {
		return ErrReadOnly
	}
	b.text = text
	b.edits++
	return nil
}

// Edits returns how many times the buffer was written.
func (b *Buffer) Edits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.edits
}

// Workspace maps paths to open buffers and records transactions.
type Workspace struct {
	mu           sync.Mutex
	buffers      map[string]*Buffer
	transactions []string
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{buffers: make(map[string]*Buffer)}
}

// Open registers a live buffer for path with the given content.
func (w *Workspace) Open(path, text string) *Buffer {
	w.mu.Lock()
	defer w.mu.Unlock()
	b := &Buffer{text: text}
	w.buffers[path] = b
	return b
}

// OpenReadOnly registers a buffer that rejects edits.
func (w *Workspace) OpenReadOnly(path, text string) *Buffer {
	b := w.Open(path, text)
	b.readOnly = true
	return b
}

func (w *Workspace) Buffer(path string) (resource.Buffer, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.buffers[path]
	if !ok {
		return nil, false
	}
	return b, true
}

func (w *Workspace) Transact(name string, fn func() error) error {
	w.mu.Lock()
	w.transactions = append(w.transactions, name)
	w.mu.Unlock()
	return fn()
}

// Transactions returns the names of transactions run so far.
func (w *Workspace) Transactions() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.transactions...)
}
