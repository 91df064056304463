package resource

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map"
)

// Messages is an insertion-ordered key→value map of one resource file.
//
// Values are usually strings. Non-string entries (ARB "@key" metadata and
// the like) are kept as raw JSON so a rewrite does not lose them.
type Messages struct {
	om *orderedmap.OrderedMap
}

// NewMessages returns an empty map.
func NewMessages() *Messages {
	return &Messages{om: orderedmap.New()}
}

// Len returns the number of keys.
func (m *Messages) Len() int {
	return m.om.Len()
}

// Has reports whether key is present, whatever its value type.
func (m *Messages) Has(key string) bool {
	_, ok := m.om.Get(key)
	return ok
}

// Get returns the string value stored under key.
func (m *Messages) Get(key string) (string, bool) {
	v, ok := m.om.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set stores value under key. An existing key keeps its position; a new key
// is appended.
func (m *Messages) Set(key, value string) {
	m.om.Set(key, value)
}

// Add stores value only when key is absent and reports whether it did.
func (m *Messages) Add(key, value string) bool {
	if m.Has(key) {
		return false
	}
	m.om.Set(key, value)
	return true
}

func (m *Messages) setRaw(key string, raw json.RawMessage) {
	m.om.Set(key, raw)
}

// Keys returns all keys in file order.
func (m *Messages) Keys() []string {
	keys := make([]string, 0, m.om.Len())
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key.(string))
	}
	return keys
}

// FindKey returns the first key, in file order, whose string value equals value.
func (m *Messages) FindKey(value string) (string, bool) {
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		if s, ok := pair.Value.(string); ok && s == value {
			return pair.Key.(string), true
		}
	}
	return "", false
}

// each visits every entry in file order.
func (m *Messages) each(fn func(key string, value any)) {
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key.(string), pair.Value)
	}
}
