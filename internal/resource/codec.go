package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrMalformed is returned when existing content is not a JSON object.
var ErrMalformed = errors.New("malformed resource file")

// EmptyDocument is the content of a newly created resource file.
const EmptyDocument = "{}\n"

// Codec reads and writes the resource file format: a pretty-printed JSON
// object with non-ASCII characters left verbatim. The zero value is not
// usable; use NewCodec. A Codec has no mutable state and is safe to share.
type Codec struct {
	opts pretty.Options
}

// NewCodec returns a codec indenting with indent.
func NewCodec(indent string) Codec {
	return Codec{opts: pretty.Options{
		Width:    80,
		Prefix:   "",
		Indent:   indent,
		SortKeys: false,
	}}
}

// DefaultCodec indents with two spaces.
var DefaultCodec = NewCodec("  ")

// Decode parses text into Messages in document order. Blank text decodes to
// an empty map. Anything that is not a JSON object yields ErrMalformed along
// with an empty, usable map.
func (c Codec) Decode(text string) (*Messages, error) {
	m := NewMessages()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}
	if !gjson.Valid(text) {
		return m, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	doc := gjson.Parse(text)
	if !doc.IsObject() {
		return m, fmt.Errorf("%w: top level is %s, not an object", ErrMalformed, doc.Type)
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			m.Set(key.String(), value.String())
		} else {
			m.setRaw(key.String(), json.RawMessage(value.Raw))
		}
		return true
	})

	return m, nil
}

// Encode serializes m. The output always ends with a newline.
func (c Codec) Encode(m *Messages) (string, error) {
	var buf bytes.Buffer
	var encErr error

	buf.WriteByte('{')
	first := true
	m.each(func(key string, value any) {
		if encErr != nil {
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		if err := writeString(&buf, key); err != nil {
			encErr = fmt.Errorf("encode key %q: %w", key, err)
			return
		}
		buf.WriteByte(':')

		switch v := value.(type) {
		case string:
			if err := writeString(&buf, v); err != nil {
				encErr = fmt.Errorf("encode value of %q: %w", key, err)
			}
		case json.RawMessage:
			buf.Write(v)
		default:
			encErr = fmt.Errorf("encode value of %q: unsupported type %T", key, value)
		}
	})
	buf.WriteByte('}')

	if encErr != nil {
		return "", encErr
	}

	out := string(pretty.PrettyOptions(buf.Bytes(), &c.opts))
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// writeString appends s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
