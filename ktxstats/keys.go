package ktxstats

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

var (
	unmarshalerType = reflect.TypeFor[json.Unmarshaler]()
	fieldCache      sync.Map // reflect.Type -> map[string]reflect.Type
)

// maskInexactKeys blanks every object key that is not the exact JSON name of
// a field of t, so encoding/json cannot bind it through its case-insensitive
// fallback. Masked keys keep their length and error offsets stay valid. The
// input is never modified; it is returned as is when nothing was masked or
// when it is not valid JSON.
func maskInexactKeys(data []byte, t reflect.Type) []byte {
	if !json.Valid(data) {
		return data
	}
	m := &keyMasker{dec: json.NewDecoder(bytes.NewReader(data)), data: data}
	if err := m.value(t); err != nil {
		return data
	}
	return m.data
}

type keyMasker struct {
	dec    *json.Decoder
	data   []byte
	copied bool
}

// value consumes one JSON value expected to decode into t. A nil t means the
// value is not bound to anything and is only skipped.
func (m *keyMasker) value(t reflect.Type) error {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && reflect.PointerTo(t).Implements(unmarshalerType) {
		t = nil
	}

	tok, err := m.dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}

	if delim == '{' {
		var fields map[string]reflect.Type
		if t != nil && t.Kind() == reflect.Struct {
			fields = fieldTypes(t)
		}
		for m.dec.More() {
			key, err := m.dec.Token()
			if err != nil {
				return err
			}
			ft, known := fields[key.(string)]
			if fields != nil && !known {
				m.maskKey()
			}
			if err := m.value(ft); err != nil {
				return err
			}
		}
	} else {
		var elem reflect.Type
		if t != nil && (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) {
			elem = t.Elem()
		}
		for m.dec.More() {
			if err := m.value(elem); err != nil {
				return err
			}
		}
	}
	_, err = m.dec.Token()
	return err
}

// maskKey replaces the contents of the key just read with spaces.
func (m *keyMasker) maskKey() {
	end := int(m.dec.InputOffset()) - 1
	for end > 0 && m.data[end] != '"' {
		end--
	}
	start := end - 1
	for start > 0 && (m.data[start] != '"' || escaped(m.data, start)) {
		start--
	}
	if !m.copied {
		m.data = bytes.Clone(m.data)
		m.copied = true
	}
	for i := start + 1; i < end; i++ {
		m.data[i] = ' '
	}
}

// escaped reports whether data[i] is preceded by an odd number of
// backslashes.
func escaped(data []byte, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && data[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// fieldTypes maps the JSON names of the exported fields of struct type t to
// their types.
func fieldTypes(t reflect.Type) map[string]reflect.Type {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]reflect.Type)
	}
	fields := make(map[string]reflect.Type, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[name] = f.Type
	}
	fieldCache.Store(t, fields)
	return fields
}
