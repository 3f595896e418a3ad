package ktxstats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrSyntax       = errors.New("ktxstats: malformed JSON")
	ErrTypeMismatch = errors.New("ktxstats: type mismatch")
)

// Error kinds reported to Metrics.
const (
	KindSyntax       = "syntax"
	KindTypeMismatch = "type_mismatch"
	KindOther        = "other"
)

// SyntaxError reports input that is not well-formed JSON. Offset is the
// number of bytes read before the error; Line and Column are 1-based and
// derived from it.
type SyntaxError struct {
	Offset int64
	Line   int
	Column int
	Msg    string
	err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ktxstats: invalid JSON at line %d, column %d (offset %d): %s", e.Line, e.Column, e.Offset, e.Msg)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

func (e *SyntaxError) Unwrap() error { return e.err }

// TypeMismatchError reports a JSON value whose kind does not fit the field it
// decodes into. Path is the dotted chain of JSON keys from the document root,
// array indexes omitted, e.g. "players.ctf.runes". An empty Path means the
// document root.
type TypeMismatchError struct {
	Path     string
	Expected string
	Actual   string
	err      error
}

func (e *TypeMismatchError) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("ktxstats: field %s: expected %s, got %s", path, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

func (e *TypeMismatchError) Unwrap() error { return e.err }

// ErrorKind classifies err as one of KindSyntax, KindTypeMismatch or
// KindOther.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrSyntax):
		return KindSyntax
	case errors.Is(err, ErrTypeMismatch):
		return KindTypeMismatch
	default:
		return KindOther
	}
}

func translateError(data []byte, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := position(data, syntaxErr.Offset)
		return &SyntaxError{
			Offset: syntaxErr.Offset,
			Line:   line,
			Column: col,
			Msg:    syntaxErr.Error(),
			err:    err,
		}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &TypeMismatchError{
			Path:     typeErr.Field,
			Expected: expectedKind(typeErr.Type),
			Actual:   typeErr.Value,
			err:      err,
		}
	}
	return fmt.Errorf("ktxstats: decoding document: %w", err)
}

// position converts a json.SyntaxError offset, which counts the offending
// byte, into the 1-based line and column of that byte.
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}
	head := data[:offset]
	line := bytes.Count(head, []byte{'\n'}) + 1
	col := len(head) - bytes.LastIndexByte(head, '\n') - 1
	return line, col
}

func expectedKind(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	switch t {
	case timestampType:
		return "RFC 3339 timestamp string"
	case runesType:
		return "array of 4 numbers"
	}
	switch t.Kind() {
	case reflect.Pointer:
		return expectedKind(t.Elem())
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return t.String()
	}
}
