// Package output renders decoded stats documents for the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/mauv0809/qwstats/ktxstats"
	"github.com/vmihailenco/msgpack/v5"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatText    Format = "text"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatMsgpack, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json, msgpack or text)", s)
}

func init() {
	// MessagePack carries the match date as a native timestamp extension.
	msgpack.Register(ktxstats.Timestamp{},
		func(e *msgpack.Encoder, v reflect.Value) error {
			return e.EncodeTime(v.Interface().(ktxstats.Timestamp).Time)
		},
		func(d *msgpack.Decoder, v reflect.Value) error {
			tm, err := d.DecodeTime()
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(ktxstats.Timestamp{Time: tm.UTC()}))
			return nil
		},
	)
}

// Write encodes doc, a *ktxstats.Match or *ktxstats.LegacyMatch, to w.
func Write(w io.Writer, format Format, doc any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		// Field names match the JSON document.
		enc.SetCustomStructTag("json")
		return enc.Encode(doc)
	case FormatText:
		return WriteSummary(w, doc)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// NewMsgpackDecoder returns a decoder reading documents written by Write in
// FormatMsgpack.
func NewMsgpackDecoder(r io.Reader) *msgpack.Decoder {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	return dec
}
