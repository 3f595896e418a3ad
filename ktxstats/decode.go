// Package ktxstats decodes the statistics documents KTX servers write at the
// end of a QuakeWorld match.
//
// Two document revisions are modeled as independent types: Match for the
// current revision and LegacyMatch for the earlier one. The caller picks the
// revision; the version field carries the same value in both and cannot be
// used to tell them apart.
//
// Decoding is lenient about presence and strict about kinds. Missing keys
// leave zero values, unknown keys are ignored, and a value of the wrong
// JSON kind fails the whole decode with a *TypeMismatchError. Malformed
// input fails with a *SyntaxError.
package ktxstats

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Revision selects the document shape to decode against.
type Revision string

const (
	RevisionCurrent Revision = "current"
	RevisionLegacy  Revision = "legacy"
)

// ParseRevision parses a revision name, ignoring case and surrounding space.
func ParseRevision(s string) (Revision, error) {
	switch Revision(strings.ToLower(strings.TrimSpace(s))) {
	case RevisionCurrent:
		return RevisionCurrent, nil
	case RevisionLegacy:
		return RevisionLegacy, nil
	}
	return "", fmt.Errorf("ktxstats: unknown revision %q (want %q or %q)", s, RevisionCurrent, RevisionLegacy)
}

// Document is the set of top-level decode targets.
type Document interface {
	Match | LegacyMatch
}

// Decode decodes a current revision document.
func Decode(data []byte) (*Match, error) {
	return DecodeAs[Match](data)
}

// DecodeLegacy decodes an earlier revision document.
func DecodeLegacy(data []byte) (*LegacyMatch, error) {
	return DecodeAs[LegacyMatch](data)
}

// DecodeAs decodes data into a new T. On error the result is nil; a
// partially decoded document is never returned.
func DecodeAs[T Document](data []byte) (*T, error) {
	doc := new(T)
	if err := unmarshal(data, doc); err != nil {
		return nil, err
	}
	if n, ok := any(doc).(interface{ normalize() }); ok {
		n.normalize()
	}
	return doc, nil
}

// DecodeRevision decodes data as rev and returns a *Match or *LegacyMatch.
func DecodeRevision(data []byte, rev Revision) (any, error) {
	switch rev {
	case RevisionCurrent:
		m, err := Decode(data)
		if err != nil {
			return nil, err
		}
		return m, nil
	case RevisionLegacy:
		m, err := DecodeLegacy(data)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("ktxstats: unknown revision %q", rev)
}

// PeekVersion returns the version field of a document without decoding the
// rest of it. A missing version yields 0.
func PeekVersion(data []byte) (int, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := unmarshal(data, &probe); err != nil {
		return 0, err
	}
	return probe.Version, nil
}

// unmarshal decodes data into v. Keys must match field names exactly; a key
// differing only in case is treated as unknown and ignored.
func unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(maskInexactKeys(data, reflect.TypeOf(v)), v); err != nil {
		return translateError(data, err)
	}
	return nil
}
