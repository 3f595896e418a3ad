package ktxstats

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// Layouts accepted for the match date, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	zoneNameLayout,
}

// zoneNameLayout accepts only UTC and GMT; time.Parse gives other
// abbreviations a made up zero offset.
const zoneNameLayout = "2006-01-02 15:04:05 MST"

var timestampType = reflect.TypeOf(Timestamp{})

// Timestamp is the instant a match ended, always stored in UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(b), Type: timestampType}
	}
	parsed, err := parseTimestamp(s)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + string(b), Type: timestampType}
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func parseTimestamp(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil && layout == zoneNameLayout {
			if name, offset := parsed.Zone(); offset != 0 || (name != "UTC" && name != "GMT") {
				err = fmt.Errorf("unsupported time zone %q", name)
			}
		}
		if err == nil {
			return parsed.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// jsonKind names the kind of a raw JSON value the way encoding/json does in
// its type errors.
func jsonKind(b []byte) string {
	if len(b) == 0 {
		return "empty"
	}
	switch b[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
