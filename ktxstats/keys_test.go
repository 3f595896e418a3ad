package ktxstats

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskInexactKeys(t *testing.T) {
	matchType := reflect.TypeOf(&Match{})

	t.Run("keeps length and leaves the input alone", func(t *testing.T) {
		in := []byte(`{"MAP":"dm4","map":"dm6"}`)
		orig := string(in)

		out := maskInexactKeys(in, matchType)
		assert.Equal(t, orig, string(in))
		assert.Len(t, out, len(in))
		assert.Equal(t, `{"   ":"dm4","map":"dm6"}`, string(out))
	})

	t.Run("no copy when every key is exact", func(t *testing.T) {
		in := []byte(`{"map":"dm4","players":[{"name":"a"}]}`)
		out := maskInexactKeys(in, matchType)
		assert.Same(t, &in[0], &out[0])
	})

	t.Run("unbound values are skipped whole", func(t *testing.T) {
		in := []byte(`{"extra":{"Map":{"MAP":1}},"date":"2024-05-20T19:35:42Z","Tl":[{"A":1}]}`)
		out := maskInexactKeys(in, matchType)
		assert.Equal(t, `{"     ":{"Map":{"MAP":1}},"date":"2024-05-20T19:35:42Z","  ":[{"A":1}]}`, string(out))
	})

	t.Run("invalid input is returned unchanged", func(t *testing.T) {
		in := []byte(`{"MAP":`)
		assert.Equal(t, in, maskInexactKeys(in, matchType))
	})
}
