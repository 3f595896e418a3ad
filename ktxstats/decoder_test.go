package ktxstats

import (
	"bytes"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMetrics struct {
	mu        sync.Mutex
	decoded   map[Revision]int
	failed    map[string]int
	durations int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{decoded: map[Revision]int{}, failed: map[string]int{}}
}

func (f *fakeMetrics) IncDecoded(rev Revision) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decoded[rev]++
}

func (f *fakeMetrics) IncDecodeFailed(rev Revision, kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed[string(rev)+"/"+kind]++
}

func (f *fakeMetrics) ObserveDecodeDuration(rev Revision, seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.durations++
}

func TestDecoder(t *testing.T) {
	t.Run("successful decodes are counted per revision", func(t *testing.T) {
		m := newFakeMetrics()
		d := NewDecoder(WithMetrics(m))

		match, err := d.Decode(readFixture(t, "ctf_ctf5.json"))
		require.NoError(t, err)
		assert.Equal(t, "ctf5", match.Map)

		legacy, err := d.DecodeLegacy(readFixture(t, "legacy_dm2.json"))
		require.NoError(t, err)
		assert.Equal(t, "dm2", legacy.Map)

		assert.Equal(t, 1, m.decoded[RevisionCurrent])
		assert.Equal(t, 1, m.decoded[RevisionLegacy])
		assert.Equal(t, 2, m.durations)
		assert.Empty(t, m.failed)
	})

	t.Run("failures are counted by kind and logged", func(t *testing.T) {
		m := newFakeMetrics()
		var buf bytes.Buffer
		logger := log.New(&buf)
		logger.SetLevel(log.DebugLevel)
		d := NewDecoder(WithMetrics(m), WithLogger(logger))

		_, err := d.Decode([]byte(`{"port":"x"}`))
		assert.ErrorIs(t, err, ErrTypeMismatch)
		_, err = d.DecodeLegacy([]byte(`{`))
		assert.ErrorIs(t, err, ErrSyntax)

		assert.Equal(t, 1, m.failed["current/type_mismatch"])
		assert.Equal(t, 1, m.failed["legacy/syntax"])
		assert.Empty(t, m.decoded)
		assert.Contains(t, buf.String(), "Failed to decode stats document")
	})

	t.Run("decode revision dispatches to the instrumented path", func(t *testing.T) {
		m := newFakeMetrics()
		d := NewDecoder(WithMetrics(m))

		v, err := d.DecodeRevision(readFixture(t, "duel_bravado.json"), RevisionLegacy)
		require.NoError(t, err)
		_, ok := v.(*LegacyMatch)
		assert.True(t, ok)
		assert.Equal(t, 1, m.decoded[RevisionLegacy])

		v, err = d.DecodeRevision([]byte(`{}`), Revision("nope"))
		assert.Error(t, err)
		assert.Nil(t, v)
	})

	t.Run("nil options keep defaults", func(t *testing.T) {
		d := NewDecoder(WithMetrics(nil), WithLogger(nil))
		_, err := d.Decode([]byte(`{}`))
		assert.NoError(t, err)
	})

	t.Run("concurrent use", func(t *testing.T) {
		m := newFakeMetrics()
		d := NewDecoder(WithMetrics(m))
		data := readFixture(t, "duel_bravado.json")

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				match, err := d.Decode(data)
				assert.NoError(t, err)
				assert.Len(t, match.Players, 2)
			}()
		}
		wg.Wait()
		assert.Equal(t, 16, m.decoded[RevisionCurrent])
	})
}
