package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/qwstats/internal/metrics"
	"github.com/mauv0809/qwstats/internal/source"
	"github.com/mauv0809/qwstats/ktxstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(name string) string {
	return filepath.Join("..", "..", "ktxstats", "testdata", name)
}

func TestProcessor_Decode(t *testing.T) {
	t.Run("decodes files in input order", func(t *testing.T) {
		// Setup
		metr := metrics.NewMock()
		p := New(ktxstats.NewDecoder(ktxstats.WithMetrics(metr)), metr, WithWorkers(2))
		paths := []string{fixture("ctf_ctf5.json"), fixture("duel_bravado.json")}

		// Execute
		results, err := p.Decode(context.Background(), paths, ktxstats.RevisionCurrent)

		// Assert
		require.NoError(t, err)
		require.Len(t, results, 2)
		require.NoError(t, Errors(results))
		assert.Equal(t, paths[0], results[0].Path)
		assert.Equal(t, source.CompressionNone, results[0].Compression)
		assert.Equal(t, "ctf5", results[0].Document.(*ktxstats.Match).Map)
		assert.Equal(t, "bravado", results[1].Document.(*ktxstats.Match).Map)
		assert.Equal(t, 2, metr.Decoded(ktxstats.RevisionCurrent))
		assert.Equal(t, 2, metr.FilesRead(source.CompressionNone))
		assert.Equal(t, 0, metr.FilesFailed())
	})

	t.Run("legacy revision", func(t *testing.T) {
		metr := metrics.NewMock()
		p := New(ktxstats.NewDecoder(), metr)

		results, err := p.Decode(context.Background(), []string{fixture("legacy_dm2.json")}, ktxstats.RevisionLegacy)

		require.NoError(t, err)
		require.NoError(t, results[0].Err)
		legacy, ok := results[0].Document.(*ktxstats.LegacyMatch)
		require.True(t, ok)
		assert.Equal(t, "dm2", legacy.Map)
		assert.Equal(t, ktxstats.RevisionLegacy, results[0].Revision)
	})

	t.Run("failures are reported per file and do not stop the batch", func(t *testing.T) {
		// Setup
		dir := t.TempDir()
		broken := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(broken, []byte(`{"port":"x"}`), 0o644))
		missing := filepath.Join(dir, "missing.json")

		metr := metrics.NewMock()
		p := New(ktxstats.NewDecoder(ktxstats.WithMetrics(metr)), metr)
		paths := []string{missing, fixture("duel_bravado.json"), broken}

		// Execute
		results, err := p.Decode(context.Background(), paths, ktxstats.RevisionCurrent)

		// Assert
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.ErrorIs(t, results[0].Err, os.ErrNotExist)
		assert.Nil(t, results[0].Document)
		assert.NoError(t, results[1].Err)
		assert.ErrorIs(t, results[2].Err, ktxstats.ErrTypeMismatch)
		assert.Contains(t, results[2].Err.Error(), broken)

		joined := Errors(results)
		assert.ErrorIs(t, joined, os.ErrNotExist)
		assert.ErrorIs(t, joined, ktxstats.ErrTypeMismatch)
		assert.Equal(t, 2, metr.FilesFailed())
		assert.Equal(t, 2, metr.FilesRead(source.CompressionNone))
		assert.Equal(t, 1, metr.Failed(ktxstats.KindTypeMismatch))
	})

	t.Run("failures are left to the caller to report", func(t *testing.T) {
		var buf bytes.Buffer
		level := log.GetLevel()
		log.SetOutput(&buf)
		log.SetLevel(log.InfoLevel)
		t.Cleanup(func() {
			log.SetOutput(os.Stderr)
			log.SetLevel(level)
		})

		p := New(ktxstats.NewDecoder(), metrics.NewMock())
		results, err := p.Decode(context.Background(), []string{filepath.Join(t.TempDir(), "missing.json")}, ktxstats.RevisionCurrent)

		require.NoError(t, err)
		require.Error(t, results[0].Err)
		assert.NotContains(t, buf.String(), "missing.json")
		assert.Contains(t, buf.String(), "Stats processing finished.")
	})

	t.Run("custom reader and bounded concurrency", func(t *testing.T) {
		var inFlight, peak atomic.Int32
		read := func(path string) (*source.File, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			return &source.File{Path: path, Compression: source.CompressionGzip, Data: []byte(`{"map":"` + path + `"}`)}, nil
		}
		metr := metrics.NewMock()
		p := New(ktxstats.NewDecoder(), metr, WithReader(read), WithWorkers(3))

		var paths []string
		for i := range 20 {
			paths = append(paths, fmt.Sprintf("m%d", i))
		}
		results, err := p.Decode(context.Background(), paths, ktxstats.RevisionCurrent)

		require.NoError(t, err)
		for i, r := range results {
			assert.Equal(t, paths[i], r.Document.(*ktxstats.Match).Map)
		}
		assert.LessOrEqual(t, peak.Load(), int32(3))
		assert.Equal(t, 20, metr.FilesRead(source.CompressionGzip))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := New(ktxstats.NewDecoder(), metrics.NewMock())

		results, err := p.Decode(ctx, []string{fixture("duel_bravado.json")}, ktxstats.RevisionCurrent)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, results)
	})
}

func TestProcessor_Versions(t *testing.T) {
	dir := t.TempDir()
	noVersion := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(noVersion, []byte(`{}`), 0o644))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"version":`), 0o644))

	p := New(ktxstats.NewDecoder(), metrics.NewMock())
	results, err := p.Versions(context.Background(), []string{fixture("legacy_dm2.json"), noVersion, bad})

	require.NoError(t, err)
	assert.Equal(t, 3, results[0].Document)
	assert.Equal(t, 0, results[1].Document)
	assert.ErrorIs(t, results[2].Err, ktxstats.ErrSyntax)
}

func TestErrors(t *testing.T) {
	assert.NoError(t, Errors(nil))
	boom := errors.New("boom")
	err := Errors([]Result{{Path: "a"}, {Path: "b", Err: boom}})
	assert.ErrorIs(t, err, boom)
}
