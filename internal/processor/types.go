package processor

import (
	"github.com/mauv0809/qwstats/internal/metrics"
	"github.com/mauv0809/qwstats/ktxstats"
)

// Processor reads and decodes batches of stats files.
type Processor struct {
	decoder Decoder
	metrics metrics.Metrics
	read    ReadFunc
	workers int
}

// Result is the outcome for one input file. Exactly one of Document and Err
// is set.
type Result struct {
	Path        string
	Compression string
	Revision    ktxstats.Revision
	// Document is a *ktxstats.Match or *ktxstats.LegacyMatch for Decode and
	// an int for Versions.
	Document any
	Err      error
}

type Option func(*Processor)
