package processor

import (
	"github.com/mauv0809/qwstats/internal/source"
	"github.com/mauv0809/qwstats/ktxstats"
)

// Decoder defines the decode operations required by the processor.
// *ktxstats.Decoder satisfies it.
type Decoder interface {
	DecodeRevision(data []byte, rev ktxstats.Revision) (any, error)
}

// ReadFunc loads a stats file. source.ReadFile is used unless replaced with
// WithReader.
type ReadFunc func(path string) (*source.File, error)
