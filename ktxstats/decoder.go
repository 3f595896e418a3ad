package ktxstats

import (
	"time"

	"github.com/charmbracelet/log"
)

// Metrics receives decode outcomes. Implementations must be safe for
// concurrent use.
type Metrics interface {
	IncDecoded(rev Revision)
	IncDecodeFailed(rev Revision, kind string)
	ObserveDecodeDuration(rev Revision, seconds float64)
}

type noopMetrics struct{}

func (noopMetrics) IncDecoded(Revision)                     {}
func (noopMetrics) IncDecodeFailed(Revision, string)        {}
func (noopMetrics) ObserveDecodeDuration(Revision, float64) {}

// Decoder wraps the package level decode functions with metrics and debug
// logging. The zero value is not usable; create one with NewDecoder. A
// Decoder is safe for concurrent use.
type Decoder struct {
	metrics Metrics
	logger  *log.Logger
}

type Option func(*Decoder)

// WithMetrics reports every decode to m.
func WithMetrics(m Metrics) Option {
	return func(d *Decoder) {
		if m != nil {
			d.metrics = m
		}
	}
}

// WithLogger replaces the default charmbracelet logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		metrics: noopMetrics{},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) Decode(data []byte) (*Match, error) {
	return observe(d, RevisionCurrent, data, Decode)
}

func (d *Decoder) DecodeLegacy(data []byte) (*LegacyMatch, error) {
	return observe(d, RevisionLegacy, data, DecodeLegacy)
}

// DecodeRevision decodes data as rev and returns a *Match or *LegacyMatch.
func (d *Decoder) DecodeRevision(data []byte, rev Revision) (any, error) {
	switch rev {
	case RevisionLegacy:
		m, err := d.DecodeLegacy(data)
		if err != nil {
			return nil, err
		}
		return m, nil
	case RevisionCurrent:
		m, err := d.Decode(data)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return DecodeRevision(data, rev)
}

func observe[T Document](d *Decoder, rev Revision, data []byte, decode func([]byte) (*T, error)) (*T, error) {
	start := time.Now()
	doc, err := decode(data)
	d.metrics.ObserveDecodeDuration(rev, time.Since(start).Seconds())
	if err != nil {
		kind := ErrorKind(err)
		d.metrics.IncDecodeFailed(rev, kind)
		d.logger.Debug("Failed to decode stats document", "revision", rev, "kind", kind, "bytes", len(data), "error", err)
		return nil, err
	}
	d.metrics.IncDecoded(rev)
	d.logger.Debug("Decoded stats document", "revision", rev, "bytes", len(data), "duration", time.Since(start))
	return doc, nil
}
