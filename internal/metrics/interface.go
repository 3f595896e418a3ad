package metrics

import "github.com/mauv0809/qwstats/ktxstats"

// Metrics is the decode instrumentation consumed by ktxstats.Decoder, plus
// the CLI level counters for files read.
// This decouples the commands from the specific metrics implementation.
type Metrics interface {
	ktxstats.Metrics
	IncFilesRead(compression string)
	IncFilesFailed()
}
