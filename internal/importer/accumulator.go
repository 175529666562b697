package importer

import (
	"sync"

	"github.com/fdonboard/backend/internal/model"
)

// Accumulator tallies row outcomes for one upload.
type Accumulator struct {
	mu        sync.Mutex
	succeeded int
	failed    int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

func (a *Accumulator) Succeeded() {
	a.mu.Lock()
	a.succeeded++
	a.mu.Unlock()
}

func (a *Accumulator) Failed() {
	a.mu.Lock()
	a.failed++
	a.mu.Unlock()
}

// Counters returns the totals. TotalRows always equals successes plus failures.
func (a *Accumulator) Counters() model.UploadCounters {
	a.mu.Lock()
	defer a.mu.Unlock()
	return model.UploadCounters{
		TotalRows:      a.succeeded + a.failed,
		SuccessfulRows: a.succeeded,
		FailedRows:     a.failed,
	}
}
