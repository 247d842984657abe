package script

import (
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/contour/pkg/voxelmap"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

type evalResult struct {
	edits  []voxelmap.Edit
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, but returns a timeout error
// if the evaluation exceeds timeout. Results from a generation older than
// currentGen are discarded.
//
// On timeout the evaluating goroutine may still be running; its result is
// dropped when it completes.
func waitWithTimeout(
	ch <-chan evalResult,
	timeout time.Duration,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) ([]voxelmap.Edit, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, errors.New("evaluation superseded by newer request").
				WithTag("generation", gen).
				WithTag("current", current)
		}
		return res.edits, res.errors, res.err

	case <-timer.C:
		return nil, nil, errors.New("evaluation timed out").
			WithTag("timeout", timeout.String())
	}
}
