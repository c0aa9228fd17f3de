package ui

import "github.com/qyinm/acadjobs/types"

// effects is the set of side effects a query transition requires.
type effects struct {
	fetchJobs bool
	scrollTop bool
}

// planEffects decides what must run when the query moves from prev to next.
// It is pure: the model applies the result. Stats are never refetched here;
// they are loaded once on start.
func planEffects(prev, next types.Query) effects {
	if prev == next {
		return effects{}
	}
	return effects{
		fetchJobs: true,
		scrollTop: prev.Page != next.Page,
	}
}

// resultState is the mutually exclusive state of the result panel.
type resultState int

const (
	stateLoading resultState = iota
	stateError
	stateEmpty
	statePopulated
)

func (s resultState) String() string {
	switch s {
	case stateLoading:
		return "loading"
	case stateError:
		return "error"
	case stateEmpty:
		return "empty"
	case statePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// deriveResultState picks what the result panel shows. Loading wins over a
// previous error; an error hides whatever stale jobs are still held.
func deriveResultState(loading bool, err error, jobs int) resultState {
	switch {
	case loading:
		return stateLoading
	case err != nil:
		return stateError
	case jobs == 0:
		return stateEmpty
	default:
		return statePopulated
	}
}
