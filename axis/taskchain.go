package axis

import "github.com/pkg/errors"

// taskChainCapacity bounds the pending-state queue. The longest composable
// chain (full startup with homing plus the idle and sentinel entries) is
// seven states.
const taskChainCapacity = 8

var errTaskChainFull = errors.New("task chain capacity exceeded")

// taskChain is a bounded queue of pending states, always terminated by a
// StateUndefined sentinel. Only the state-machine goroutine touches it.
type taskChain struct {
	states [taskChainCapacity]State
	n      int
}

// push appends a state, failing when the chain is full.
func (tc *taskChain) push(s State) error {
	if tc.n >= taskChainCapacity {
		return errTaskChainFull
	}
	tc.states[tc.n] = s
	tc.n++
	return nil
}

// head returns the active state, StateUndefined when the chain is empty.
func (tc *taskChain) head() State {
	if tc.n == 0 {
		return StateUndefined
	}
	return tc.states[0]
}

// setHead overwrites the active state in place.
func (tc *taskChain) setHead(s State) {
	if tc.n == 0 {
		tc.states[0] = s
		tc.n = 1
		return
	}
	tc.states[0] = s
}

// advance drops the head after a successful state execution.
func (tc *taskChain) advance() {
	if tc.n == 0 {
		return
	}
	copy(tc.states[:], tc.states[1:tc.n])
	tc.n--
}

// resetTo discards the chain and replaces it with the given states. Used to
// abandon the remainder of a chain after a failed state.
func (tc *taskChain) resetTo(states ...State) {
	tc.n = 0
	for _, s := range states {
		// capacity is checked by the caller's construction; resetTo is only
		// used with short fixed sequences
		if tc.n < taskChainCapacity {
			tc.states[tc.n] = s
			tc.n++
		}
	}
}

// snapshot returns the chain contents, sentinel included.
func (tc *taskChain) snapshot() []State {
	out := make([]State, tc.n)
	copy(out, tc.states[:tc.n])
	return out
}
