package axis

import (
	"testing"

	"go.viam.com/test"
)

func TestTaskChainPushAndHead(t *testing.T) {
	var tc taskChain
	test.That(t, tc.head(), test.ShouldEqual, StateUndefined)

	test.That(t, tc.push(StateMotorCalibration), test.ShouldBeNil)
	test.That(t, tc.push(StateIdle), test.ShouldBeNil)
	test.That(t, tc.push(StateUndefined), test.ShouldBeNil)
	test.That(t, tc.head(), test.ShouldEqual, StateMotorCalibration)
	test.That(t, tc.snapshot(), test.ShouldResemble,
		[]State{StateMotorCalibration, StateIdle, StateUndefined})
}

func TestTaskChainOverflow(t *testing.T) {
	var tc taskChain
	for i := 0; i < taskChainCapacity; i++ {
		test.That(t, tc.push(StateIdle), test.ShouldBeNil)
	}
	test.That(t, tc.push(StateIdle), test.ShouldEqual, errTaskChainFull)
	test.That(t, len(tc.snapshot()), test.ShouldEqual, taskChainCapacity)
}

func TestTaskChainAdvance(t *testing.T) {
	var tc taskChain
	test.That(t, tc.push(StateHoming), test.ShouldBeNil)
	test.That(t, tc.push(StateClosedLoopControl), test.ShouldBeNil)
	test.That(t, tc.push(StateIdle), test.ShouldBeNil)
	test.That(t, tc.push(StateUndefined), test.ShouldBeNil)

	tc.advance()
	test.That(t, tc.head(), test.ShouldEqual, StateClosedLoopControl)
	tc.advance()
	test.That(t, tc.head(), test.ShouldEqual, StateIdle)
	tc.advance()
	test.That(t, tc.head(), test.ShouldEqual, StateUndefined)
	tc.advance()
	// empty chain reads as the undefined sentinel
	test.That(t, tc.head(), test.ShouldEqual, StateUndefined)
	tc.advance()
	test.That(t, tc.head(), test.ShouldEqual, StateUndefined)
}

func TestTaskChainSetHeadAndReset(t *testing.T) {
	var tc taskChain
	test.That(t, tc.push(StateClosedLoopControl), test.ShouldBeNil)
	test.That(t, tc.push(StateIdle), test.ShouldBeNil)

	tc.setHead(StateUndefined)
	test.That(t, tc.head(), test.ShouldEqual, StateUndefined)
	test.That(t, len(tc.snapshot()), test.ShouldEqual, 2)

	tc.resetTo(StateIdle, StateUndefined)
	test.That(t, tc.snapshot(), test.ShouldResemble, []State{StateIdle, StateUndefined})

	var empty taskChain
	empty.setHead(StateIdle)
	test.That(t, empty.head(), test.ShouldEqual, StateIdle)
}
