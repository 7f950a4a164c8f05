package cpu

// State is the run state of the machine.
type State int

// List of valid State values.
const (
	// Running executes one instruction per step
	Running State = iota

	// AwaitingKey is entered by FX0A. No instruction is fetched until a key
	// press edge is seen on a later tick
	AwaitingKey

	// Paused stops execution and timer decay until toggled again
	Paused

	// Stopped is terminal
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// State returns the current run state.
func (emu *EMU) State() State {
	return emu.state
}

// TogglePause pauses a running (or key waiting) machine and resumes a paused
// one into the state it was paused from. Returns the new state.
func (emu *EMU) TogglePause() State {
	switch emu.state {
	case Running, AwaitingKey:
		emu.pausedFrom = emu.state
		emu.state = Paused
	case Paused:
		emu.state = emu.pausedFrom
	}
	return emu.state
}

// Stop the machine. There is no way back from Stopped.
func (emu *EMU) Stop() {
	emu.state = Stopped
}

func (emu *EMU) awaitKey(x uint8) {
	emu.state = AwaitingKey
	emu.waitReg = x
	emu.waitArmed = false
}

// checkKeyWait finishes an FX0A wait if a key went down between the previous
// keypad snapshot and the current one. The snapshot must have been taken
// after the wait started.
func (emu *EMU) checkKeyWait() {
	if !emu.waitArmed {
		return
	}
	for k := range emu.keyState {
		if emu.keyState[k] && !emu.prevKeys[k] {
			emu.V[emu.waitReg] = uint8(k)
			emu.state = Running
			return
		}
	}
}
