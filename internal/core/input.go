package core

// Command is an abstract player intent produced by the input translator.
// The simulation never sees physical keys.
type Command int

const (
	CommandNone      Command = iota
	CommandMoveLeft          // A, Left arrow
	CommandMoveRight         // D, Right arrow
	CommandFire              // Space
	CommandPause             // P, Escape while playing
	CommandUnpause           // P, Escape while paused
	CommandRestart           // R - leave game over / start a new game
	CommandStart             // Enter - start from the menu
)

// Commands lists every command in the order the simulation handles them.
var Commands = []Command{
	CommandMoveLeft,
	CommandMoveRight,
	CommandFire,
	CommandPause,
	CommandUnpause,
	CommandRestart,
	CommandStart,
}

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandMoveLeft:
		return "MoveLeft"
	case CommandMoveRight:
		return "MoveRight"
	case CommandFire:
		return "Fire"
	case CommandPause:
		return "Pause"
	case CommandUnpause:
		return "Unpause"
	case CommandRestart:
		return "Restart"
	case CommandStart:
		return "Start"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of commands active during one simulation tick.
// It is a bit set, so it is comparable, cheap to copy and has a stable
// encoding for replays.
type InputFrame uint16

// NewInputFrame creates a frame holding the given commands.
func NewInputFrame(cmds ...Command) InputFrame {
	var f InputFrame
	for _, c := range cmds {
		f.Set(c)
	}
	return f
}

// Set marks a command as active for this frame.
func (f *InputFrame) Set(c Command) {
	if c <= CommandNone {
		return
	}
	*f |= 1 << uint(c)
}

// Has returns true if the given command is active this frame.
func (f InputFrame) Has(c Command) bool {
	if c <= CommandNone {
		return false
	}
	return f&(1<<uint(c)) != 0
}

// Clear resets all commands for the next frame.
func (f *InputFrame) Clear() {
	*f = 0
}

// Empty reports whether no command is set.
func (f InputFrame) Empty() bool {
	return f == 0
}

// List returns the active commands in handling order.
func (f InputFrame) List() []Command {
	var out []Command
	for _, c := range Commands {
		if f.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
