package sim

// Capture is whether the simulation currently owns player input.
type Capture int

const (
	Unlocked Capture = iota
	Locked
)

// String returns a human-readable name for the capture state.
func (c Capture) String() string {
	if c == Locked {
		return "locked"
	}
	return "unlocked"
}
