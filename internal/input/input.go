package input

// Action is a logical input the render loop reacts to. Physical key
// bindings live with the window code.
type Action int

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	ToggleFlashlight
	Quit
)

func (a Action) String() string {
	switch a {
	case MoveForward:
		return "move_forward"
	case MoveBackward:
		return "move_backward"
	case MoveLeft:
		return "move_left"
	case MoveRight:
		return "move_right"
	case ToggleFlashlight:
		return "toggle_flashlight"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Toggle is an on/off switch driven by a key that is sampled once per
// frame. It flips only on the rising edge: the latch is set on press and
// cleared on release, so a held key produces a single flip.
type Toggle struct {
	on      bool
	latched bool
}

// Update feeds the current key state and reports whether the toggle flipped.
func (t *Toggle) Update(pressed bool) bool {
	if !pressed {
		t.latched = false
		return false
	}
	if t.latched {
		return false
	}
	t.latched = true
	t.on = !t.on
	return true
}

func (t *Toggle) On() bool {
	return t.on
}

func (t *Toggle) Set(on bool) {
	t.on = on
}

// MouseTracker turns absolute cursor positions into per-event offsets.
// The first sample only records the position so capturing the cursor does
// not produce a jump.
type MouseTracker struct {
	LastX, LastY float64
	seen         bool
}

func NewMouseTracker(x, y float64) *MouseTracker {
	return &MouseTracker{LastX: x, LastY: y}
}

// Offsets returns the x and y deltas since the previous sample. The y
// offset is reversed since window coordinates grow downwards.
func (m *MouseTracker) Offsets(x, y float64) (float32, float32) {
	if !m.seen {
		m.LastX = x
		m.LastY = y
		m.seen = true
	}

	xoffset := x - m.LastX
	yoffset := m.LastY - y
	m.LastX = x
	m.LastY = y
	return float32(xoffset), float32(yoffset)
}

// Reset forgets the last sample, e.g. after the window lost the cursor.
func (m *MouseTracker) Reset() {
	m.seen = false
}
