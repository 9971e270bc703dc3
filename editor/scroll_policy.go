package editor

// ScrollPolicy controls whether the mouse wheel may scroll the editor away
// from the cursor.
type ScrollPolicy int

const (
	// ScrollAllowManual lets the wheel scroll without moving the cursor.
	ScrollAllowManual ScrollPolicy = iota
	// ScrollFollowCursorOnly keeps scrolling cursor-driven. Wheel events are
	// ignored.
	ScrollFollowCursorOnly
)

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3
