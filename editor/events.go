package editor

import (
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/stats"
)

// ChangeMsg is emitted after the document changes, whatever caused the
// change: typing, a command, or a new controlled value.
type ChangeMsg struct {
	// ContainerID tells apart several editors in one program.
	ContainerID string
	Text        string
	Statistics  stats.Statistics
}

func changeMsg(id string, u engine.Update) ChangeMsg {
	return ChangeMsg{ContainerID: id, Text: u.State.Text(), Statistics: stats.FromUpdate(u)}
}
