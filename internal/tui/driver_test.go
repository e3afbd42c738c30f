package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDrainDepth bounds command draining so a self-rescheduling Cmd cannot
// loop forever.
const maxDrainDepth = 50

// cmdTimeout separates instant Cmds (fetches against fakes, message
// factories) from timer Cmds such as spinner and toast ticks, which are
// dropped.
const cmdTimeout = 50 * time.Millisecond

// driver runs a tea.Model synchronously: every message goes through Update
// and the returned Cmds are executed and fed back until none are left.
type driver struct {
	t     *testing.T
	model tea.Model
}

func newDriver(t *testing.T, model tea.Model) *driver {
	t.Helper()
	d := &driver{t: t, model: model}
	d.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return d
}

func (d *driver) DrainInit() {
	d.t.Helper()
	d.drain(d.model.Init(), 0)
}

func (d *driver) Send(msg tea.Msg) {
	d.t.Helper()
	updated, cmd := d.model.Update(msg)
	d.model = updated
	d.drain(cmd, 0)
}

func (d *driver) Press(r rune) {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *driver) PressType(k tea.KeyType) {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *driver) Model() Model {
	return d.model.(Model)
}

func (d *driver) drain(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil || depth >= maxDrainDepth {
		return
	}

	msg := runWithTimeout(cmd)
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		return
	default:
		updated, next := d.model.Update(msg)
		d.model = updated
		d.drain(next, depth+1)
	}
}

func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
