package tape

import "time"

// ScriptTickMsg asks the TUI to run the next script command.
type ScriptTickMsg time.Time

// Player walks a script one command at a time. Runner drives it in a loop,
// the TUI steps it on a timer and may pause it in between.
type Player struct {
	cmds   []Command
	next   int
	paused bool
}

func NewPlayer(cmds []Command) *Player {
	return &Player{cmds: cmds}
}

// Next returns the command to run, nil once every command ran.
func (p *Player) Next() *Command {
	if p.Done() {
		return nil
	}
	return &p.cmds[p.next]
}

func (p *Player) Advance() {
	if !p.Done() {
		p.next++
	}
}

func (p *Player) Done() bool { return p.next >= len(p.cmds) }

func (p *Player) Paused() bool { return p.paused }

// TogglePause pauses or resumes playback and reports whether it is now
// paused. A finished script stays unpaused.
func (p *Player) TogglePause() bool {
	p.paused = !p.paused && !p.Done()
	return p.paused
}

// Position returns how many commands ran and how many there are.
func (p *Player) Position() (ran, total int) {
	return p.next, len(p.cmds)
}
