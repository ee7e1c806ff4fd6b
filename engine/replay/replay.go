package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/input"
)

// Replay is a recorded run: its header and every key change
type Replay struct {
	Header   Header
	Commands []Command
}

// Recorder writes key changes as they happen. Ticks on which a player's
// keys did not change cost nothing.
type Recorder struct {
	Replay
	last   []input.Keys
	file   *os.File
	writer *bufio.Writer
}

// NewRecorder starts a replay on w
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	r := &Recorder{
		Replay: Replay{Header: h},
		last:   make([]input.Keys, h.Players),
		writer: bufio.NewWriter(w),
	}
	if err := h.Encode(r.writer); err != nil {
		return nil, err
	}
	return r, nil
}

// NewFileRecorder creates a replay file for recording
func NewFileRecorder(path string, h Header) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// Record notes the keys of every slot at tick
func (r *Recorder) Record(tick uint64, keys []input.Keys) error {
	for slot, k := range keys {
		if slot >= len(r.last) || r.last[slot] == k {
			continue
		}
		r.last[slot] = k
		cmd := Command{Tick: tick, Slot: uint8(slot), Keys: k}
		r.Commands = append(r.Commands, cmd)
		if err := cmd.Encode(r.writer); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the replay file
func (r *Recorder) Close() error {
	err := r.writer.Flush()
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Load reads a whole replay stream
func Load(rd io.Reader) (*Replay, error) {
	br := bufio.NewReader(rd)
	rep := &Replay{}
	if err := rep.Header.Decode(br); err != nil {
		return nil, err
	}
	for {
		var cmd Command
		err := cmd.Decode(br)
		if errors.Is(err, io.EOF) {
			return rep, nil
		}
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", len(rep.Commands), err)
		}
		rep.Commands = append(rep.Commands, cmd)
	}
}

// LoadFile loads a replay file
func LoadFile(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// CommandsForTick returns all commands at a given tick during playback
func (r *Replay) CommandsForTick(tick uint64) []Command {
	var result []Command
	for _, c := range r.Commands {
		if c.Tick == tick {
			result = append(result, c)
		}
	}
	return result
}

// Player feeds a replay back tick by tick
type Player struct {
	replay *Replay
	next   int
	keys   []input.Keys
}

// NewPlayer starts playback from the first command
func NewPlayer(r *Replay) *Player {
	return &Player{replay: r, keys: make([]input.Keys, r.Header.Players)}
}

// Keys returns every slot's keys at tick. Ticks must not go backwards.
func (p *Player) Keys(tick uint64) []input.Keys {
	cmds := p.replay.Commands
	for p.next < len(cmds) && cmds[p.next].Tick <= tick {
		c := cmds[p.next]
		if int(c.Slot) < len(p.keys) {
			p.keys[c.Slot] = c.Keys
		}
		p.next++
	}
	return p.keys
}

// Done reports whether every command has been played
func (p *Player) Done() bool { return p.next >= len(p.replay.Commands) }
