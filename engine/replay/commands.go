package replay

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/input"
)

// Magic opens every replay stream
var Magic = [4]byte{'B', 'C', 'R', 'P'}

// Version of the binary layout
const Version uint8 = 1

var ErrBadHeader = errors.New("replay: bad header")

// Header identifies the run a replay belongs to. Playing the commands
// against a session built from the same header reproduces it.
type Header struct {
	Seed    int64
	Stage   int32
	Players uint8
}

// Encode writes the header to binary
func (h *Header) Encode(w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, Version); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.Seed); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.Stage); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, h.Players)
}

// Decode reads the header from binary
func (h *Header) Decode(r io.Reader) error {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if magic != Magic {
		return fmt.Errorf("%w: magic %q", ErrBadHeader, magic[:])
	}
	var v uint8
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return err
	}
	if v != Version {
		return fmt.Errorf("%w: version %d", ErrBadHeader, v)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Seed); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Stage); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &h.Players)
}

// Command is a change of one player's keys, effective from Tick on
type Command struct {
	Tick uint64
	Slot uint8
	Keys input.Keys
}

// Encode writes a command to binary
func (c *Command) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, c.Tick); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.Slot); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, uint8(c.Keys))
}

// Decode reads a command from binary. A clean end of stream returns io.EOF.
func (c *Command) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &c.Tick); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.Slot); err != nil {
		return unexpected(err)
	}
	var k uint8
	if err := binary.Read(r, binary.LittleEndian, &k); err != nil {
		return unexpected(err)
	}
	c.Keys = input.Keys(k)
	return nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
