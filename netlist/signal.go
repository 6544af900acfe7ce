package netlist

import (
	"fmt"
	"log/slog"
)

// Signal is a named vector of pins. Bit 0 of Pins corresponds to the lsb
// end of the declared range.
type Signal struct {
	Name   string
	Kind   SignalKind
	Port   PortType
	Msb    int
	Lsb    int
	Signed bool

	// Local marks temporaries created during lowering.
	Local bool

	// Parent and Offset are set on sub-range views, which share their
	// parent's pins.
	Parent *Signal
	Offset int

	pins      []PinID
	discarded bool
}

// Width returns the number of bits.
func (s *Signal) Width() int { return len(s.pins) }

// Pin returns the pin of bit i, counted from the lsb.
func (s *Signal) Pin(i int) PinID { return s.pins[i] }

// Pins returns the pins lsb first. The slice must not be modified.
func (s *Signal) Pins() []PinID { return s.pins }

// IsView reports whether s is a sub-range of another signal.
func (s *Signal) IsView() bool { return s.Parent != nil }

// IndexOf maps a bit number in declared coordinates to a pin index.
func (s *Signal) IndexOf(bit int) int {
	if s.Msb >= s.Lsb {
		return bit - s.Lsb
	}
	return s.Lsb - bit
}

// ValidBit reports whether bit lies within the declared range.
func (s *Signal) ValidBit(bit int) bool {
	idx := s.IndexOf(bit)
	return idx >= 0 && idx < len(s.pins)
}

func (s *Signal) String() string {
	if s.Msb == 0 && s.Lsb == 0 {
		return s.Name
	}
	return fmt.Sprintf("%s[%d:%d]", s.Name, s.Msb, s.Lsb)
}

// NewSignal creates and registers a signal with range [msb:lsb].
func (d *Design) NewSignal(name string, kind SignalKind, msb, lsb int) *Signal {
	width := msb - lsb
	if width < 0 {
		width = -width
	}
	width++
	s := &Signal{Name: name, Kind: kind, Msb: msb, Lsb: lsb}
	s.pins = make([]PinID, width)
	for i := range s.pins {
		s.pins[i] = d.newPin(DirPassive, nil, s, i)
	}
	d.signals = append(d.signals, s)
	if d.TraceEnabled() {
		d.Trace("signal", slog.String("name", s.String()), slog.String("kind", kind.String()))
	}
	return s
}

// NewTemp creates a local wire of the given width with range [width-1:0].
// Widths below one are raised to one.
func (d *Design) NewTemp(name string, width int) *Signal {
	width = max(width, 1)
	s := d.NewSignal(name, SignalWire, width-1, 0)
	s.Local = true
	return s
}

// Subrange returns a width-bit view of parent starting at pin offset.
// The view shares parent's pins and is not registered with the design.
func (d *Design) Subrange(parent *Signal, offset, width int) *Signal {
	return &Signal{
		Name:   parent.Name,
		Kind:   parent.Kind,
		Port:   parent.Port,
		Msb:    width - 1,
		Signed: parent.Signed,
		Local:  parent.Local,
		Parent: parent,
		Offset: offset,
		pins:   parent.pins[offset : offset+width],
	}
}

// Discard removes a temporary produced by a failed lowering. Its pins
// stay in the arena but no longer appear in junctions. Declared signals
// and views are left alone.
func (d *Design) Discard(s *Signal) {
	if s == nil || s.IsView() || !s.Local {
		return
	}
	s.discarded = true
}
