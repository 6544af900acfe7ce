// Package netlist holds the structural result of elaboration: signals,
// devices and the junctions that connect their pins.
//
// All pins live in one arena owned by the Design and are addressed by
// PinID. Junctions are equivalence classes of pins kept in a union-find;
// connecting two pins merges their junctions and cannot be undone.
package netlist

import (
	"log/slog"
	"slices"

	"github.com/golangsnmp/netelab/bitvec"
	"github.com/golangsnmp/netelab/internal/types"
)

// PinID addresses a pin in a Design's arena.
type PinID int32

// NoPin is returned where a pin does not exist.
const NoPin PinID = -1

type pin struct {
	parent PinID
	rank   uint8
	dir    Dir
	drive  Drive
	device *Device
	signal *Signal
	bit    int
}

// Design is the arena that owns every pin, signal and device produced
// while elaborating one HDL module.
type Design struct {
	types.Logger

	Name string

	config    DiagnosticConfig
	pins      []pin
	signals   []*Signal
	devices   []*Device
	memories  []*Memory
	functions []*Function
	variables []*Variable
	events    []*Event

	diagnostics []Diagnostic
	errors      int
}

// NewDesign returns an empty design. A nil logger disables logging.
func NewDesign(name string, config DiagnosticConfig, logger *slog.Logger) *Design {
	return &Design{
		Logger: types.Logger{L: logger},
		Name:   name,
		config: config,
	}
}

// Config returns the diagnostic configuration the design reports under.
func (d *Design) Config() DiagnosticConfig { return d.config }

func (d *Design) newPin(dir Dir, dev *Device, sig *Signal, bit int) PinID {
	id := PinID(len(d.pins))
	d.pins = append(d.pins, pin{
		parent: id,
		dir:    dir,
		drive:  DefaultDrive,
		device: dev,
		signal: sig,
		bit:    bit,
	})
	return id
}

// PinCount returns the number of pins in the arena.
func (d *Design) PinCount() int { return len(d.pins) }

// PinDir returns the direction of p.
func (d *Design) PinDir(p PinID) Dir { return d.pins[p].dir }

// PinDrive returns the drive strengths of p.
func (d *Design) PinDrive(p PinID) Drive { return d.pins[p].drive }

// PinOwner returns the device or signal that owns p, and the bit index of
// p within it. Exactly one of dev and sig is non-nil.
func (d *Design) PinOwner(p PinID) (dev *Device, sig *Signal, bit int) {
	pi := &d.pins[p]
	return pi.device, pi.signal, pi.bit
}

// Find returns the representative pin of p's junction.
func (d *Design) Find(p PinID) PinID {
	root := p
	for d.pins[root].parent != root {
		root = d.pins[root].parent
	}
	for d.pins[p].parent != root {
		next := d.pins[p].parent
		d.pins[p].parent = root
		p = next
	}
	return root
}

// Connect merges the junctions of a and b.
func (d *Design) Connect(a, b PinID) {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return
	}
	switch {
	case d.pins[ra].rank < d.pins[rb].rank:
		d.pins[ra].parent = rb
	case d.pins[ra].rank > d.pins[rb].rank:
		d.pins[rb].parent = ra
	default:
		d.pins[rb].parent = ra
		d.pins[ra].rank++
	}
}

// Connected reports whether a and b share a junction.
func (d *Design) Connected(a, b PinID) bool {
	return d.Find(a) == d.Find(b)
}

// ConnectBus connects a[i] to b[i] for every index both slices have.
func (d *Design) ConnectBus(a, b []PinID) {
	for i := range min(len(a), len(b)) {
		d.Connect(a[i], b[i])
	}
}

// live reports whether p belongs to a device or to a signal that has not
// been discarded.
func (d *Design) live(p PinID) bool {
	pi := &d.pins[p]
	return pi.device != nil || (pi.signal != nil && !pi.signal.discarded)
}

// Junctions returns every junction with more than one live pin. Pins are
// in arena order within a junction, and junctions are ordered by their
// first pin.
func (d *Design) Junctions() [][]PinID {
	groups := make(map[PinID][]PinID)
	var roots []PinID
	for i := range d.pins {
		p := PinID(i)
		if !d.live(p) {
			continue
		}
		r := d.Find(p)
		if _, ok := groups[r]; !ok {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], p)
	}
	var out [][]PinID
	for _, r := range roots {
		if len(groups[r]) > 1 {
			out = append(out, groups[r])
		}
	}
	return out
}

// Members returns every live pin in p's junction, in arena order.
func (d *Design) Members(p PinID) []PinID {
	root := d.Find(p)
	var out []PinID
	for i := range d.pins {
		q := PinID(i)
		if d.live(q) && d.Find(q) == root {
			out = append(out, q)
		}
	}
	return out
}

// Drivers returns the device output pins in p's junction.
func (d *Design) Drivers(p PinID) []PinID {
	var out []PinID
	for _, q := range d.Members(p) {
		if d.pins[q].device != nil && d.pins[q].dir == DirOutput {
			out = append(out, q)
		}
	}
	return out
}

// ConstValue returns the value of sig when every bit is driven by a
// constant device. The second result is false otherwise.
func (d *Design) ConstValue(sig *Signal) (bitvec.Vector, bool) {
	bits := make([]bitvec.Bit, sig.Width())
	for i, p := range sig.pins {
		drivers := d.Drivers(p)
		if len(drivers) != 1 {
			return bitvec.Vector{}, false
		}
		dev, _, bit := d.PinOwner(drivers[0])
		if dev.Kind != DeviceConst {
			return bitvec.Vector{}, false
		}
		bits[i] = dev.Value.Get(bit)
	}
	return bitvec.FromBits(bits, true), true
}

// Signals returns the live signals in creation order.
func (d *Design) Signals() []*Signal {
	out := make([]*Signal, 0, len(d.signals))
	for _, s := range d.signals {
		if !s.discarded {
			out = append(out, s)
		}
	}
	return out
}

// Devices returns every device in creation order.
func (d *Design) Devices() []*Device {
	return slices.Clone(d.devices)
}

// Memories returns the declared memories.
func (d *Design) Memories() []*Memory { return slices.Clone(d.memories) }

// Functions returns the declared functions.
func (d *Design) Functions() []*Function { return slices.Clone(d.functions) }

// Variables returns the declared real variables.
func (d *Design) Variables() []*Variable { return slices.Clone(d.variables) }

// Events returns the declared named events.
func (d *Design) Events() []*Event { return slices.Clone(d.events) }

// AddMemory registers a memory.
func (d *Design) AddMemory(m *Memory) { d.memories = append(d.memories, m) }

// AddFunction registers a function.
func (d *Design) AddFunction(f *Function) { d.functions = append(d.functions, f) }

// AddVariable registers a real variable.
func (d *Design) AddVariable(v *Variable) { d.variables = append(d.variables, v) }

// AddEvent registers a named event.
func (d *Design) AddEvent(e *Event) { d.events = append(d.events, e) }

// Report records a diagnostic. Error-class severities increment the error
// count even when the configuration does not report them.
func (d *Design) Report(diag Diagnostic) {
	if diag.Severity.IsError() {
		d.errors++
	}
	if diag.Module == "" {
		diag.Module = d.Name
	}
	if !d.config.ShouldReport(diag.Code, diag.Severity) {
		return
	}
	diag.Severity = d.config.Severity(diag.Code, diag.Severity)
	d.diagnostics = append(d.diagnostics, diag)
	d.Log(slog.LevelDebug, "diagnostic",
		slog.String("severity", diag.Severity.String()),
		slog.String("code", diag.Code),
		slog.String("message", diag.Message))
}

// CountError increments the error count without recording a diagnostic,
// for failures whose cause was already reported.
func (d *Design) CountError() { d.errors++ }

// Errors returns the number of error-class problems seen so far.
func (d *Design) Errors() int { return d.errors }

// Diagnostics returns the reported diagnostics in order.
func (d *Design) Diagnostics() []Diagnostic {
	return slices.Clone(d.diagnostics)
}
