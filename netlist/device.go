package netlist

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/golangsnmp/netelab/bitvec"
)

// Terminal group names.
const (
	GroupDataA     = "DataA"
	GroupDataB     = "DataB"
	GroupResult    = "Result"
	GroupCout      = "Cout"
	GroupSel       = "Sel"
	GroupData      = "Data"
	GroupDistance  = "Distance"
	GroupDirection = "Direction"
	GroupAddress   = "Address"
	GroupQ         = "Q"
	GroupI         = "I"
	GroupO         = "O"
	GroupALB       = "ALB"
	GroupAGB       = "AGB"
	GroupALEB      = "ALEB"
	GroupAGEB      = "AGEB"
	GroupAEB       = "AEB"
	GroupANEB      = "ANEB"
	GroupRet       = "Ret"
)

// AttrDirection is the AddSub attribute holding "ADD" or "SUB".
const AttrDirection = "LPM_Direction"

// Group is a named, ordered list of pins sharing one direction.
type Group struct {
	Name string
	Dir  Dir
	Pins []PinID
}

// Device is a structural node. Its terminals are arranged in named groups
// whose layout is fixed by Kind.
type Device struct {
	Name   string
	Kind   DeviceKind
	Op     LogicOp // DeviceLogic only
	Width  int
	Signed bool

	// Value is the driven value of a DeviceConst.
	Value bitvec.Vector

	Delays     Delays
	Attributes map[string]string

	Memory   *Memory   // DeviceRAMPort only
	Function *Function // DeviceUserFunc only

	groups []Group
}

// Groups returns the terminal groups in layout order.
func (dev *Device) Groups() []Group { return dev.groups }

// Group returns the pins of the named group, or nil.
func (dev *Device) Group(name string) []PinID {
	for _, g := range dev.groups {
		if g.Name == name {
			return g.Pins
		}
	}
	return nil
}

// Pin returns pin i of the named group.
func (dev *Device) Pin(name string, i int) PinID {
	return dev.Group(name)[i]
}

// Inputs returns every input pin in layout order.
func (dev *Device) Inputs() []PinID { return dev.pinsWithDir(DirInput) }

// Outputs returns every output pin in layout order.
func (dev *Device) Outputs() []PinID { return dev.pinsWithDir(DirOutput) }

func (dev *Device) pinsWithDir(dir Dir) []PinID {
	var out []PinID
	for _, g := range dev.groups {
		if g.Dir == dir {
			out = append(out, g.Pins...)
		}
	}
	return out
}

func (dev *Device) String() string {
	if dev.Kind == DeviceLogic {
		return fmt.Sprintf("%s(%s %s)", dev.Name, dev.Kind, dev.Op)
	}
	return fmt.Sprintf("%s(%s)", dev.Name, dev.Kind)
}

// groupSpec describes one group of a device layout.
type groupSpec struct {
	name  string
	dir   Dir
	width int
}

func input(name string, width int) groupSpec  { return groupSpec{name, DirInput, width} }
func output(name string, width int) groupSpec { return groupSpec{name, DirOutput, width} }

// addDevice allocates pins for every group and registers dev.
func (d *Design) addDevice(dev *Device, specs ...groupSpec) *Device {
	bit := 0
	for _, spec := range specs {
		g := Group{Name: spec.name, Dir: spec.dir, Pins: make([]PinID, spec.width)}
		for i := range g.Pins {
			g.Pins[i] = d.newPin(spec.dir, dev, nil, bit)
			bit++
		}
		dev.groups = append(dev.groups, g)
	}
	d.devices = append(d.devices, dev)
	if d.TraceEnabled() {
		d.Trace("device", slog.String("name", dev.Name),
			slog.String("kind", dev.Kind.String()), slog.Int("width", dev.Width))
	}
	return dev
}

// GroupBit returns the index of pin p within its group of dev.
func (dev *Device) GroupBit(p PinID) (string, int) {
	for _, g := range dev.groups {
		for i, q := range g.Pins {
			if q == p {
				return g.Name, i
			}
		}
	}
	return "", -1
}

// SetDrive sets the drive strengths of every output pin of dev.
func (d *Design) SetDrive(dev *Device, drive Drive) {
	for _, p := range dev.Outputs() {
		d.pins[p].drive = drive
	}
}

// NewLogic creates a gate with one output O and the given number of
// inputs in group I.
func (d *Design) NewLogic(name string, op LogicOp, inputs int) *Device {
	return d.addDevice(&Device{Name: name, Kind: DeviceLogic, Op: op, Width: 1},
		output(GroupO, 1), input(GroupI, inputs))
}

// NewAddSub creates a width-bit adder or subtractor with carry out.
func (d *Design) NewAddSub(name string, width int, subtract bool) *Device {
	dir := "ADD"
	if subtract {
		dir = "SUB"
	}
	return d.addDevice(&Device{
		Name:       name,
		Kind:       DeviceAddSub,
		Width:      width,
		Attributes: map[string]string{AttrDirection: dir},
	}, input(GroupDataA, width), input(GroupDataB, width), output(GroupResult, width), output(GroupCout, 1))
}

// NewCompare creates a magnitude comparator over width-bit operands.
func (d *Design) NewCompare(name string, width int) *Device {
	return d.addDevice(&Device{Name: name, Kind: DeviceCompare, Width: width},
		input(GroupDataA, width), input(GroupDataB, width),
		output(GroupALB, 1), output(GroupAGB, 1), output(GroupALEB, 1),
		output(GroupAGEB, 1), output(GroupAEB, 1), output(GroupANEB, 1))
}

// NewMult creates a multiplier with a wr-bit result.
func (d *Design) NewMult(name string, wr, wa, wb int) *Device {
	return d.addDevice(&Device{Name: name, Kind: DeviceMult, Width: wr},
		input(GroupDataA, wa), input(GroupDataB, wb), output(GroupResult, wr))
}

// NewDivide creates a divider with a wr-bit quotient.
func (d *Design) NewDivide(name string, wr, wa, wb int) *Device {
	return d.addDevice(&Device{Name: name, Kind: DeviceDivide, Width: wr},
		input(GroupDataA, wa), input(GroupDataB, wb), output(GroupResult, wr))
}

// NewModulo creates a remainder unit with a wr-bit result.
func (d *Design) NewModulo(name string, wr, wa, wb int) *Device {
	return d.addDevice(&Device{Name: name, Kind: DeviceModulo, Width: wr},
		input(GroupDataA, wa), input(GroupDataB, wb), output(GroupResult, wr))
}

// NewShift creates a barrel shifter. Direction 0 shifts left.
func (d *Design) NewShift(name string, width, dwidth int) *Device {
	return d.addDevice(&Device{Name: name, Kind: DeviceShift, Width: width},
		input(GroupData, width), input(GroupDistance, dwidth), input(GroupDirection, 1), output(GroupResult, width))
}

// NewConst creates a driver for value.
func (d *Design) NewConst(name string, value bitvec.Vector) *Device {
	return d.addDevice(&Device{Name: name, Kind: DeviceConst, Width: value.Len(), Value: value},
		output(GroupO, value.Len()))
}

// DataGroup returns the name of mux data input i.
func DataGroup(i int) string { return "Data" + strconv.Itoa(i) }

// ArgGroup returns the name of function argument n, counted from 1.
func ArgGroup(n int) string { return "Arg" + strconv.Itoa(n) }

// NewMux creates a size-input multiplexer over width-bit data.
func (d *Design) NewMux(name string, width, size, selWidth int) *Device {
	specs := make([]groupSpec, 0, size+2)
	for i := range size {
		specs = append(specs, input(DataGroup(i), width))
	}
	specs = append(specs, input(GroupSel, selWidth), output(GroupResult, width))
	return d.addDevice(&Device{Name: name, Kind: DeviceMux, Width: width}, specs...)
}

// NewBufZ creates a one-bit buffer that carries delays.
func (d *Design) NewBufZ(name string) *Device {
	return d.addDevice(&Device{Name: name, Kind: DeviceBufZ, Width: 1},
		input(GroupI, 1), output(GroupO, 1))
}

// NewCaseCmp creates a one-bit exact (x/z aware) equality comparator.
func (d *Design) NewCaseCmp(name string) *Device {
	return d.addDevice(&Device{Name: name, Kind: DeviceCaseCmp, Width: 1},
		input(GroupDataA, 1), input(GroupDataB, 1), output(GroupO, 1))
}

// NewRAMPort creates a read port on mem.
func (d *Design) NewRAMPort(name string, mem *Memory, awidth int) *Device {
	return d.addDevice(&Device{Name: name, Kind: DeviceRAMPort, Width: mem.Width(), Memory: mem},
		input(GroupAddress, awidth), output(GroupQ, mem.Width()))
}

// NewUserFunc creates a call site of fn with one input group per
// argument port.
func (d *Design) NewUserFunc(name string, fn *Function) *Device {
	specs := []groupSpec{output(GroupRet, fn.Return().Width())}
	for i, port := range fn.Inputs() {
		specs = append(specs, input(ArgGroup(i+1), port.Width()))
	}
	return d.addDevice(&Device{Name: name, Kind: DeviceUserFunc, Width: fn.Return().Width(), Function: fn}, specs...)
}
