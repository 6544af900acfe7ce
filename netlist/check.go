package netlist

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/golangsnmp/netelab/internal/graph"
	"github.com/golangsnmp/netelab/internal/types"
)

// CheckReport summarizes the structural checks run over a design.
type CheckReport struct {
	// Loops lists the device names on each combinational loop.
	Loops [][]string

	// Depth is the number of devices on the longest acyclic path.
	Depth int

	MultiplyDriven int
	UndrivenInputs int
}

// Check analyzes device connectivity and reports combinational loops,
// junctions with more than one driver, and device inputs nothing drives.
func (d *Design) Check() CheckReport {
	log := types.Logger{L: types.Component(d.L, "check")}

	members := make(map[PinID][]PinID)
	var roots []PinID
	for i := range d.pins {
		p := PinID(i)
		if !d.live(p) {
			continue
		}
		r := d.Find(p)
		if _, ok := members[r]; !ok {
			roots = append(roots, r)
		}
		members[r] = append(members[r], p)
	}

	deviceIndex := make(map[*Device]int, len(d.devices))
	g := graph.New[int]()
	for i, dev := range d.devices {
		deviceIndex[dev] = i
		g.AddNode(i)
	}

	var report CheckReport
	for _, dev := range d.devices {
		from := deviceIndex[dev]
		for _, p := range dev.Inputs() {
			drivers := 0
			externallyDriven := false
			for _, q := range members[d.Find(p)] {
				owner, sig, _ := d.PinOwner(q)
				switch {
				case owner != nil && d.pins[q].dir == DirOutput:
					drivers++
					g.AddEdge(from, deviceIndex[owner])
				case sig != nil && drivenOutside(sig):
					externallyDriven = true
				}
			}
			if drivers == 0 && !externallyDriven {
				report.UndrivenInputs++
				group, bit := dev.GroupBit(p)
				d.Report(Diagnostic{
					Severity: SeverityInfo,
					Code:     types.DiagUndrivenInput,
					Message:  fmt.Sprintf("input %s[%d] of %s is not driven", group, bit, dev.Name),
				})
			}
		}
	}

	for _, r := range roots {
		pins := members[r]
		var drivers []string
		resolved := false
		for _, q := range pins {
			owner, sig, _ := d.PinOwner(q)
			if owner != nil && d.pins[q].dir == DirOutput {
				drivers = append(drivers, owner.Name)
			}
			if sig != nil && (sig.Kind == SignalTri || sig.Kind == SignalSupply0 || sig.Kind == SignalSupply1) {
				resolved = true
			}
		}
		if len(drivers) > 1 && !resolved {
			report.MultiplyDriven++
			d.Report(Diagnostic{
				Severity: SeverityWarning,
				Code:     types.DiagMultipleDrivers,
				Message:  fmt.Sprintf("%s is driven by %s", d.describeJunction(pins), strings.Join(drivers, ", ")),
			})
		}
	}

	for _, cycle := range g.FindCycles() {
		names := make([]string, len(cycle))
		for i, idx := range cycle {
			names[i] = d.devices[idx].Name
		}
		report.Loops = append(report.Loops, names)
		d.Report(Diagnostic{
			Severity: SeverityWarning,
			Code:     types.DiagCombinationalLoop,
			Message:  "combinational loop through " + strings.Join(names, ", "),
		})
	}
	report.Depth = g.Depth()

	log.Log(slog.LevelDebug, "structural check complete",
		slog.Int("devices", len(d.devices)),
		slog.Int("loops", len(report.Loops)),
		slog.Int("depth", report.Depth),
		slog.Int("multiplyDriven", report.MultiplyDriven),
		slog.Int("undriven", report.UndrivenInputs))
	return report
}

// drivenOutside reports whether sig is driven by something other than a
// device in this design: a module input, a register, or a supply.
func drivenOutside(sig *Signal) bool {
	if sig.Port == PortInput || sig.Port == PortInout {
		return true
	}
	switch sig.Kind {
	case SignalReg, SignalSupply0, SignalSupply1:
		return true
	}
	return false
}

// describeJunction names a junction by its first non-local signal pin,
// falling back to its first pin.
func (d *Design) describeJunction(pins []PinID) string {
	for _, p := range pins {
		if _, sig, _ := d.PinOwner(p); sig != nil && !sig.Local {
			return d.PinRef(p)
		}
	}
	return d.PinRef(pins[0])
}
