package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/netelab/bitvec"
)

func codes(d *Design) []string {
	var out []string
	for _, diag := range d.Diagnostics() {
		out = append(out, diag.Code)
	}
	return out
}

func TestCheckClean(t *testing.T) {
	d := newTestDesign()
	buildAndGate(d)

	report := d.Check()
	assert.Empty(t, report.Loops)
	assert.Equal(t, 1, report.Depth)
	assert.Zero(t, report.MultiplyDriven)
	assert.Zero(t, report.UndrivenInputs)
	assert.Empty(t, d.Diagnostics())
}

func TestCheckCombinationalLoop(t *testing.T) {
	d := newTestDesign()
	g0 := d.NewLogic("g0", LogicNot, 1)
	g1 := d.NewLogic("g1", LogicNot, 1)
	d.Connect(g0.Pin(GroupO, 0), g1.Pin(GroupI, 0))
	d.Connect(g1.Pin(GroupO, 0), g0.Pin(GroupI, 0))

	report := d.Check()
	require.Len(t, report.Loops, 1)
	assert.Equal(t, []string{"g0", "g1"}, report.Loops[0])
	assert.Contains(t, codes(d), "combinational-loop")
	assert.Equal(t, 0, d.Errors(), "loops are warnings")
}

func TestCheckMultipleDrivers(t *testing.T) {
	d := newTestDesign()
	w := d.NewSignal("w", SignalWire, 0, 0)
	c0 := d.NewConst("c0", bitvec.FromUint(0, 1))
	c1 := d.NewConst("c1", bitvec.FromUint(1, 1))
	d.Connect(c0.Pin(GroupO, 0), w.Pin(0))
	d.Connect(c1.Pin(GroupO, 0), w.Pin(0))

	report := d.Check()
	assert.Equal(t, 1, report.MultiplyDriven)
	require.Equal(t, []string{"multiple-drivers"}, codes(d))
	assert.Contains(t, d.Diagnostics()[0].Message, "w[0]")

	tri := newTestDesign()
	bus := tri.NewSignal("bus", SignalTri, 0, 0)
	tri.Connect(tri.NewConst("c0", bitvec.FromUint(0, 1)).Pin(GroupO, 0), bus.Pin(0))
	tri.Connect(tri.NewConst("c1", bitvec.FromUint(1, 1)).Pin(GroupO, 0), bus.Pin(0))
	assert.Zero(t, tri.Check().MultiplyDriven, "tri nets resolve multiple drivers")
}

func TestCheckUndrivenInput(t *testing.T) {
	d := newTestDesign()
	w := d.NewSignal("w", SignalWire, 0, 0)
	r := d.NewSignal("r", SignalReg, 0, 0)
	g := d.NewLogic("g", LogicAnd, 2)
	d.Connect(g.Pin(GroupI, 0), w.Pin(0))
	d.Connect(g.Pin(GroupI, 1), r.Pin(0))

	report := d.Check()
	assert.Equal(t, 1, report.UndrivenInputs, "only the wire input is undriven")
	assert.Equal(t, []string{"undriven-input"}, codes(d))
}

func TestCheckDepth(t *testing.T) {
	d := newTestDesign()
	c := d.NewConst("c", bitvec.FromUint(1, 1))
	g0 := d.NewLogic("g0", LogicNot, 1)
	g1 := d.NewLogic("g1", LogicNot, 1)
	d.Connect(c.Pin(GroupO, 0), g0.Pin(GroupI, 0))
	d.Connect(g0.Pin(GroupO, 0), g1.Pin(GroupI, 0))

	assert.Equal(t, 3, d.Check().Depth)
}
