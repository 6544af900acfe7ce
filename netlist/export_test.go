package netlist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/netelab/bitvec"
)

// buildAndGate wires y = a & b with a one-bit gate.
func buildAndGate(d *Design) {
	a := d.NewSignal("a", SignalWire, 0, 0)
	a.Port = PortInput
	b := d.NewSignal("b", SignalWire, 0, 0)
	b.Port = PortInput
	y := d.NewSignal("y", SignalWire, 0, 0)
	y.Port = PortOutput

	g := d.NewLogic("_g0", LogicAnd, 2)
	d.Connect(g.Pin(GroupO, 0), y.Pin(0))
	d.Connect(g.Pin(GroupI, 0), a.Pin(0))
	d.Connect(g.Pin(GroupI, 1), b.Pin(0))
}

func TestExport(t *testing.T) {
	d := newTestDesign()
	buildAndGate(d)

	doc := d.Export()
	want := &Document{
		Name: "top",
		Signals: []SignalDoc{
			{Name: "a", Kind: "wire", Port: "input"},
			{Name: "b", Kind: "wire", Port: "input"},
			{Name: "y", Kind: "wire", Port: "output"},
		},
		Devices: []DeviceDoc{{
			Name:  "_g0",
			Kind:  "logic",
			Op:    "and",
			Width: 1,
			Groups: []GroupDoc{
				{Name: "O", Dir: "output", Width: 1},
				{Name: "I", Dir: "input", Width: 2},
			},
		}},
		Junctions: [][]string{
			{"a[0]", "_g0.I[0]"},
			{"b[0]", "_g0.I[1]"},
			{"y[0]", "_g0.O[0]"},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Export mismatch (-want +got):\n%s", diff)
	}
}

func TestExportValidates(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	d := newTestDesign()
	buildAndGate(d)
	c := d.NewConst("_c0", bitvec.FromBits([]bitvec.Bit{bitvec.B1, bitvec.Bz}, true))
	c.Delays = Delays{Rise: 1, Fall: 2}
	d.SetDrive(c, Drive{Zero: StrengthPull, One: StrengthWeak})
	d.AddMemory(&Memory{Name: "m", Msb: 3, Low: 0, High: 7})
	d.NewAddSub("_a0", 2, true)

	require.NoError(t, v.Validate(d.Export()))
}

func TestValidateRejects(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name string
		json string
	}{
		{"unknown kind", `{"name":"t","signals":[],"devices":[{"name":"d","kind":"flipflop","width":1,"groups":[]}],"junctions":[],"errors":0}`},
		{"bad value", `{"name":"t","signals":[],"devices":[{"name":"d","kind":"const","width":1,"value":"2","groups":[]}],"junctions":[],"errors":0}`},
		{"singleton junction", `{"name":"t","signals":[],"devices":[],"junctions":[["a[0]"]],"errors":0}`},
		{"extra field", `{"name":"t","signals":[],"devices":[],"junctions":[],"errors":0,"extra":true}`},
		{"negative errors", `{"name":"t","signals":[],"devices":[],"junctions":[],"errors":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, v.ValidateJSON([]byte(tt.json)))
		})
	}
}

func TestFingerprintIgnoresCreationOrder(t *testing.T) {
	d1 := newTestDesign()
	x1 := d1.NewTemp("x", 1)
	g1 := d1.NewLogic("g", LogicNot, 1)
	c1 := d1.NewConst("c", bitvec.FromUint(1, 1))
	d1.Connect(c1.Pin(GroupO, 0), g1.Pin(GroupI, 0))
	d1.Connect(g1.Pin(GroupO, 0), x1.Pin(0))

	d2 := newTestDesign()
	c2 := d2.NewConst("c", bitvec.FromUint(1, 1))
	g2 := d2.NewLogic("g", LogicNot, 1)
	x2 := d2.NewTemp("x", 1)
	d2.Connect(g2.Pin(GroupO, 0), x2.Pin(0))
	d2.Connect(g2.Pin(GroupI, 0), c2.Pin(GroupO, 0))

	assert.Equal(t, d1.Fingerprint(), d2.Fingerprint())
	assert.Len(t, d1.FingerprintString(), 16)

	d3 := newTestDesign()
	c3 := d3.NewConst("c", bitvec.FromUint(0, 1))
	g3 := d3.NewLogic("g", LogicNot, 1)
	x3 := d3.NewTemp("x", 1)
	d3.Connect(g3.Pin(GroupO, 0), x3.Pin(0))
	d3.Connect(g3.Pin(GroupI, 0), c3.Pin(GroupO, 0))
	assert.NotEqual(t, d1.Fingerprint(), d3.Fingerprint(), "constant value is part of the structure")
}

func TestDeviceCounts(t *testing.T) {
	d := newTestDesign()
	d.NewLogic("g0", LogicAnd, 2)
	d.NewLogic("g1", LogicOr, 2)
	d.NewConst("c", bitvec.FromUint(0, 1))

	counts, kinds := d.DeviceCounts()
	assert.Equal(t, []string{"const", "logic"}, kinds)
	assert.Equal(t, 2, counts["logic"])
}
