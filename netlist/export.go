package netlist

import (
	"fmt"
	"maps"
	"slices"
)

// Document is the interchange form of a design, suitable for JSON.
type Document struct {
	Name      string        `json:"name"`
	Signals   []SignalDoc   `json:"signals"`
	Devices   []DeviceDoc   `json:"devices"`
	Memories  []MemoryDoc   `json:"memories,omitempty"`
	Functions []FunctionDoc `json:"functions,omitempty"`
	Junctions [][]string    `json:"junctions"`
	Errors    int           `json:"errors"`
}

type SignalDoc struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Port   string `json:"port,omitempty"`
	Msb    int    `json:"msb"`
	Lsb    int    `json:"lsb"`
	Signed bool   `json:"signed,omitempty"`
	Local  bool   `json:"local,omitempty"`
}

type DeviceDoc struct {
	Name       string            `json:"name"`
	Kind       string            `json:"kind"`
	Op         string            `json:"op,omitempty"`
	Width      int               `json:"width"`
	Signed     bool              `json:"signed,omitempty"`
	Value      string            `json:"value,omitempty"`
	Delays     *Delays           `json:"delays,omitempty"`
	Drive      string            `json:"drive,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Memory     string            `json:"memory,omitempty"`
	Function   string            `json:"function,omitempty"`
	Groups     []GroupDoc        `json:"groups"`
}

type GroupDoc struct {
	Name  string `json:"name"`
	Dir   string `json:"dir"`
	Width int    `json:"width"`
}

type MemoryDoc struct {
	Name string `json:"name"`
	Msb  int    `json:"msb"`
	Lsb  int    `json:"lsb"`
	Low  int    `json:"low"`
	High int    `json:"high"`
}

type FunctionDoc struct {
	Name  string   `json:"name"`
	Scope string   `json:"scope"`
	Ports []string `json:"ports"`
}

// PinRef names a pin as "device.Group[i]" or "signal[i]".
func (d *Design) PinRef(p PinID) string {
	dev, sig, bit := d.PinOwner(p)
	if dev != nil {
		group, i := dev.GroupBit(p)
		return fmt.Sprintf("%s.%s[%d]", dev.Name, group, i)
	}
	return fmt.Sprintf("%s[%d]", sig.Name, bit)
}

// Export converts the design to its interchange form.
func (d *Design) Export() *Document {
	doc := &Document{
		Name:      d.Name,
		Signals:   []SignalDoc{},
		Devices:   []DeviceDoc{},
		Junctions: [][]string{},
		Errors:    d.errors,
	}
	for _, s := range d.Signals() {
		doc.Signals = append(doc.Signals, SignalDoc{
			Name:   s.Name,
			Kind:   s.Kind.String(),
			Port:   s.Port.String(),
			Msb:    s.Msb,
			Lsb:    s.Lsb,
			Signed: s.Signed,
			Local:  s.Local,
		})
	}
	for _, dev := range d.devices {
		doc.Devices = append(doc.Devices, d.exportDevice(dev))
	}
	for _, m := range d.memories {
		doc.Memories = append(doc.Memories, MemoryDoc{m.Name, m.Msb, m.Lsb, m.Low, m.High})
	}
	for _, f := range d.functions {
		fd := FunctionDoc{Name: f.Name, Scope: f.Scope}
		for _, p := range f.Ports {
			fd.Ports = append(fd.Ports, p.Name)
		}
		doc.Functions = append(doc.Functions, fd)
	}
	for _, j := range d.Junctions() {
		refs := make([]string, len(j))
		for i, p := range j {
			refs[i] = d.PinRef(p)
		}
		doc.Junctions = append(doc.Junctions, refs)
	}
	return doc
}

func (d *Design) exportDevice(dev *Device) DeviceDoc {
	dd := DeviceDoc{
		Name:   dev.Name,
		Kind:   dev.Kind.String(),
		Width:  dev.Width,
		Signed: dev.Signed,
	}
	switch dev.Kind {
	case DeviceLogic:
		dd.Op = dev.Op.String()
	case DeviceConst:
		dd.Value = dev.Value.Binary()
	case DeviceRAMPort:
		dd.Memory = dev.Memory.Name
	case DeviceUserFunc:
		dd.Function = dev.Function.Name
	}
	if !dev.Delays.IsZero() {
		delays := dev.Delays
		dd.Delays = &delays
	}
	if outs := dev.Outputs(); len(outs) > 0 && d.pins[outs[0]].drive != DefaultDrive {
		dd.Drive = d.pins[outs[0]].drive.String()
	}
	if len(dev.Attributes) > 0 {
		dd.Attributes = maps.Clone(dev.Attributes)
	}
	for _, g := range dev.groups {
		dd.Groups = append(dd.Groups, GroupDoc{Name: g.Name, Dir: g.Dir.String(), Width: len(g.Pins)})
	}
	return dd
}

// DeviceCounts returns the number of devices of each kind, keyed by kind
// name, and the kind names in sorted order.
func (d *Design) DeviceCounts() (map[string]int, []string) {
	counts := make(map[string]int)
	for _, dev := range d.devices {
		counts[dev.Kind.String()]++
	}
	return counts, slices.Sorted(maps.Keys(counts))
}
