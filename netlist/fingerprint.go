package netlist

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a structural digest of the design. It covers every
// device and every junction, and does not depend on the order in which
// devices were created.
func (d *Design) Fingerprint() uint64 {
	var items []uint64
	for _, dev := range d.devices {
		items = append(items, xxhash.Sum64String(deviceKey(dev)))
	}
	for _, j := range d.Junctions() {
		refs := make([]string, len(j))
		for i, p := range j {
			refs[i] = d.PinRef(p)
		}
		slices.Sort(refs)
		items = append(items, xxhash.Sum64String("junction "+strings.Join(refs, " ")))
	}
	slices.Sort(items)

	h := xxhash.New()
	var buf [8]byte
	for _, item := range items {
		binary.LittleEndian.PutUint64(buf[:], item)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// FingerprintString renders Fingerprint as 16 hex digits.
func (d *Design) FingerprintString() string {
	return fmt.Sprintf("%016x", d.Fingerprint())
}

func deviceKey(dev *Device) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s w=%d", dev.Name, dev.Kind, dev.Width)
	if dev.Kind == DeviceLogic {
		fmt.Fprintf(&b, " op=%s", dev.Op)
	}
	if dev.Kind == DeviceConst {
		fmt.Fprintf(&b, " v=%s", dev.Value.Binary())
	}
	if dev.Signed {
		b.WriteString(" signed")
	}
	for _, g := range dev.groups {
		fmt.Fprintf(&b, " %s/%d", g.Name, len(g.Pins))
	}
	return b.String()
}
