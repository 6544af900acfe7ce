package netlist

// Memory is a declared array of registers, reg [Msb:Lsb] name [Low:High].
type Memory struct {
	Name string
	Msb  int
	Lsb  int
	Low  int
	High int
}

// Width returns the word width.
func (m *Memory) Width() int { return span(m.Msb, m.Lsb) }

// Count returns the number of words.
func (m *Memory) Count() int { return span(m.Low, m.High) }

// Index maps an address in declared coordinates to a word index, or -1.
func (m *Memory) Index(addr int) int {
	lo, hi := min(m.Low, m.High), max(m.Low, m.High)
	if addr < lo || addr > hi {
		return -1
	}
	return addr - lo
}

func span(a, b int) int {
	if a >= b {
		return a - b + 1
	}
	return b - a + 1
}

// Function is a user function. Ports[0] is the return value and the
// remaining ports are the inputs in declaration order.
type Function struct {
	Name  string
	Scope string
	Ports []*Signal
}

// Return returns the return-value port.
func (f *Function) Return() *Signal { return f.Ports[0] }

// Inputs returns the input ports.
func (f *Function) Inputs() []*Signal { return f.Ports[1:] }

// Variable is a real-valued variable. It cannot appear in a net.
type Variable struct {
	Name string
}

// Event is a named event. It cannot appear in a net.
type Event struct {
	Name string
}
