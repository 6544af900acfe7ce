// Package scope provides the name tables elaboration resolves identifiers
// against.
//
// A Scope belongs to one netlist.Design. Module scopes are roots; each
// function gets a child scope holding its ports. Single names are looked
// up in the current scope and then in each enclosing scope. Dotted paths
// are resolved by finding the scope named by the first component and
// descending.
package scope

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/golangsnmp/netelab/bitvec"
	"github.com/golangsnmp/netelab/netlist"
)

// Kind classifies what a name refers to.
type Kind int

const (
	KindNotFound Kind = iota
	KindNet
	KindMemory
	KindVariable
	KindParameter
	KindEvent
)

var kindNames = [...]string{"not found", "net", "memory", "variable", "parameter", "event"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Symbol is the result of a lookup. Exactly one of the handle fields is
// set, matching Kind. Value holds a parameter's constant value.
type Symbol struct {
	Kind     Kind
	Signal   *netlist.Signal
	Memory   *netlist.Memory
	Variable *netlist.Variable
	Event    *netlist.Event
	Value    bitvec.Vector
}

// Found reports whether the lookup succeeded.
func (s Symbol) Found() bool { return s.Kind != KindNotFound }

// ImplicitPolicy controls what happens when an undeclared name is used
// where a net may be implied.
type ImplicitPolicy int

const (
	// ImplicitOff creates the net without a diagnostic.
	ImplicitOff ImplicitPolicy = iota
	// ImplicitWarn creates the net and reports a warning.
	ImplicitWarn
	// ImplicitError reports an error. Inside an expression the net is
	// still created so that lowering can continue; as an assignment
	// target the name is rejected.
	ImplicitError
)

var policyNames = [...]string{"off", "warn", "error"}

func (p ImplicitPolicy) String() string {
	if p >= 0 && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("ImplicitPolicy(%d)", p)
}

// ParseImplicitPolicy accepts "off", "warn" or "error". The empty string
// selects ImplicitWarn.
func ParseImplicitPolicy(s string) (ImplicitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "silent":
		return ImplicitOff, nil
	case "warn", "warning", "":
		return ImplicitWarn, nil
	case "error":
		return ImplicitError, nil
	}
	return 0, fmt.Errorf("unknown implicit net policy %q", s)
}

// Scope is a table of declared names.
type Scope struct {
	name      string
	parent    *Scope
	design    *netlist.Design
	implicit  ImplicitPolicy
	symbols   map[string]Symbol
	functions map[string]*netlist.Function
	children  map[string]*Scope
	local     *int
}

// New creates a root scope that allocates signals in design.
func New(name string, design *netlist.Design, policy ImplicitPolicy) *Scope {
	return &Scope{
		name:      name,
		design:    design,
		implicit:  policy,
		symbols:   make(map[string]Symbol),
		functions: make(map[string]*netlist.Function),
		children:  make(map[string]*Scope),
		local:     new(int),
	}
}

// Child returns the nested scope with the given name, creating it on
// first use. Children share the root's implicit policy and local name
// counter.
func (s *Scope) Child(name string) *Scope {
	if c, ok := s.children[name]; ok {
		return c
	}
	c := &Scope{
		name:      name,
		parent:    s,
		design:    s.design,
		implicit:  s.implicit,
		symbols:   make(map[string]Symbol),
		functions: make(map[string]*netlist.Function),
		children:  make(map[string]*Scope),
		local:     s.local,
	}
	s.children[name] = c
	return c
}

// Name returns the scope's own name.
func (s *Scope) Name() string { return s.name }

// Path returns the dotted path from the root, excluding the root's name.
func (s *Scope) Path() string {
	if s.parent == nil {
		return ""
	}
	if p := s.parent.Path(); p != "" {
		return p + "." + s.name
	}
	return s.name
}

// Qualify returns name prefixed with the scope path, which is how names
// declared in nested scopes appear in the design.
func (s *Scope) Qualify(name string) string {
	if p := s.Path(); p != "" {
		return p + "." + name
	}
	return name
}

// Parent returns the enclosing scope, or nil for a root.
func (s *Scope) Parent() *Scope { return s.parent }

// Design returns the design the scope allocates into.
func (s *Scope) Design() *netlist.Design { return s.design }

// Implicit returns the implicit net policy.
func (s *Scope) Implicit() ImplicitPolicy { return s.implicit }

// Declare binds name to sym. It returns false, leaving the existing
// binding, when name is already declared in this scope.
func (s *Scope) Declare(name string, sym Symbol) bool {
	if _, dup := s.symbols[name]; dup {
		return false
	}
	s.symbols[name] = sym
	return true
}

// DeclareParam binds a parameter to its value.
func (s *Scope) DeclareParam(name string, value bitvec.Vector) bool {
	return s.Declare(name, Symbol{Kind: KindParameter, Value: value})
}

// DeclareFunction registers fn under name.
func (s *Scope) DeclareFunction(name string, fn *netlist.Function) bool {
	if _, dup := s.functions[name]; dup {
		return false
	}
	s.functions[name] = fn
	return true
}

// Lookup resolves path. A single name is searched outward through the
// enclosing scopes.
func (s *Scope) Lookup(path []string) Symbol {
	if len(path) == 0 {
		return Symbol{}
	}
	if len(path) == 1 {
		for sc := s; sc != nil; sc = sc.parent {
			if sym, ok := sc.symbols[path[0]]; ok {
				return sym
			}
		}
		return Symbol{}
	}
	target := s.resolve(path[:len(path)-1])
	if target == nil {
		return Symbol{}
	}
	return target.symbols[path[len(path)-1]]
}

// Function resolves a function by path.
func (s *Scope) Function(path []string) *netlist.Function {
	if len(path) == 0 {
		return nil
	}
	if len(path) == 1 {
		for sc := s; sc != nil; sc = sc.parent {
			if fn, ok := sc.functions[path[0]]; ok {
				return fn
			}
		}
		return nil
	}
	target := s.resolve(path[:len(path)-1])
	if target == nil {
		return nil
	}
	return target.functions[path[len(path)-1]]
}

// resolve finds the scope a dotted prefix names. The first component is
// matched against child scopes outward from s.
func (s *Scope) resolve(prefix []string) *Scope {
	var start *Scope
	for sc := s; sc != nil && start == nil; sc = sc.parent {
		start = sc.children[prefix[0]]
	}
	for _, name := range prefix[1:] {
		if start == nil {
			return nil
		}
		start = start.children[name]
	}
	return start
}

// DeclareImplicit creates a one-bit implicit net for name in this scope
// and returns it. It does not consult the policy; callers do.
func (s *Scope) DeclareImplicit(name string) *netlist.Signal {
	sig := s.design.NewSignal(s.Qualify(name), netlist.SignalImplicit, 0, 0)
	s.symbols[name] = Symbol{Kind: KindNet, Signal: sig}
	return sig
}

// LocalSymbol returns a fresh name for a temporary. Names are unique
// within the root scope and every scope below it.
func (s *Scope) LocalSymbol() string {
	n := *s.local
	*s.local = n + 1
	return s.Qualify("_s" + strconv.Itoa(n))
}

// Names returns the names declared directly in this scope, sorted.
func (s *Scope) Names() []string {
	return slices.Sorted(maps.Keys(s.symbols))
}
