package netelab

import "slices"

// Unit is one elaborated module.
type Unit struct {
	Name   string
	Path   string // source file the module came from
	Design *Design
}

// Result holds the units of one elaboration run, in source order.
type Result struct {
	Units []*Unit

	// diagnostics not owned by a unit: parse errors, duplicate modules
	// and a missing top module.
	diagnostics []Diagnostic
	errors      int
	config      DiagnosticConfig
}

// Unit returns the unit with the given module name, or nil.
func (r *Result) Unit(name string) *Unit {
	for _, u := range r.Units {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// Diagnostics returns the reported diagnostics: file-level ones first,
// then each unit's in unit order.
func (r *Result) Diagnostics() []Diagnostic {
	out := slices.Clone(r.diagnostics)
	for _, u := range r.Units {
		out = append(out, u.Design.Diagnostics()...)
	}
	return out
}

// Errors returns the number of error-class problems, counting ones
// whose diagnostics were filtered out.
func (r *Result) Errors() int {
	n := r.errors
	for _, u := range r.Units {
		n += u.Design.Errors()
	}
	return n
}

// Failed reports whether any reported diagnostic reaches the FailAt
// threshold of the diagnostic configuration.
func (r *Result) Failed() bool {
	return slices.ContainsFunc(r.Diagnostics(), func(d Diagnostic) bool {
		return r.config.ShouldFail(d.Severity)
	})
}

func (r *Result) report(d Diagnostic) {
	if d.Severity.IsError() {
		r.errors++
	}
	if !r.config.ShouldReport(d.Code, d.Severity) {
		return
	}
	d.Severity = r.config.Severity(d.Code, d.Severity)
	r.diagnostics = append(r.diagnostics, d)
}
