package netlist

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed netlist.cue
var schemaSource []byte

// Validator checks exported documents against the embedded CUE schema.
// A Validator is not safe for concurrent use.
type Validator struct {
	ctx      *cue.Context
	document cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("netlist.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}
	document := schema.LookupPath(cue.ParsePath("#Document"))
	if document.Err() != nil {
		return nil, fmt.Errorf("looking up #Document definition: %w", document.Err())
	}
	return &Validator{ctx: ctx, document: document}, nil
}

// Validate checks that doc conforms to the schema.
func (v *Validator) Validate(doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	return v.ValidateJSON(data)
}

// ValidateJSON checks JSON bytes against the schema. The returned error
// lists every violation, one per line.
func (v *Validator) ValidateJSON(data []byte) error {
	value := v.ctx.CompileBytes(data)
	if value.Err() != nil {
		return fmt.Errorf("compiling JSON as CUE: %w", value.Err())
	}
	if err := v.document.Unify(value).Validate(); err != nil {
		var msgs []string
		for _, e := range errors.Errors(err) {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("schema validation failed:\n%s", strings.Join(msgs, "\n"))
	}
	return nil
}
