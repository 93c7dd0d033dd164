// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid hint schema")

const definition = `
#FieldType: "text" | "list" | "image" | "[image]" | "file" | "[file]" | "flag" | "[flag]" | "date" | "table"

#FieldHint: {
	label:        string
	id?:          string
	type?:        #FieldType
	indent?:      int & >=0
	fix_heading?: bool
	...
}

name?:   string
prefix?: string
body?: [...#FieldHint]
extra?: {...}
`

// Validate checks decoded schema content against the CUE definition above.
func Validate(raw map[string]any) error {
	ctx := cuecontext.New()
	def := ctx.CompileString(definition)
	if err := def.Err(); err != nil {
		return fmt.Errorf("compile schema definition: %w", err)
	}

	if raw == nil {
		raw = map[string]any{}
	}
	value := ctx.Encode(raw)
	if err := value.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
