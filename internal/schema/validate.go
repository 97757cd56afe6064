// Package schema validates serialized digest payloads against the embedded
// CUE schema. Validation is structural and closed over the v3.3 contract:
// fixed-point integer degrees, gate/line string format, closed chart id and
// aspect type enumerations.
package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed digest.cue
var digestSchema []byte

// Validation error codes (E200-E299)
const (
	ErrSchemaCompile = "E200" // embedded schema failed to compile
	ErrPayloadDecode = "E201" // payload is not valid JSON
	ErrConstraint    = "E202" // payload violates a schema constraint
)

// ValidationError represents one payload validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

var (
	compileOnce sync.Once
	compiledCtx *cue.Context
	compiledDef cue.Value
	compileErr  error
)

// digestDef compiles the embedded schema once and returns the #Digest
// definition.
func digestDef() (*cue.Context, cue.Value, error) {
	compileOnce.Do(func() {
		compiledCtx = cuecontext.New()
		schema := compiledCtx.CompileBytes(digestSchema, cue.Filename("digest.cue"))
		if err := schema.Err(); err != nil {
			compileErr = err
			return
		}
		compiledDef = schema.LookupPath(cue.ParsePath("#Digest"))
		if err := compiledDef.Err(); err != nil {
			compileErr = err
		}
	})
	return compiledCtx, compiledDef, compileErr
}

// Validate checks a serialized digest payload against the schema.
// Returns all violations found (does not fail-fast).
func Validate(payload []byte) []ValidationError {
	ctx, def, err := digestDef()
	if err != nil {
		return []ValidationError{{
			Field:   "schema",
			Message: err.Error(),
			Code:    ErrSchemaCompile,
		}}
	}

	expr, err := cuejson.Extract("payload.json", payload)
	if err != nil {
		return []ValidationError{{
			Field:   "payload",
			Message: err.Error(),
			Code:    ErrPayloadDecode,
		}}
	}
	val := ctx.BuildExpr(expr)
	if err := val.Err(); err != nil {
		return []ValidationError{{
			Field:   "payload",
			Message: err.Error(),
			Code:    ErrPayloadDecode,
		}}
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		var errs []ValidationError
		for _, e := range cueerrors.Errors(err) {
			errs = append(errs, ValidationError{
				Field:   strings.Join(e.Path(), "."),
				Message: e.Error(),
				Code:    ErrConstraint,
			})
		}
		return errs
	}

	return nil
}
