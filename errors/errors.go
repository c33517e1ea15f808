package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValidate Phase = "validate" // decoder construction
	PhaseDecode   Phase = "decode"   // plane layout to values
	PhaseEncode   Phase = "encode"   // values to plane layout
	PhaseLoad     Phase = "load"     // source buffer acquisition
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfSpec    Kind = "out_of_spec"
	KindOutOfBounds  Kind = "out_of_bounds"
	KindInvalidInput Kind = "invalid_input"
	KindUnsupported  Kind = "unsupported"
)

// Rule names the out-of-spec condition that failed
type Rule string

const (
	RuleZeroWidth      Rule = "zero_width"
	RuleWidthMismatch  Rule = "width_mismatch"
	RuleLengthMultiple Rule = "length_multiple"
)

// ErrOutOfSpec matches every out-of-spec error regardless of rule.
var ErrOutOfSpec = &Error{Phase: PhaseValidate, Kind: KindOutOfSpec}

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Rule   Rule
	GoType string
	Detail string
	Want   int
	Got    int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Rule != "" {
		b.WriteString(" (")
		b.WriteString(string(e.Rule))
		b.WriteByte(')')
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Phase and Kind must match; Rule must match only when target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Phase != t.Phase || e.Kind != t.Kind {
		return false
	}
	return t.Rule == "" || e.Rule == t.Rule
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Rule sets the failed rule
func (b *Builder) Rule(r Rule) *Builder {
	b.err.Rule = r
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Expect records the wanted and actual values
func (b *Builder) Expect(want, got int) *Builder {
	b.err.Want = want
	b.err.Got = got
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ZeroWidth creates an error for a non-positive element width
func ZeroWidth(goType string, width int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindOutOfSpec,
		Rule:   RuleZeroWidth,
		GoType: goType,
		Got:    width,
		Value:  width,
		Detail: fmt.Sprintf("element width must be positive, got %d", width),
	}
}

// WidthMismatch creates an error for a declared width that differs from the type width
func WidthMismatch(goType string, typeWidth, declared int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindOutOfSpec,
		Rule:   RuleWidthMismatch,
		GoType: goType,
		Want:   typeWidth,
		Got:    declared,
		Value:  declared,
		Detail: fmt.Sprintf("element size %d does not match declared width %d", typeWidth, declared),
	}
}

// LengthNotMultiple creates an error for a buffer that does not split into whole planes
func LengthNotMultiple(goType string, length, width int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindOutOfSpec,
		Rule:   RuleLengthMultiple,
		GoType: goType,
		Want:   width,
		Got:    length,
		Value:  length,
		Detail: fmt.Sprintf("buffer length %d is not a multiple of element width %d (remainder %d)", length, width, length%width),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
		Want:   length,
		Got:    index,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
