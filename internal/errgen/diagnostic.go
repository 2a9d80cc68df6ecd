package errgen

import (
	"errors"
	"fmt"
	"go/token"
)

// Kind classifies a generation failure.
type Kind int

const (
	// NotAnEnum: the derive directive is attached to something that is not
	// a sealed interface, or the interface has no variants.
	NotAnEnum Kind = iota + 1
	// MissingAttribute: a variant lacks the generator's annotation.
	MissingAttribute
	// MalformedAttribute: the annotation is not a list of name = value pairs.
	MalformedAttribute
	// MissingField: a required field is absent from the annotation.
	MissingField
	// InvalidFieldType: a value is not an integer literal of the right width.
	InvalidFieldType
	// UnknownStatusCode: status_code is not a registered HTTP status.
	UnknownStatusCode
	// UnknownField: strict mode only, the annotation names an unknown field
	// or repeats one.
	UnknownField
	// DuplicateErrorCode: unique-codes mode only, two variants share an
	// error_code.
	DuplicateErrorCode
)

var kindNames = map[Kind]string{
	NotAnEnum:          "NotAnEnum",
	MissingAttribute:   "MissingAttribute",
	MalformedAttribute: "MalformedAttribute",
	MissingField:       "MissingField",
	InvalidFieldType:   "InvalidFieldType",
	UnknownStatusCode:  "UnknownStatusCode",
	UnknownField:       "UnknownField",
	DuplicateErrorCode: "DuplicateErrorCode",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is a generation failure located at the offending source.
type Diagnostic struct {
	Kind Kind
	Pos  token.Position
	Msg  string
}

func (d *Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return d.Pos.String() + ": " + d.Msg
	}
	return d.Msg
}

// KindOf reports the Kind of the first *Diagnostic in err's chain.
func KindOf(err error) (Kind, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Kind, true
	}
	return 0, false
}

func diagf(fset *token.FileSet, pos token.Pos, kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind: kind,
		Pos:  fset.Position(pos),
		Msg:  fmt.Sprintf(format, args...),
	}
}
