package errgen

import (
	"go/token"
)

// Options tunes validation beyond the default rules.
type Options struct {
	// Strict rejects unknown or repeated annotation fields.
	Strict bool
	// UniqueCodes rejects error codes shared by two variants of one enum.
	UniqueCodes bool
}

// Metadata is the validated annotation of one variant.
type Metadata struct {
	Variant Variant
	// StatusCode is zero for UseCaseError enums.
	StatusCode uint16
	ErrorCode  uint32
}

const (
	fieldStatusCode = "status_code"
	fieldErrorCode  = "error_code"
)

func requiredFields(g Generator) []string {
	if g == ResponseError {
		return []string{fieldStatusCode, fieldErrorCode}
	}
	return []string{fieldErrorCode}
}

// Collect validates the annotation of every variant of e, in order, and
// stops at the first problem. Duplicate error codes are accepted unless
// opts.UniqueCodes is set.
func Collect(fset *token.FileSet, e *Enum, g Generator, opts Options) ([]Metadata, error) {
	attrName := g.Attribute()
	required := requiredFields(g)

	out := make([]Metadata, 0, len(e.Variants))
	owners := make(map[uint32]string)
	for _, v := range e.Variants {
		c := findDirective(v.Doc, attrName)
		if c == nil {
			return nil, diagf(fset, v.Pos, MissingAttribute, "%s: %s annotation not found", v.Name, attrName)
		}
		attr, err := ParseAttribute(fset, c, attrName)
		if err != nil {
			return nil, err
		}

		for _, f := range required {
			if _, ok := attr.Lookup(f); !ok {
				return nil, diagf(fset, attr.Pos, MissingField, "%s not found in %s fields", f, attrName)
			}
		}
		if opts.Strict {
			if err := checkStrict(fset, attr, required); err != nil {
				return nil, err
			}
		}

		md := Metadata{Variant: v}
		if g == ResponseError {
			md.StatusCode, err = statusCodeOf(fset, attr)
			if err != nil {
				return nil, err
			}
		}
		md.ErrorCode, err = errorCodeOf(fset, attr)
		if err != nil {
			return nil, err
		}
		if g == ResponseError {
			if err := checkStatusMembership(fset, attr); err != nil {
				return nil, err
			}
		}

		if opts.UniqueCodes {
			if prev, dup := owners[md.ErrorCode]; dup {
				p, _ := attr.Lookup(fieldErrorCode)
				return nil, diagf(fset, p.ValuePos, DuplicateErrorCode,
					"error_code %d of %s is already used by %s", md.ErrorCode, v.Name, prev)
			}
			owners[md.ErrorCode] = v.Name
		}
		out = append(out, md)
	}
	return out, nil
}

// statusCodeOf width-checks every status_code occurrence; the first wins.
func statusCodeOf(fset *token.FileSet, attr *Attribute) (uint16, error) {
	var (
		code  uint16
		found bool
	)
	for _, p := range attr.Pairs {
		if p.Name != fieldStatusCode {
			continue
		}
		v, ok := literalToInteger[uint16](p.Value)
		if !ok {
			return 0, diagf(fset, p.ValuePos, InvalidFieldType, "status_code must be uint16")
		}
		if !found {
			code, found = v, true
		}
	}
	return code, nil
}

func errorCodeOf(fset *token.FileSet, attr *Attribute) (uint32, error) {
	var (
		code  uint32
		found bool
	)
	for _, p := range attr.Pairs {
		if p.Name != fieldErrorCode {
			continue
		}
		v, ok := literalToInteger[uint32](p.Value)
		if !ok {
			return 0, diagf(fset, p.ValuePos, InvalidFieldType, "error_code must be uint32")
		}
		if !found {
			code, found = v, true
		}
	}
	return code, nil
}

func checkStatusMembership(fset *token.FileSet, attr *Attribute) error {
	for _, p := range attr.Pairs {
		if p.Name != fieldStatusCode {
			continue
		}
		v, _ := literalToInteger[uint16](p.Value)
		if err := ValidateStatusCode(fset, p.ValuePos, v); err != nil {
			return err
		}
	}
	return nil
}

func checkStrict(fset *token.FileSet, attr *Attribute, known []string) error {
	seen := make(map[string]bool, len(attr.Pairs))
	for _, p := range attr.Pairs {
		allowed := false
		for _, k := range known {
			if p.Name == k {
				allowed = true
				break
			}
		}
		if !allowed {
			return diagf(fset, p.NamePos, UnknownField, "unknown field %s in %s", p.Name, attr.Name)
		}
		if seen[p.Name] {
			return diagf(fset, p.NamePos, UnknownField, "field %s repeated in %s", p.Name, attr.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
