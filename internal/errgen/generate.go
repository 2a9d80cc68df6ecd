package errgen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"strings"
	"text/template"
)

// DefaultRuntime is the import path of the package providing the response
// error capability used by ResponseError output.
const DefaultRuntime = "github.com/tbourn/go-error-codes/pkg/httperr"

// GeneratedHeader is the first line of every generated file.
const GeneratedHeader = "// Code generated by errgen. DO NOT EDIT."

// File is the generated source for one enum.
type File struct {
	// Name is the base name of the file, see FileName.
	Name   string
	Enum   string
	Source []byte
}

// Generate resolves the enum named by t, validates every variant and emits
// its methods. Nothing is emitted when any check fails.
func Generate(p *Package, t Target, opts Options, runtime string) (*File, error) {
	e, err := p.Resolve(t.Name)
	if err != nil {
		return nil, err
	}
	md, err := Collect(p.Fset, e, t.Generator, opts)
	if err != nil {
		return nil, err
	}
	src, err := Emit(p.Name, e, t.Generator, md, runtime)
	if err != nil {
		return nil, err
	}
	return &File{Name: FileName(e.Name), Enum: e.Name, Source: src}, nil
}

// FileName returns the generated file name for enum, e.g.
// register_user_error_errgen.go for RegisterUserError.
func FileName(enum string) string {
	return toSnakeCase(enum) + GeneratedSuffix
}

type arm struct {
	Name       string
	Receiver   string
	StatusCode uint16
	ErrorCode  uint32
	Assertion  string
}

type emitData struct {
	Package     string
	Runtime     string
	RuntimeName string
	Method      string
	Arms        []arm
}

var (
	responseErrorTmpl = template.Must(template.New("response_error").Parse(`// Code generated by errgen. DO NOT EDIT.

package {{.Package}}

import "{{.Runtime}}"
{{range .Arms}}
// ErrorCode returns the application error code of {{.Name}}.
func ({{.Receiver}}) ErrorCode() uint32 {
	return {{.ErrorCode}}
}

// StatusCode returns the HTTP status code of {{.Name}}.
func ({{.Receiver}}) StatusCode() int {
	return {{.StatusCode}}
}

// ErrorResponse renders {{.Name}} as a JSON error response.
func (e {{.Receiver}}) ErrorResponse() {{$.RuntimeName}}.Response {
	return {{$.RuntimeName}}.NewResponse(e)
}
{{- if .Assertion}}

var _ {{$.RuntimeName}}.ResponseError = {{.Assertion}}
{{- end}}
{{end}}`))

	useCaseErrorTmpl = template.Must(template.New("use_case_error").Parse(`// Code generated by errgen. DO NOT EDIT.

package {{.Package}}
{{range .Arms}}
// {{$.Method}} returns the use case error code of {{.Name}}.
func ({{.Receiver}}) {{$.Method}}() uint32 {
	return {{.ErrorCode}}
}
{{end}}`))
)

// Emit renders the gofmt-ed source for e from validated metadata. It checks
// that every variant received exactly one set of methods.
func Emit(pkgName string, e *Enum, g Generator, md []Metadata, runtime string) ([]byte, error) {
	arms, err := buildArms(e, md)
	if err != nil {
		return nil, err
	}
	if runtime == "" {
		runtime = DefaultRuntime
	}

	data := emitData{
		Package:     pkgName,
		Runtime:     runtime,
		RuntimeName: path.Base(runtime),
		Method:      "ErrorCode",
		Arms:        arms,
	}

	var tmpl *template.Template
	switch g {
	case ResponseError:
		tmpl = responseErrorTmpl
	case UseCaseError:
		tmpl = useCaseErrorTmpl
		if !e.Exported {
			data.Method = "errorCode"
		}
	default:
		return nil, fmt.Errorf("unknown generator %v", g)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", e.Name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", e.Name, err)
	}
	return src, nil
}

func buildArms(e *Enum, md []Metadata) ([]arm, error) {
	count := make(map[string]int, len(md))
	arms := make([]arm, 0, len(md))
	for _, m := range md {
		v := m.Variant
		count[v.Name]++
		arms = append(arms, arm{
			Name:       v.Name,
			Receiver:   v.Receiver(),
			StatusCode: m.StatusCode,
			ErrorCode:  m.ErrorCode,
			Assertion:  assertion(v),
		})
	}
	for _, v := range e.Variants {
		if n := count[v.Name]; n != 1 {
			return nil, fmt.Errorf("%s: variant %s received %d arms, want 1", e.Name, v.Name, n)
		}
	}
	if len(arms) != len(e.Variants) {
		return nil, fmt.Errorf("%s: %d arms for %d variants", e.Name, len(arms), len(e.Variants))
	}
	return arms, nil
}

// assertion returns the value checked against the response error interface;
// generic variants have no instantiation to check.
func assertion(v Variant) string {
	if len(v.TypeParams) > 0 {
		return ""
	}
	if v.Unit && !v.PointerReceiver {
		return v.Name + "{}"
	}
	return "(*" + v.Name + ")(nil)"
}

// toSnakeCase converts a Go identifier to snake case, keeping acronyms
// together ("HTTPError" -> "http_error").
func toSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prevIsLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevIsLower || nextIsLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
