package errgen

import (
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Generator selects what is derived for an enum.
type Generator int

const (
	// ResponseError derives ErrorCode, StatusCode and ErrorResponse.
	ResponseError Generator = iota + 1
	// UseCaseError derives the error code method only.
	UseCaseError
)

func (g Generator) String() string {
	switch g {
	case ResponseError:
		return "ResponseError"
	case UseCaseError:
		return "UseCaseError"
	}
	return fmt.Sprintf("Generator(%d)", int(g))
}

// Attribute returns the name of the per-variant annotation read by g.
func (g Generator) Attribute() string {
	switch g {
	case ResponseError:
		return "response_error"
	case UseCaseError:
		return "use_case_error"
	}
	return ""
}

// GeneratedSuffix ends the name of every file written by errgen.
const GeneratedSuffix = "_errgen.go"

// Package is a parsed package directory.
type Package struct {
	Name  string
	Dir   string
	Fset  *token.FileSet
	Files []*ast.File

	types map[string]*typeDecl
	order []*typeDecl
}

type typeDecl struct {
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
}

// Target is a type declaration that carries a derive directive.
type Target struct {
	Name      string
	Generator Generator
	Pos       token.Pos
}

// LoadDir parses the non-test Go files of dir that match the default build
// context. Files previously written by errgen are skipped.
func LoadDir(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read package dir: %w", err)
	}

	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") ||
			strings.HasSuffix(name, "_test.go") || strings.HasSuffix(name, GeneratedSuffix) {
			continue
		}
		if ok, err := build.Default.MatchFile(dir, name); err != nil || !ok {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}

	pkg, err := NewPackage(fset, files...)
	if err != nil {
		return nil, err
	}
	pkg.Dir = dir
	return pkg, nil
}

// NewPackage indexes already parsed files of one package. The files must
// have been parsed with parser.ParseComments.
func NewPackage(fset *token.FileSet, files ...*ast.File) (*Package, error) {
	p := &Package{
		Fset:  fset,
		Files: files,
		types: make(map[string]*typeDecl),
	}
	for _, f := range files {
		if p.Name == "" {
			p.Name = f.Name.Name
		} else if f.Name.Name != p.Name {
			return nil, fmt.Errorf("found packages %s and %s", p.Name, f.Name.Name)
		}
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, s := range gd.Specs {
				ts := s.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && !gd.Lparen.IsValid() {
					doc = gd.Doc
				}
				td := &typeDecl{spec: ts, doc: doc}
				p.types[ts.Name.Name] = td
				p.order = append(p.order, td)
			}
		}
	}
	return p, nil
}

// Targets lists the type declarations carrying //errgen:derive in source
// order.
func (p *Package) Targets() ([]Target, error) {
	var out []Target
	for _, td := range p.order {
		c := findDirective(td.doc, "derive")
		if c == nil {
			continue
		}
		args := strings.Fields(c.Text[len(directivePrefix+"derive"):])
		var g Generator
		if len(args) == 1 {
			switch args[0] {
			case "ResponseError":
				g = ResponseError
			case "UseCaseError":
				g = UseCaseError
			}
		}
		if g == 0 {
			return nil, diagf(p.Fset, c.Slash, MalformedAttribute,
				"errgen:derive expects ResponseError or UseCaseError")
		}
		out = append(out, Target{Name: td.spec.Name.Name, Generator: g, Pos: td.spec.Pos()})
	}
	return out, nil
}

// Enum is a sealed interface and its variants in source order.
type Enum struct {
	Name     string
	Pos      token.Pos
	Exported bool
	Marker   string
	Variants []Variant
}

// Variant is a named type implementing an enum's marker method.
type Variant struct {
	Name       string
	Pos        token.Pos
	Doc        *ast.CommentGroup
	TypeParams []string
	// Unit is set for variants declared as struct{}.
	Unit bool
	// PointerReceiver is set when the marker is declared on *T, in which
	// case only *T belongs to the enum.
	PointerReceiver bool
}

// Receiver renders the receiver type used for generated methods.
func (v Variant) Receiver() string {
	s := v.Name
	if len(v.TypeParams) > 0 {
		s += "[" + strings.Join(v.TypeParams, ", ") + "]"
	}
	if v.PointerReceiver {
		s = "*" + s
	}
	return s
}

// Resolve checks that name is a sealed interface and collects its variants.
func (p *Package) Resolve(name string) (*Enum, error) {
	td, ok := p.types[name]
	if !ok {
		return nil, &Diagnostic{Kind: NotAnEnum, Msg: fmt.Sprintf("type %s not found in package %s", name, p.Name)}
	}
	iface, ok := td.spec.Type.(*ast.InterfaceType)
	if !ok {
		return nil, diagf(p.Fset, td.spec.Pos(), NotAnEnum, "%s is expected to be a sealed interface", name)
	}
	marker := markerMethod(iface)
	if marker == "" {
		return nil, diagf(p.Fset, td.spec.Pos(), NotAnEnum,
			"%s is expected to declare an unexported marker method without arguments", name)
	}

	// Variants are found by marker name alone, so two enums sharing one
	// would claim each other's variants.
	for _, other := range p.order {
		if other == td || findDirective(other.doc, "derive") == nil {
			continue
		}
		if oi, ok := other.spec.Type.(*ast.InterfaceType); ok && markerMethod(oi) == marker {
			return nil, diagf(p.Fset, td.spec.Pos(), NotAnEnum,
				"%s shares its marker method %s() with %s; each enum needs its own marker", name, marker, other.spec.Name.Name)
		}
	}

	e := &Enum{
		Name:     name,
		Pos:      td.spec.Pos(),
		Exported: ast.IsExported(name),
		Marker:   marker,
	}
	for _, f := range p.Files {
		for _, decl := range f.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) != 1 || fd.Name.Name != marker || !isNiladic(fd.Type) {
				continue
			}
			recv, ptr := receiverBase(fd.Recv.List[0].Type)
			vd, ok := p.types[recv]
			if !ok {
				continue
			}
			e.Variants = append(e.Variants, Variant{
				Name:            recv,
				Pos:             vd.spec.Pos(),
				Doc:             vd.doc,
				TypeParams:      typeParamNames(vd.spec),
				Unit:            isEmptyStruct(vd.spec.Type),
				PointerReceiver: ptr,
			})
		}
	}
	if len(e.Variants) == 0 {
		return nil, diagf(p.Fset, td.spec.Pos(), NotAnEnum, "%s has no variants: no type declares %s()", name, marker)
	}
	sort.Slice(e.Variants, func(i, j int) bool { return e.Variants[i].Pos < e.Variants[j].Pos })
	return e, nil
}

func markerMethod(iface *ast.InterfaceType) string {
	if iface.Methods == nil {
		return ""
	}
	for _, m := range iface.Methods.List {
		ft, ok := m.Type.(*ast.FuncType)
		if !ok || len(m.Names) != 1 || ast.IsExported(m.Names[0].Name) || !isNiladic(ft) {
			continue
		}
		return m.Names[0].Name
	}
	return ""
}

func isNiladic(ft *ast.FuncType) bool {
	return ft.Params.NumFields() == 0 && ft.Results.NumFields() == 0
}

func receiverBase(expr ast.Expr) (name string, pointer bool) {
	for {
		switch x := expr.(type) {
		case *ast.StarExpr:
			pointer = true
			expr = x.X
		case *ast.ParenExpr:
			expr = x.X
		case *ast.IndexExpr:
			expr = x.X
		case *ast.IndexListExpr:
			expr = x.X
		case *ast.Ident:
			return x.Name, pointer
		default:
			return "", pointer
		}
	}
}

func typeParamNames(ts *ast.TypeSpec) []string {
	if ts.TypeParams == nil {
		return nil
	}
	var names []string
	for _, f := range ts.TypeParams.List {
		for _, n := range f.Names {
			names = append(names, n.Name)
		}
	}
	return names
}

func isEmptyStruct(expr ast.Expr) bool {
	st, ok := expr.(*ast.StructType)
	return ok && st.Fields.NumFields() == 0
}
