package catalog

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"strings"

	"github.com/ettle/strcase"
)

// PropertyDirective marks a method as a property-like accessor that is not a command.
const PropertyDirective = "//chepy:property"

// RawMethod is what a Source knows about one method before its doc is parsed.
type RawMethod struct {
	Name     string   // command name, snake_case
	GoName   string   // Go identifier
	Params   []string // parameter flags in declaration order, receiver excluded
	Doc      string
	Property bool
	Err      error // introspection failure for this method only
}

// Source lists the public methods of a target.
type Source interface {
	Methods() ([]RawMethod, error)
}

// SnakeName converts a Go identifier to the name used on the command line.
func SnakeName(ident string) string {
	return strcase.ToSnake(ident)
}

// ASTSource reads the methods of one receiver type from Go source files.
type ASTSource struct {
	fsys     fs.FS
	typeName string
}

// NewASTSource creates a source over the *.go files at the root of fsys.
func NewASTSource(fsys fs.FS, typeName string) *ASTSource {
	return &ASTSource{fsys: fsys, typeName: typeName}
}

// Methods implements Source. Test files are ignored.
func (s *ASTSource) Methods() ([]RawMethod, error) {
	names, err := fs.Glob(s.fsys, "*.go")
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}

	fset := token.NewFileSet()
	var methods []RawMethod
	for _, name := range names {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		data, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		file, err := parser.ParseFile(fset, name, data, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		methods = append(methods, s.collect(file)...)
	}

	return methods, nil
}

func (s *ASTSource) collect(file *ast.File) []RawMethod {
	var methods []RawMethod
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
			continue
		}
		if receiverType(fn.Recv.List[0].Type) != s.typeName || !fn.Name.IsExported() {
			continue
		}

		m := RawMethod{
			Name:     SnakeName(fn.Name.Name),
			GoName:   fn.Name.Name,
			Doc:      fn.Doc.Text(),
			Property: hasDirective(fn.Doc, PropertyDirective),
		}
		m.Params, m.Err = paramNames(fn.Type.Params)
		methods = append(methods, m)
	}
	return methods
}

func receiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverType(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	}
	return ""
}

func paramNames(params *ast.FieldList) ([]string, error) {
	if params == nil {
		return nil, nil
	}
	var names []string
	for _, field := range params.List {
		if _, variadic := field.Type.(*ast.Ellipsis); variadic {
			return nil, fmt.Errorf("variadic parameters cannot be bound to flags")
		}
		if len(field.Names) == 0 {
			return nil, fmt.Errorf("unnamed parameter of type %s", exprString(field.Type))
		}
		for _, ident := range field.Names {
			if ident.Name == "_" {
				return nil, fmt.Errorf("blank parameter name")
			}
			names = append(names, SnakeName(ident.Name))
		}
	}
	return names, nil
}

func hasDirective(doc *ast.CommentGroup, directive string) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == directive {
			return true
		}
	}
	return false
}

func exprString(expr ast.Expr) string {
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return fmt.Sprintf("%T", expr)
}
