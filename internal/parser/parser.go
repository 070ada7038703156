package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
)

// DeclKind represents the kind of a top-level Go declaration
type DeclKind string

const (
	KindFunction DeclKind = "function"
	KindMethod   DeclKind = "method"
	KindType     DeclKind = "type"
	KindConst    DeclKind = "const"
	KindVar      DeclKind = "var"
	KindImport   DeclKind = "import"
)

// Decl is a top-level declaration and the byte range it occupies in the
// source, including its doc comment.
type Decl struct {
	Name  string
	Kind  DeclKind
	Start int
	End   int
}

// Result represents the output of parsing a Go source file
type Result struct {
	PackageName string
	Decls       []Decl

	// Errors encountered during parsing
	Errors []error
}

// HasErrors returns true if any parsing errors occurred
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Parser handles AST-based parsing of Go source
type Parser struct {
	fset *token.FileSet
}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{
		fset: token.NewFileSet(),
	}
}

// ParseSource parses Go source held in memory and returns its top-level
// declarations in source order.
func (p *Parser) ParseSource(filename string, src []byte) (*Result, error) {
	result := &Result{}

	file, err := parser.ParseFile(p.fset, filename, src, parser.ParseComments)
	if err != nil {
		// Syntax errors are non-fatal; the partial AST may still carry declarations
		result.Errors = append(result.Errors, fmt.Errorf("syntax error: %w", err))
	}
	if file == nil {
		return result, nil
	}

	if file.Name != nil {
		result.PackageName = file.Name.Name
	}

	tf := p.fset.File(file.Pos())
	if tf == nil {
		return result, nil
	}
	offset := func(pos token.Pos) int {
		if !pos.IsValid() {
			return 0
		}
		return tf.Offset(pos)
	}

	for _, d := range file.Decls {
		decl, ok := p.declFor(d)
		if !ok {
			continue
		}
		start, end := d.Pos(), d.End()
		if doc := docOf(d); doc != nil {
			start = doc.Pos()
		}
		decl.Start, decl.End = offset(start), offset(end)
		if decl.End > len(src) {
			decl.End = len(src)
		}
		if decl.Start >= decl.End {
			continue
		}
		result.Decls = append(result.Decls, decl)
	}

	return result, nil
}

// declFor classifies a top-level declaration
func (p *Parser) declFor(d ast.Decl) (Decl, bool) {
	switch n := d.(type) {
	case *ast.FuncDecl:
		if n.Name == nil {
			return Decl{}, false
		}
		decl := Decl{Name: n.Name.Name, Kind: KindFunction}
		if n.Recv != nil && len(n.Recv.List) > 0 {
			decl.Kind = KindMethod
			if recv := receiverType(n.Recv.List[0].Type); recv != "" {
				decl.Name = recv + "." + decl.Name
			}
		}
		return decl, true
	case *ast.GenDecl:
		decl := Decl{}
		switch n.Tok {
		case token.IMPORT:
			decl.Kind = KindImport
		case token.TYPE:
			decl.Kind = KindType
		case token.CONST:
			decl.Kind = KindConst
		case token.VAR:
			decl.Kind = KindVar
		default:
			return Decl{}, false
		}
		if len(n.Specs) > 0 {
			decl.Name = specName(n.Specs[0])
		}
		return decl, true
	case *ast.BadDecl:
		return Decl{}, false
	}
	return Decl{}, false
}

func docOf(d ast.Decl) *ast.CommentGroup {
	switch n := d.(type) {
	case *ast.FuncDecl:
		return n.Doc
	case *ast.GenDecl:
		return n.Doc
	}
	return nil
}

func specName(spec ast.Spec) string {
	switch s := spec.(type) {
	case *ast.TypeSpec:
		return s.Name.Name
	case *ast.ValueSpec:
		if len(s.Names) > 0 {
			return s.Names[0].Name
		}
	case *ast.ImportSpec:
		return s.Path.Value
	}
	return ""
}

// receiverType extracts the receiver type name from a method
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
