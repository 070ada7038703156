// Package parser finds the top-level declarations of Go source files.
//
// The chunker uses it to cut Go files into one chunk per declaration when a
// source file is the target of a "what documentation is relevant here" query.
//
// # Basic Usage
//
//	p := parser.New()
//	result, err := p.ParseSource("url.go", src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, d := range result.Decls {
//	    fmt.Printf("%s %s [%d,%d)\n", d.Kind, d.Name, d.Start, d.End)
//	}
//
// Ranges are byte offsets into src and include the declaration's doc comment.
// Syntax errors do not fail the parse: whatever the partial AST contains is
// reported and the errors are collected in Result.Errors.
package parser
