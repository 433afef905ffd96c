// CreateTransformation is the module's one external entry point,
// "createTransformation(transformer) -> (SourceFile -> SourceFile)".
// It wires ast.ComputeFlags's output into the transformer's substitution
// hooks, then runs the ordinary flag-gated visit over every top-level
// statement, handling the two things that are properties of the file as
// a whole rather than of any one construct: prologue directives (passed
// through ahead of anything synthesized) and the file-level "_this"
// capture (the file-level "this" a source file visitor needs to own).
//
// Grounded on evanw-esbuild/internal/js_parser.go's Parse/lowerFile
// split between "visit everything" and "emit one prologue-aware
// wrapper" at the top of the tree.
package lower

import (
	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/transformer"
)

// CreateTransformation builds the SourceFile → SourceFile function for a
// single file transform. t is expected to be freshly constructed (no
// prior InstallThisCaptureSubstitution call); this function installs
// that hook itself once ComputeFlags has run against the actual tree
// being transformed, since thisOwner is only meaningful for the one
// tree it was computed from.
func CreateTransformation(t *transformer.Transformer) func(*ast.SourceFile) *ast.SourceFile {
	return func(file *ast.SourceFile) *ast.SourceFile {
		thisOwner := ast.ComputeFlags(file)
		InstallThisCaptureSubstitution(t, thisOwner)

		l := New(t)
		l.SetThisCaptureOwners(captureOwnerSet(thisOwner))

		directives, rest := splitPrologue(file.Stmts)
		t.StartLexicalEnvironment()
		body := l.visitStmts(rest)
		body = t.EndLexicalEnvironment(body)

		if ref, ok := l.needsThisCapture(0); ok {
			decl := ast.VarDecl(ast.LocalVar, ref, ast.This())
			body = append([]ast.Stmt{decl}, body...)
		}

		out := make([]ast.Stmt, 0, len(directives)+len(body))
		out = append(out, directives...)
		out = append(out, body...)
		return &ast.SourceFile{Stmts: out}
	}
}

// captureOwnerSet turns thisOwner's value set (the owners at least one
// bare "this" reference actually points through) into a lookup set, so
// lowerFn/transform.go can eagerly mint each such owner's "_this" Ref
// during lowering instead of waiting for the printer to ask for it.
func captureOwnerSet(thisOwner map[ast.NodeID]ast.NodeID) map[ast.NodeID]bool {
	owners := make(map[ast.NodeID]bool, len(thisOwner))
	for _, ownerID := range thisOwner {
		owners[ownerID] = true
	}
	return owners
}

// splitPrologue peels off the leading run of directive-prologue
// statements ("use strict", and any others a parser upstream left as
// SDirective) so they stay untouched ahead of any synthesized
// "var _this = this;".
func splitPrologue(stmts []ast.Stmt) (directives []ast.Stmt, rest []ast.Stmt) {
	i := 0
	for i < len(stmts) {
		if _, ok := stmts[i].Data.(*ast.SDirective); !ok {
			break
		}
		i++
	}
	return stmts[:i], stmts[i:]
}
