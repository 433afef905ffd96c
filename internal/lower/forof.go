// for-of lowering: an index-based for loop reading the RHS through a
// captured array-like reference, reassigning the loop variable(s) from
// an indexed read at the top of the body.
//
// Grounded on evanw-esbuild/internal/js_parser_lower.go's lowerForLoop
// family (the real compiler's for-of path uses Symbol.iterator instead,
// since it targets down to ES5 but not further; this domain's ES5
// target has no iterator protocol to fall back on, so the index-based
// shape here is the only lowering, grounded on the same temp-capture
// idiom esbuild uses for tagged templates and spread).
package lower

import (
	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/transformer"
)

func (l *Lowerer) lowerForOf(s ast.Stmt, d *ast.SForOf) ast.Stmt {
	rhs := l.VisitExpr(d.Value)

	var arrRef ast.Ref
	var initDecls []ast.Decl
	iRef := l.t.CreateTempVariable(transformer.TempFlagI)

	if ident, ok := rhs.Data.(*ast.EIdentifier); ok {
		arrRef = ident.Ref
		initDecls = []ast.Decl{{Binding: ast.Binding{Loc: ast.SynthesizedLoc, Data: &ast.BIdentifier{Ref: iRef}}, ValueOrNil: ast.Num(0)}}
	} else {
		arrRef = l.t.CreateTempVariable(transformer.TempFlagAuto)
		initDecls = []ast.Decl{
			{Binding: ast.Binding{Loc: ast.SynthesizedLoc, Data: &ast.BIdentifier{Ref: iRef}}, ValueOrNil: ast.Num(0)},
			{Binding: ast.Binding{Loc: ast.SynthesizedLoc, Data: &ast.BIdentifier{Ref: arrRef}}, ValueOrNil: rhs},
		}
	}

	indexed := ast.Index(ast.Ident(arrRef), ast.Ident(iRef))

	lhsInit := l.forOfHeadInit(d.Init, indexed)

	bodyStmts := append([]ast.Stmt{}, lhsInit...)
	visitedBody := l.VisitStmt(d.Body)
	if block, ok := visitedBody.Data.(*ast.SBlock); ok {
		bodyStmts = append(bodyStmts, block.Stmts...)
	} else {
		bodyStmts = append(bodyStmts, visitedBody)
	}

	forStmt := &ast.SFor{
		InitOrNil: ast.VarDecls(ast.LocalVar, initDecls),
		TestOrNil: ast.Binary(ast.BinOpLt, ast.Ident(iRef), ast.Dot(ast.Ident(arrRef), "length")),
		UpdateOrNil: ast.Expr{Node: ast.Node{Loc: ast.SynthesizedLoc}, Data: &ast.EUnary{
			Op: ast.UnOpPostInc, Value: ast.Ident(iRef),
		}},
		Body: ast.Block(bodyStmts),
	}
	s.Data = forStmt
	return s
}

// forOfHeadInit builds the statements that bind the loop variable(s) for
// one iteration from indexed.
func (l *Lowerer) forOfHeadInit(init ast.Stmt, indexed ast.Expr) []ast.Stmt {
	switch d := init.Data.(type) {
	case *ast.SLocal:
		if len(d.Decls) == 0 {
			// Error-recovery case: nothing declared, still allocate a
			// discard temp so the loop body has somewhere to no-op.
			l.t.CreateTempVariable(transformer.TempFlagAuto)
			return nil
		}
		decl := d.Decls[0]
		if ast.IsBindingPattern(decl.Binding) {
			return l.destructurer().DestructureBinding(l, ast.LocalVar, decl.Binding, indexed)
		}
		id := decl.Binding.Data.(*ast.BIdentifier)
		return []ast.Stmt{ast.VarDecl(ast.LocalVar, id.Ref, indexed)}

	case *ast.SExpr:
		if isPatternExpr(d.Value) {
			return l.destructurer().DestructureAssignment(l, d.Value, indexed)
		}
		return []ast.Stmt{ast.AssignStmt(l.VisitExpr(d.Value), indexed)}

	default:
		panic("lower: unrecognized for-of init shape")
	}
}

func isPatternExpr(e ast.Expr) bool {
	switch e.Data.(type) {
	case *ast.EArray, *ast.EObject:
		return true
	default:
		return false
	}
}
