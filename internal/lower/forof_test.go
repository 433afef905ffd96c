package lower

import (
	"testing"

	"github.com/tsdown/es6down/internal/ast"
)

func TestLowerForOfIdentifierSourceReusesItDirectly(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	itemRef := tr.GlobalRef("item")
	xsRef := tr.GlobalRef("xs")

	decl := ast.Decl{Binding: ast.Binding{Data: &ast.BIdentifier{Ref: itemRef}}}
	forOf := &ast.SForOf{
		Init:  ast.Stmt{Data: &ast.SLocal{Kind: ast.LocalVar, Decls: []ast.Decl{decl}}},
		Value: ast.Ident(xsRef),
		Body:  ast.Block(nil),
	}
	s := ast.Stmt{Data: forOf}
	out := l.lowerForOf(s, forOf)

	forStmt, ok := out.Data.(*ast.SFor)
	if !ok {
		t.Fatalf("expected an index-based for loop, got %#v", out.Data)
	}
	initDecl, ok := forStmt.InitOrNil.Data.(*ast.SLocal)
	if !ok || len(initDecl.Decls) != 1 {
		t.Fatalf("expected a single counter declaration when the source is already an identifier, got %#v", forStmt.InitOrNil.Data)
	}
	lengthDot := forStmt.TestOrNil.Data.(*ast.EBinary).Right.Data.(*ast.EDot)
	if lengthDot.Name != "length" {
		t.Fatalf("expected the test to read xs.length, got %#v", lengthDot)
	}
	sourceIdent, ok := lengthDot.Target.Data.(*ast.EIdentifier)
	if !ok || sourceIdent.Ref != xsRef {
		t.Fatalf("expected the loop to read .length directly off xs with no extra temp, got %#v", lengthDot.Target.Data)
	}
}

func TestLowerForOfNonIdentifierSourceIsHoisted(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	itemRef := tr.GlobalRef("item")
	fnRef := tr.GlobalRef("getXs")

	decl := ast.Decl{Binding: ast.Binding{Data: &ast.BIdentifier{Ref: itemRef}}}
	forOf := &ast.SForOf{
		Init:  ast.Stmt{Data: &ast.SLocal{Kind: ast.LocalVar, Decls: []ast.Decl{decl}}},
		Value: ast.Call(ast.Ident(fnRef)),
		Body:  ast.Block(nil),
	}
	s := ast.Stmt{Data: forOf}
	out := l.lowerForOf(s, forOf)

	forStmt := out.Data.(*ast.SFor)
	initDecl := forStmt.InitOrNil.Data.(*ast.SLocal)
	if len(initDecl.Decls) != 2 {
		t.Fatalf("expected both the counter and a hoisted source temp declared, got %d decls", len(initDecl.Decls))
	}
	if _, ok := initDecl.Decls[1].ValueOrNil.Data.(*ast.ECall); !ok {
		t.Fatalf("expected the second decl to capture the call result, got %#v", initDecl.Decls[1].ValueOrNil.Data)
	}
}

func TestLowerForOfAssignsLoopVariableFromIndexedRead(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	itemRef := tr.GlobalRef("item")
	xsRef := tr.GlobalRef("xs")

	decl := ast.Decl{Binding: ast.Binding{Data: &ast.BIdentifier{Ref: itemRef}}}
	forOf := &ast.SForOf{
		Init:  ast.Stmt{Data: &ast.SLocal{Kind: ast.LocalVar, Decls: []ast.Decl{decl}}},
		Value: ast.Ident(xsRef),
		Body:  ast.Block(nil),
	}
	s := ast.Stmt{Data: forOf}
	out := l.lowerForOf(s, forOf)

	forStmt := out.Data.(*ast.SFor)
	block := forStmt.Body.Data.(*ast.SBlock)
	if len(block.Stmts) == 0 {
		t.Fatalf("expected at least the loop-variable assignment in the body")
	}
	firstDecl, ok := block.Stmts[0].Data.(*ast.SLocal)
	if !ok || len(firstDecl.Decls) != 1 {
		t.Fatalf("expected the body to open with a single var declaration for item, got %#v", block.Stmts[0].Data)
	}
	if _, ok := firstDecl.Decls[0].ValueOrNil.Data.(*ast.EIndex); !ok {
		t.Fatalf("expected item's value to be an indexed read, got %#v", firstDecl.Decls[0].ValueOrNil.Data)
	}
}

func TestLowerForOfDestructuringHead(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	aRef := tr.GlobalRef("a")
	bRef := tr.GlobalRef("b")
	xsRef := tr.GlobalRef("xs")

	pattern := ast.Binding{Data: &ast.BArray{Items: []ast.ArrayBinding{
		{Binding: ast.Binding{Data: &ast.BIdentifier{Ref: aRef}}},
		{Binding: ast.Binding{Data: &ast.BIdentifier{Ref: bRef}}},
	}}}
	decl := ast.Decl{Binding: pattern}
	forOf := &ast.SForOf{
		Init:  ast.Stmt{Data: &ast.SLocal{Kind: ast.LocalVar, Decls: []ast.Decl{decl}}},
		Value: ast.Ident(xsRef),
		Body:  ast.Block(nil),
	}
	s := ast.Stmt{Data: forOf}
	out := l.lowerForOf(s, forOf)

	forStmt := out.Data.(*ast.SFor)
	block := forStmt.Body.Data.(*ast.SBlock)
	if len(block.Stmts) < 2 {
		t.Fatalf("expected the destructured pattern to flatten into multiple declarations, got %d stmts", len(block.Stmts))
	}
}
