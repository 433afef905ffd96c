package lower_test

import (
	"strings"
	"testing"

	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/jsprint"
	"github.com/tsdown/es6down/internal/lower"
)

// Six scenarios run the whole pipeline (ast.ComputeFlags plus every
// lowering rule it triggers) end to end and check the printed result,
// rather than poking at one rule's output in isolation the way the
// per-construct test files do.

// A derived class whose constructor forwards to super and whose method
// reads a base method through it.
func TestScenarioClassWithSuper(t *testing.T) {
	tr := newTransformer()
	derivedRef := tr.GlobalRef("Derived")
	baseRef := tr.GlobalRef("Base")
	xRef := tr.GlobalRef("x")

	ctorBody := []ast.Stmt{
		{Data: &ast.SExpr{Value: ast.Expr{Data: &ast.ECall{IsSuperCall: true, Target: ast.Expr{Data: &ast.ESuper{}}, Args: []ast.Expr{ast.Ident(xRef)}}}}},
		ast.AssignStmt(ast.Dot(ast.This(), "x"), ast.Ident(xRef)),
	}
	greetBody := []ast.Stmt{
		ast.Return(ast.Expr{Data: &ast.ECall{Target: ast.Dot(ast.Expr{Data: &ast.ESuper{}}, "greet")}}),
	}

	class := &ast.Class{
		Name:         derivedRef,
		HasName:      true,
		ExtendsOrNil: ast.Ident(baseRef),
		Properties: []ast.ClassMember{
			{Key: ast.Str("constructor"), Kind: ast.ClassNormalMethod, Fn: &ast.Fn{
				Args: []ast.Arg{{Binding: ast.Binding{Data: &ast.BIdentifier{Ref: xRef}}}},
				Body: ast.FnBody{Stmts: ctorBody},
			}},
			{Key: ast.Str("greet"), Kind: ast.ClassNormalMethod, Fn: &ast.Fn{Body: ast.FnBody{Stmts: greetBody}}},
		},
	}
	file := &ast.SourceFile{Stmts: []ast.Stmt{{Data: &ast.SClass{Class: class}}}}

	transform := lower.CreateTransformation(tr)
	out := transform(file)
	got := jsprint.Print(out.Stmts, tr.SymbolName)

	for _, want := range []string{
		"__extends(Derived, _super)",
		"_super.call(this, x)",
		"_super.prototype.greet.call(this)",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected lowered class output to contain %q, got %q", want, got)
		}
	}
}

// A default parameter plus a rest parameter, both needing their own
// prologue ahead of the original body.
func TestScenarioDefaultAndRestParams(t *testing.T) {
	tr := newTransformer()
	fRef := tr.GlobalRef("f")
	aRef := tr.GlobalRef("a")
	bRef := tr.GlobalRef("b")
	restRef := tr.GlobalRef("rest")

	fn := &ast.Fn{
		Name: fRef, HasName: true,
		Args: []ast.Arg{
			{Binding: ast.Binding{Data: &ast.BIdentifier{Ref: aRef}}},
			{Binding: ast.Binding{Data: &ast.BIdentifier{Ref: bRef}}, DefaultOrNil: ast.Num(1)},
			{Binding: ast.Binding{Data: &ast.BIdentifier{Ref: restRef}}},
		},
		HasRestArg: true,
		Body: ast.FnBody{Stmts: []ast.Stmt{
			ast.Return(ast.Binary(ast.BinOpAdd, ast.Binary(ast.BinOpAdd, ast.Ident(aRef), ast.Ident(bRef)), ast.Dot(ast.Ident(restRef), "length"))),
		}},
	}
	file := &ast.SourceFile{Stmts: []ast.Stmt{{Data: &ast.SFunction{Fn: fn, NameRef: fRef}}}}

	transform := lower.CreateTransformation(tr)
	out := transform(file)
	got := jsprint.Print(out.Stmts, tr.SymbolName)

	want := `function f(a, b) { if (b === void 0) { b = 1; } var rest = []; for (var _i = 2; _i < arguments.length; _i++) { rest[_i - 2] = arguments[_i]; } return a + b + rest.length; }`
	if got != want {
		t.Fatalf("default/rest param lowering mismatch:\n got:  %s\n want: %s", got, want)
	}
}

// A for-of loop over a bare identifier reuses that identifier directly
// as the indexed source rather than hoisting a redundant copy.
func TestScenarioForOfOverIdentifier(t *testing.T) {
	tr := newTransformer()
	itemRef := tr.GlobalRef("item")
	itemsRef := tr.GlobalRef("items")
	sumRef := tr.GlobalRef("sum")

	loop := ast.Stmt{Data: &ast.SForOf{
		Init:  ast.Stmt{Data: &ast.SLocal{Kind: ast.LocalVar, Decls: []ast.Decl{{Binding: ast.Binding{Data: &ast.BIdentifier{Ref: itemRef}}}}}},
		Value: ast.Ident(itemsRef),
		Body:  ast.Block([]ast.Stmt{ast.AssignStmt(ast.Ident(sumRef), ast.Binary(ast.BinOpAdd, ast.Ident(sumRef), ast.Ident(itemRef)))}),
	}}
	file := &ast.SourceFile{Stmts: []ast.Stmt{loop}}

	transform := lower.CreateTransformation(tr)
	out := transform(file)
	got := jsprint.Print(out.Stmts, tr.SymbolName)

	want := `for (var _i = 0; _i < items.length; _i++) { var item = items[_i]; sum = sum + item; }`
	if got != want {
		t.Fatalf("for-of lowering mismatch:\n got:  %s\n want: %s", got, want)
	}
}

// An untagged template literal becomes a "+" chain of its cooked chunks
// and substitution expressions.
func TestScenarioUntaggedTemplateLiteral(t *testing.T) {
	tr := newTransformer()
	sRef := tr.GlobalRef("s")
	xRef := tr.GlobalRef("x")

	tmpl := ast.Expr{Data: &ast.ETemplate{
		HeadCooked: "a",
		Parts:      []ast.TemplatePart{{Value: ast.Ident(xRef), TailCooked: "b"}},
	}}
	file := &ast.SourceFile{Stmts: []ast.Stmt{ast.VarDecl(ast.LocalVar, sRef, tmpl)}}

	transform := lower.CreateTransformation(tr)
	out := transform(file)
	got := jsprint.Print(out.Stmts, tr.SymbolName)

	want := `var s = "a" + x + "b";`
	if got != want {
		t.Fatalf("untagged template lowering mismatch:\n got:  %s\n want: %s", got, want)
	}
}

// A tagged template builds the one-shot cooked/raw site-object pair and
// calls the tag function against it.
func TestScenarioTaggedTemplateLiteral(t *testing.T) {
	tr := newTransformer()
	tagRef := tr.GlobalRef("tag")
	xRef := tr.GlobalRef("x")

	tmpl := ast.Expr{Data: &ast.ETemplate{
		HeadCooked: "a", HeadRaw: "a",
		Parts:    []ast.TemplatePart{{Value: ast.Ident(xRef), TailCooked: "b", TailRaw: "b"}},
		TagOrNil: ast.Ident(tagRef),
	}}
	file := &ast.SourceFile{Stmts: []ast.Stmt{ast.SExprStmt(tmpl)}}

	transform := lower.CreateTransformation(tr)
	out := transform(file)
	got := jsprint.Print(out.Stmts, tr.SymbolName)

	want := `var _a; _a = ["a", "b"], (_a.raw = ["a", "b"], tag(_a, x));`
	if got != want {
		t.Fatalf("tagged template lowering mismatch:\n got:  %s\n want: %s", got, want)
	}
}

// "new" with a spread argument goes through the bind/apply/concat shape
// rather than a plain argument list.
func TestScenarioNewWithSpreadArgument(t *testing.T) {
	tr := newTransformer()
	fooRef := tr.GlobalRef("Foo")
	argsRef := tr.GlobalRef("args")

	newExpr := ast.Expr{Data: &ast.ENew{Target: ast.Ident(fooRef), Args: []ast.Expr{
		{Data: &ast.ESpread{Value: ast.Ident(argsRef)}},
	}}}
	file := &ast.SourceFile{Stmts: []ast.Stmt{ast.SExprStmt(newExpr)}}

	transform := lower.CreateTransformation(tr)
	out := transform(file)
	got := jsprint.Print(out.Stmts, tr.SymbolName)

	want := `new (Foo.bind.apply(Foo, [void 0].concat(args)))();`
	if got != want {
		t.Fatalf("new-with-spread lowering mismatch:\n got:  %s\n want: %s", got, want)
	}
}
