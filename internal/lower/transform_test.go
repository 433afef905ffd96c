package lower_test

import (
	"testing"

	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/compat"
	"github.com/tsdown/es6down/internal/config"
	"github.com/tsdown/es6down/internal/logger"
	"github.com/tsdown/es6down/internal/lower"
	"github.com/tsdown/es6down/internal/resolver"
	"github.com/tsdown/es6down/internal/transformer"
)

func newTransformer() *transformer.Transformer {
	opts := config.NewOptions(compat.ES5)
	log := logger.NewDeferLog()
	return transformer.New(&opts, resolver.NewStaticResolver(), &log)
}

// A bare "this" captured by a top-level arrow needs a file-level
// "var _this = this;" declaration prepended ahead of everything else,
// and the printer's substitution hook (once something actually prints
// the arrow's now plain-function body) must resolve that same "this"
// reference to the identical Ref the declaration bound.
func TestCreateTransformationCapturesTopLevelThis(t *testing.T) {
	tr := newTransformer()
	fRef := tr.GlobalRef("f")

	thisExpr := ast.Expr{Data: &ast.EThis{}}
	dot := ast.Dot(thisExpr, "x")
	arrow := ast.Expr{Data: &ast.EArrow{Fn: &ast.Fn{Body: ast.FnBody{Stmts: []ast.Stmt{ast.Return(dot)}}}}}
	call := ast.SExprStmt(ast.Call(ast.Ident(fRef), arrow))

	file := &ast.SourceFile{Stmts: []ast.Stmt{call}}

	transform := lower.CreateTransformation(tr)
	out := transform(file)

	if len(out.Stmts) != 2 {
		t.Fatalf("expected a prepended _this declaration plus the original statement, got %d stmts", len(out.Stmts))
	}

	decl, ok := out.Stmts[0].Data.(*ast.SLocal)
	if !ok || len(decl.Decls) != 1 {
		t.Fatalf("expected the first statement to be a single var declaration, got %#v", out.Stmts[0].Data)
	}
	thisRef := decl.Decls[0].Binding.Data.(*ast.BIdentifier).Ref
	if tr.SymbolName(thisRef) != "_this" {
		t.Fatalf("expected the declared name to be _this, got %q", tr.SymbolName(thisRef))
	}
	if _, ok := decl.Decls[0].ValueOrNil.Data.(*ast.EThis); !ok {
		t.Fatalf("expected the declaration's initializer to be a bare this, got %#v", decl.Decls[0].ValueOrNil.Data)
	}

	exprStmt, ok := out.Stmts[1].Data.(*ast.SExpr)
	if !ok {
		t.Fatalf("expected the second statement to still be the original call, got %#v", out.Stmts[1].Data)
	}
	callData, ok := exprStmt.Value.Data.(*ast.ECall)
	if !ok || len(callData.Args) != 1 {
		t.Fatalf("expected a one-argument call, got %#v", exprStmt.Value.Data)
	}
	fnExpr, ok := callData.Args[0].Data.(*ast.EFunction)
	if !ok {
		t.Fatalf("expected the arrow to have been turned into a plain function, got %#v", callData.Args[0].Data)
	}
	ret, ok := fnExpr.Fn.Body.Stmts[0].Data.(*ast.SReturn)
	if !ok {
		t.Fatalf("expected a single return statement in the lowered function body, got %#v", fnExpr.Fn.Body.Stmts[0].Data)
	}
	dotExpr, ok := ret.ValueOrNil.Data.(*ast.EDot)
	if !ok || dotExpr.Name != "x" {
		t.Fatalf("expected the returned value to still be a .x property read, got %#v", ret.ValueOrNil.Data)
	}
	capturedThis, ok := dotExpr.Target.Data.(*ast.EThis)
	if !ok {
		t.Fatalf("expected the property read's target to still be a bare this node (substitution happens at print time, not here), got %#v", dotExpr.Target.Data)
	}
	_ = capturedThis

	if ref, ok := tr.ThisCaptured(0); !ok || ref != thisRef {
		t.Fatalf("expected the transformer to have memoized owner 0's capture as the same ref used in the declaration")
	}

	// The substitution hook transform.go installed should resolve this
	// exact node to thisRef, the same Ref the declaration bound.
	fallback := dotExpr.Target
	substituted := tr.SubstituteExpression(fallback.ID, fallback)
	ident, ok := substituted.Data.(*ast.EIdentifier)
	if !ok || ident.Ref != thisRef {
		t.Fatalf("expected the installed substitution hook to resolve this this-node to %+v, got %#v", thisRef, substituted.Data)
	}
}

// A derived class whose constructor never calls super still needs one
// synthesized, forwarding "arguments" through.
func TestDerivedClassSynthesizesDefaultSuperCall(t *testing.T) {
	tr := newTransformer()
	baseRef := tr.GlobalRef("Base")

	class := &ast.Class{
		ExtendsOrNil: ast.Ident(baseRef),
		Properties: []ast.ClassMember{
			{Key: ast.Str("greet"), Kind: ast.ClassNormalMethod, Fn: &ast.Fn{Body: ast.FnBody{Stmts: []ast.Stmt{ast.Return(ast.Str("hi"))}}}},
		},
	}
	decl := ast.Stmt{Data: &ast.SClass{Class: class}}
	file := &ast.SourceFile{Stmts: []ast.Stmt{decl}}

	transform := lower.CreateTransformation(tr)
	out := transform(file)

	if len(out.Stmts) != 1 {
		t.Fatalf("expected exactly one lowered statement, got %d", len(out.Stmts))
	}
	local, ok := out.Stmts[0].Data.(*ast.SLocal)
	if !ok || len(local.Decls) != 1 {
		t.Fatalf("expected a single var declaration wrapping the class IIFE, got %#v", out.Stmts[0].Data)
	}
	iife, ok := local.Decls[0].ValueOrNil.Data.(*ast.ECall)
	if !ok {
		t.Fatalf("expected the class to lower to an immediately-invoked function, got %#v", local.Decls[0].ValueOrNil.Data)
	}
	fnExpr, ok := iife.Target.Data.(*ast.EFunction)
	if !ok {
		t.Fatalf("expected the IIFE's target to be a function expression, got %#v", iife.Target.Data)
	}

	var ctorStmt *ast.SFunction
	for _, s := range fnExpr.Fn.Body.Stmts {
		if sf, ok := s.Data.(*ast.SFunction); ok && sf.Fn.HasName {
			ctorStmt = sf
			break
		}
	}
	if ctorStmt == nil {
		t.Fatalf("expected a named constructor function statement in the IIFE body")
	}
	if len(ctorStmt.Fn.Body.Stmts) != 1 {
		t.Fatalf("expected the synthesized constructor to have exactly one statement, got %d", len(ctorStmt.Fn.Body.Stmts))
	}
	exprStmt, ok := ctorStmt.Fn.Body.Stmts[0].Data.(*ast.SExpr)
	if !ok {
		t.Fatalf("expected the constructor's body to be a single expression statement, got %#v", ctorStmt.Fn.Body.Stmts[0].Data)
	}
	applyCall, ok := exprStmt.Value.Data.(*ast.ECall)
	if !ok {
		t.Fatalf("expected the default super call to be a call expression, got %#v", exprStmt.Value.Data)
	}
	applyTarget, ok := applyCall.Target.Data.(*ast.EDot)
	if !ok || applyTarget.Name != "apply" {
		t.Fatalf("expected a \"<super>.apply(...)\" call, got %#v", applyCall.Target.Data)
	}
	if len(applyCall.Args) != 2 {
		t.Fatalf("expected apply(this, arguments), got %d args", len(applyCall.Args))
	}
	if _, ok := applyCall.Args[0].Data.(*ast.EThis); !ok {
		t.Fatalf("expected the first apply argument to be this, got %#v", applyCall.Args[0].Data)
	}
}
