package lower

import (
	"testing"

	"github.com/tsdown/es6down/internal/ast"
)

func TestLowerSuperCallForwardsThis(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	superRef := tr.GlobalRef("_super")
	l.pushSuper(superRef, false)
	defer l.popSuper()

	call := ast.Expr{Data: &ast.ECall{Target: ast.This(), Args: []ast.Expr{ast.Num(1)}}}
	out := l.lowerSuperCall(call, call.Data.(*ast.ECall))

	outCall, ok := out.Data.(*ast.ECall)
	if !ok {
		t.Fatalf("expected a call expression, got %#v", out.Data)
	}
	dot, ok := outCall.Target.Data.(*ast.EDot)
	if !ok || dot.Name != "call" {
		t.Fatalf("expected \"_super.call(this, ...)\", got %#v", outCall.Target.Data)
	}
	if _, ok := dot.Target.Data.(*ast.EIdentifier); !ok {
		t.Fatalf("expected the call's target to read the captured _super, got %#v", dot.Target.Data)
	}
	if len(outCall.Args) != 2 {
		t.Fatalf("expected (this, 1), got %d args", len(outCall.Args))
	}
	if _, ok := outCall.Args[0].Data.(*ast.EThis); !ok {
		t.Fatalf("expected the first forwarded argument to be this, got %#v", outCall.Args[0].Data)
	}
}

func TestLowerSuperCallWithSpreadUsesApply(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	superRef := tr.GlobalRef("_super")
	argsRef := tr.GlobalRef("args")
	l.pushSuper(superRef, false)
	defer l.popSuper()

	call := ast.Expr{Data: &ast.ECall{Args: []ast.Expr{{Data: &ast.ESpread{Value: ast.Ident(argsRef)}}}}}
	out := l.lowerSuperCall(call, call.Data.(*ast.ECall))

	outCall := out.Data.(*ast.ECall)
	dot, ok := outCall.Target.Data.(*ast.EDot)
	if !ok || dot.Name != "apply" {
		t.Fatalf("expected \"_super.apply(this, args)\", got %#v", outCall.Target.Data)
	}
}

func TestLowerSuperCallOutsideDerivedClassReportsUnknownKind(t *testing.T) {
	l, _, _ := newTestLowerer(t)
	call := ast.Expr{Data: &ast.ECall{}}
	out := l.lowerSuperCall(call, call.Data.(*ast.ECall))
	if _, ok := out.Data.(*ast.EUndefined); !ok {
		t.Fatalf("expected the placeholder undefined expression when no super context is active, got %#v", out.Data)
	}
}

func TestLowerSuperMethodCallInstanceReachesPrototype(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	superRef := tr.GlobalRef("_super")
	l.pushSuper(superRef, false)
	defer l.popSuper()

	call := ast.Expr{Data: &ast.ECall{}}
	member := &ast.EDot{Name: "greet"}
	out := l.lowerSuperMethodCall(call, call.Data.(*ast.ECall), member, false)

	outCall := out.Data.(*ast.ECall)
	callDot := outCall.Target.Data.(*ast.EDot)
	if callDot.Name != "call" {
		t.Fatalf("expected a .call(...) wrapper, got %#v", outCall.Target.Data)
	}
	methodDot := callDot.Target.Data.(*ast.EDot)
	if methodDot.Name != "greet" {
		t.Fatalf("expected the method name to be preserved, got %q", methodDot.Name)
	}
	protoDot := methodDot.Target.Data.(*ast.EDot)
	if protoDot.Name != "prototype" {
		t.Fatalf("expected an instance super call to read off _super.prototype, got %#v", methodDot.Target.Data)
	}
}

func TestLowerSuperMethodCallStaticSkipsPrototype(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	superRef := tr.GlobalRef("_super")
	l.pushSuper(superRef, true)
	defer l.popSuper()

	call := ast.Expr{Data: &ast.ECall{}}
	member := &ast.EDot{Name: "create"}
	out := l.lowerSuperMethodCall(call, call.Data.(*ast.ECall), member, false)

	outCall := out.Data.(*ast.ECall)
	callDot := outCall.Target.Data.(*ast.EDot)
	methodDot := callDot.Target.Data.(*ast.EDot)
	if _, ok := methodDot.Target.Data.(*ast.EIdentifier); !ok {
		t.Fatalf("expected a static super call to reach _super directly with no .prototype hop, got %#v", methodDot.Target.Data)
	}
}

func TestLowerSuperMethodCallComputedKey(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	superRef := tr.GlobalRef("_super")
	keyRef := tr.GlobalRef("key")
	l.pushSuper(superRef, false)
	defer l.popSuper()

	call := ast.Expr{Data: &ast.ECall{}}
	member := &ast.EIndex{Index: ast.Ident(keyRef)}
	out := l.lowerSuperMethodCall(call, call.Data.(*ast.ECall), member, true)

	outCall := out.Data.(*ast.ECall)
	callDot := outCall.Target.Data.(*ast.EDot)
	if _, ok := callDot.Target.Data.(*ast.EIndex); !ok {
		t.Fatalf("expected the method access to stay an indexed read, got %#v", callDot.Target.Data)
	}
}

func TestLowerSuperMethodCallOutsideDerivedClassReportsUnknownKind(t *testing.T) {
	l, _, _ := newTestLowerer(t)
	call := ast.Expr{Data: &ast.ECall{}}
	member := &ast.EDot{Name: "m"}
	out := l.lowerSuperMethodCall(call, call.Data.(*ast.ECall), member, false)
	if _, ok := out.Data.(*ast.EUndefined); !ok {
		t.Fatalf("expected the placeholder undefined expression with no active super context, got %#v", out.Data)
	}
}

func TestSuperStackPushPopNesting(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	outerRef := tr.GlobalRef("_super_outer")
	innerRef := tr.GlobalRef("_super_inner")

	l.pushSuper(outerRef, false)
	l.pushSuper(innerRef, true)

	ctx, ok := l.currentSuper()
	if !ok || ctx.ref != innerRef || !ctx.isStatic {
		t.Fatalf("expected the innermost pushed context to be current, got %#v", ctx)
	}
	l.popSuper()

	ctx, ok = l.currentSuper()
	if !ok || ctx.ref != outerRef || ctx.isStatic {
		t.Fatalf("expected popping to restore the outer context, got %#v", ctx)
	}
	l.popSuper()

	if _, ok := l.currentSuper(); ok {
		t.Fatalf("expected no active super context once the stack is empty")
	}
}
