package lower

import (
	"testing"

	"github.com/tsdown/es6down/internal/ast"
)

func TestLowerCallLikePassesThroughWithoutSpread(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	fRef := tr.GlobalRef("f")

	call := ast.Expr{Data: &ast.ECall{Target: ast.Ident(fRef), Args: []ast.Expr{ast.Num(1)}}}
	out := l.lowerCallLike(call, call.Data.(*ast.ECall))
	if _, ok := out.Data.(*ast.ECall); !ok {
		t.Fatalf("expected a plain call back out, got %#v", out.Data)
	}
}

func TestLowerCallLikeRewritesSpreadToApply(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	fRef := tr.GlobalRef("f")
	argsRef := tr.GlobalRef("args")

	call := ast.Expr{Data: &ast.ECall{Target: ast.Ident(fRef), Args: []ast.Expr{
		{Data: &ast.ESpread{Value: ast.Ident(argsRef)}},
	}}}
	out := l.lowerCallLike(call, call.Data.(*ast.ECall))

	applyCall, ok := out.Data.(*ast.ECall)
	if !ok {
		t.Fatalf("expected the spread call to become a call expression, got %#v", out.Data)
	}
	dot, ok := applyCall.Target.Data.(*ast.EDot)
	if !ok || dot.Name != "apply" {
		t.Fatalf("expected \"f.apply(...)\", got %#v", applyCall.Target.Data)
	}
	if len(applyCall.Args) != 2 {
		t.Fatalf("expected (thisArg, argsArray), got %d args", len(applyCall.Args))
	}
	if _, ok := applyCall.Args[0].Data.(*ast.EUndefined); !ok {
		t.Fatalf("expected a bare call's thisArg to be void 0, got %#v", applyCall.Args[0].Data)
	}
	argsIdent, ok := applyCall.Args[1].Data.(*ast.EIdentifier)
	if !ok || argsIdent.Ref != argsRef {
		t.Fatalf("expected a lone spread argument to pass through bare, got %#v", applyCall.Args[1].Data)
	}
}

func TestLowerNewWithSpreadBuildsBoundConstructor(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	ctorRef := tr.GlobalRef("F")
	argsRef := tr.GlobalRef("args")

	newExpr := ast.Expr{Data: &ast.ENew{Target: ast.Ident(ctorRef), Args: []ast.Expr{
		{Data: &ast.ESpread{Value: ast.Ident(argsRef)}},
	}}}
	out := l.lowerNew(newExpr, newExpr.Data.(*ast.ENew))

	n, ok := out.Data.(*ast.ENew)
	if !ok {
		t.Fatalf("expected a \"new (...)()\" shape, got %#v", out.Data)
	}
	if len(n.Args) != 0 {
		t.Fatalf("expected the bound-constructor call to take no further args, got %d", len(n.Args))
	}
	applyCall, ok := n.Target.Data.(*ast.ECall)
	if !ok {
		t.Fatalf("expected the new target to be a call (F.bind.apply(...)), got %#v", n.Target.Data)
	}
	dot, ok := applyCall.Target.Data.(*ast.EDot)
	if !ok || dot.Name != "apply" {
		t.Fatalf("expected \"F.bind.apply(...)\", got %#v", applyCall.Target.Data)
	}
}

func TestSpreadSegmentsGroupsConsecutiveItems(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	aRef := tr.GlobalRef("a")
	bRef := tr.GlobalRef("b")
	restRef := tr.GlobalRef("rest")

	items := []ast.Expr{
		ast.Ident(aRef),
		ast.Ident(bRef),
		{Data: &ast.ESpread{Value: ast.Ident(restRef)}},
	}
	out := spreadSegments(l, items, true)
	concatCall, ok := out.Data.(*ast.ECall)
	if !ok {
		t.Fatalf("expected a \"[a, b].concat(rest)\" shape, got %#v", out.Data)
	}
	dot, ok := concatCall.Target.Data.(*ast.EDot)
	if !ok || dot.Name != "concat" {
		t.Fatalf("expected the call to be .concat(...), got %#v", concatCall.Target.Data)
	}
	arr, ok := dot.Target.Data.(*ast.EArray)
	if !ok || len(arr.Items) != 2 {
		t.Fatalf("expected the leading run [a, b] to be grouped into one array literal, got %#v", dot.Target.Data)
	}
	if len(concatCall.Args) != 1 {
		t.Fatalf("expected exactly one concat argument (the spread), got %d", len(concatCall.Args))
	}
}

func TestSpreadSegmentsLoneSpreadGetsDefensiveCopy(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	xsRef := tr.GlobalRef("xs")
	items := []ast.Expr{{Data: &ast.ESpread{Value: ast.Ident(xsRef)}}}

	out := spreadSegments(l, items, true)
	call, ok := out.Data.(*ast.ECall)
	if !ok {
		t.Fatalf("expected a lone spread to get a defensive .slice() call, got %#v", out.Data)
	}
	dot, ok := call.Target.Data.(*ast.EDot)
	if !ok || dot.Name != "slice" {
		t.Fatalf("expected .slice(), got %#v", call.Target.Data)
	}
}

func TestSpreadSegmentsLoneSpreadPassesThroughForNewContext(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	xsRef := tr.GlobalRef("xs")
	items := []ast.Expr{{Data: &ast.ESpread{Value: ast.Ident(xsRef)}}}

	out := spreadSegments(l, items, false)
	ident, ok := out.Data.(*ast.EIdentifier)
	if !ok || ident.Ref != xsRef {
		t.Fatalf("expected a lone spread in a \"new\" context to pass through bare, got %#v", out.Data)
	}
}

func TestSplitReceiverHoistsNonTrivialMemberTarget(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	fnRef := tr.GlobalRef("getObj")

	target := ast.Dot(ast.Call(ast.Ident(fnRef)), "m")
	thisArg, callee, wrap := l.splitReceiver(target)

	tempIdent, ok := thisArg.Data.(*ast.EIdentifier)
	if !ok {
		t.Fatalf("expected the receiver to be hoisted into a temp, got %#v", thisArg.Data)
	}
	calleeDot, ok := callee.Data.(*ast.EDot)
	if !ok || calleeDot.Name != "m" {
		t.Fatalf("expected callee to still be temp.m, got %#v", callee.Data)
	}
	calleeTarget, ok := calleeDot.Target.Data.(*ast.EIdentifier)
	if !ok || calleeTarget.Ref != tempIdent.Ref {
		t.Fatalf("expected thisArg and callee's target to share the same hoisted temp")
	}

	wrapped := wrap(ast.Num(1))
	if _, ok := wrapped.Data.(*ast.EBinary); !ok {
		t.Fatalf("expected wrap to prepend a comma-assignment, got %#v", wrapped.Data)
	}
}

func TestSplitReceiverBareCallUsesVoidZero(t *testing.T) {
	l, tr, _ := newTestLowerer(t)
	fRef := tr.GlobalRef("f")

	thisArg, callee, wrap := l.splitReceiver(ast.Ident(fRef))
	if _, ok := thisArg.Data.(*ast.EUndefined); !ok {
		t.Fatalf("expected a bare call's receiver to be void 0, got %#v", thisArg.Data)
	}
	if ident, ok := callee.Data.(*ast.EIdentifier); !ok || ident.Ref != fRef {
		t.Fatalf("expected the callee to be f itself, got %#v", callee.Data)
	}
	if out := wrap(ast.Num(1)); out.Data.(*ast.ENumber).Value != 1 {
		t.Fatalf("expected wrap to be the identity function when no hoist is needed")
	}
}
