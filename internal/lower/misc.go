// super() / super.m() lowering. A derived class's IIFE
// wrapper (class.go) captures the parent constructor as a "_super"
// local; every super reference inside that class's members needs to
// reach the same Ref, even though each member's body is lowered by its
// own, otherwise-unrelated lowerFn call. superStack bridges the two:
// class.go pushes the enclosing class's "_super" Ref (and whether the
// member being lowered is static) before descending into a member's
// body, and the rules below read the innermost entry back off it.
//
// Grounded on evanw-esbuild/internal/js_parser_lower_class.go's
// lowerSuper family, which solves the identical "constructor/method body
// needs the class's own temp" problem via the parser's class-stack
// field; this package models the same stack explicitly on Lowerer
// rather than on the shared transformer façade, since it's a concern
// private to class-member lowering.
package lower

import "github.com/tsdown/es6down/internal/ast"

type superContext struct {
	ref      ast.Ref
	isStatic bool
}

func (l *Lowerer) pushSuper(ref ast.Ref, isStatic bool) {
	l.superStack = append(l.superStack, superContext{ref: ref, isStatic: isStatic})
}

func (l *Lowerer) popSuper() {
	l.superStack = l.superStack[:len(l.superStack)-1]
}

func (l *Lowerer) currentSuper() (superContext, bool) {
	if len(l.superStack) == 0 {
		return superContext{}, false
	}
	return l.superStack[len(l.superStack)-1], true
}

// lowerSuperCall rewrites a bare "super(...)" constructor call into a
// call against the captured "_super" reference, forwarding "this"
// explicitly since the down-leveled constructor has no other way to run
// the parent constructor against the subclass instance.
func (l *Lowerer) lowerSuperCall(e ast.Expr, d *ast.ECall) ast.Expr {
	ctx, ok := l.currentSuper()
	if !ok {
		return l.unknownKind(e.Loc, "super call outside a derived class constructor")
	}
	superIdent := ast.Ident(ctx.ref)
	if hasSpreadExprs(d.Args) {
		argsArray := spreadSegments(l, d.Args, true)
		return ast.Call(ast.Dot(superIdent, "apply"), ast.This(), argsArray)
	}
	args := append([]ast.Expr{ast.This()}, visitAll(l, d.Args)...)
	return ast.Call(ast.Dot(superIdent, "call"), args...)
}

// lowerSuperMethodCall rewrites "super.m(...)" / "super[k](...)": an
// instance method reaches the parent's method off "_super.prototype"; a
// static method reaches it directly off "_super", since the static side
// of the IIFE-built subclass has no other link to the parent's own
// static members.
func (l *Lowerer) lowerSuperMethodCall(e ast.Expr, d *ast.ECall, memberAccess interface{}, isComputed bool) ast.Expr {
	ctx, ok := l.currentSuper()
	if !ok {
		return l.unknownKind(e.Loc, "super method call outside a derived class member")
	}

	base := ast.Ident(ctx.ref)
	if !ctx.isStatic {
		base = ast.Dot(base, "prototype")
	}

	var method ast.Expr
	switch m := memberAccess.(type) {
	case *ast.EDot:
		method = ast.Dot(base, m.Name)
	case *ast.EIndex:
		method = ast.Index(base, l.VisitExpr(m.Index))
	default:
		return l.unknownKind(e.Loc, "unrecognized super member access shape")
	}

	if hasSpreadExprs(d.Args) {
		argsArray := spreadSegments(l, d.Args, true)
		return ast.Call(ast.Dot(method, "apply"), ast.This(), argsArray)
	}
	args := append([]ast.Expr{ast.This()}, visitAll(l, d.Args)...)
	return ast.Call(ast.Dot(method, "call"), args...)
}
