// Spread lowering: call/new/array-literal argument expansion via
// "concat", "apply", and "bind". Also covers the related member-call
// "this"-argument selection rule the spread path shares with misc.go's
// super-call rewrite.
//
// Grounded on evanw-esbuild/internal/js_parser_lower.go's
// lowerCallAndConstructWithSpreadInArguments.
package lower

import (
	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/transformer"
)

// lowerCallLike handles an ECall, splitting into the spread-apply shape
// when any argument is a spread. A super-call or super-method-call is
// handed to misc.go's rules (lowerSuperCall / lowerSuperMethodCall) by
// the checks at the top of this function.
func (l *Lowerer) lowerCallLike(e ast.Expr, d *ast.ECall) ast.Expr {
	if d.IsSuperCall {
		return l.lowerSuperCall(e, d)
	}
	if dot, ok := d.Target.Data.(*ast.EDot); ok {
		if _, ok := dot.Target.Data.(*ast.ESuper); ok {
			return l.lowerSuperMethodCall(e, d, dot, false)
		}
	}
	if idx, ok := d.Target.Data.(*ast.EIndex); ok {
		if _, ok := idx.Target.Data.(*ast.ESuper); ok {
			return l.lowerSuperMethodCall(e, d, idx, true)
		}
	}

	if !hasSpreadExprs(d.Args) {
		e.Data = &ast.ECall{Target: l.VisitExpr(d.Target), Args: visitAll(l, d.Args)}
		return e
	}

	thisArg, callee, wrap := l.splitReceiver(d.Target)
	argsArray := spreadSegments(l, d.Args, false)
	apply := ast.Call(ast.Dot(callee, "apply"), thisArg, argsArray)
	return wrap(apply)
}

// lowerNew handles "new F(...args)".
func (l *Lowerer) lowerNew(e ast.Expr, d *ast.ENew) ast.Expr {
	if !hasSpreadExprs(d.Args) {
		e.Data = &ast.ENew{Target: l.VisitExpr(d.Target), Args: visitAll(l, d.Args)}
		return e
	}
	target := l.VisitExpr(d.Target)
	argsArray := spreadSegments(l, d.Args, false)
	concatArgs := ast.CallSlice(ast.Dot(ast.ArraySlice([]ast.Expr{ast.Undefined()}), "concat"), []ast.Expr{argsArray})
	boundCtor := ast.Call(ast.Dot(ast.Dot(target, "bind"), "apply"), target, concatArgs)
	return ast.New(boundCtor)
}

// lowerArraySpread handles an array literal containing one or more
// spread elements.
func (l *Lowerer) lowerArraySpread(e ast.Expr, d *ast.EArray) ast.Expr {
	if !hasSpreadExprs(d.Items) {
		e.Data = &ast.EArray{Items: visitAll(l, d.Items), IsSingleLine: d.IsSingleLine}
		return e
	}
	return spreadSegments(l, d.Items, true)
}

func hasSpreadExprs(items []ast.Expr) bool {
	for _, it := range items {
		if _, ok := it.Data.(*ast.ESpread); ok {
			return true
		}
	}
	return false
}

func visitAll(l *Lowerer, items []ast.Expr) []ast.Expr {
	out := make([]ast.Expr, len(items))
	for i, it := range items {
		out[i] = l.VisitExpr(it)
	}
	return out
}

// spreadSegments builds "[a].concat(b, [c, d], e)": consecutive
// non-spread items are grouped into one array-literal segment; a spread
// item is passed through as its own concat argument. freshCopyForLoneSpread
// controls whether a list consisting of exactly one spread and nothing
// else gets a defensive ".slice()" (the array-literal context) or is
// passed through bare (the call context, where "apply" only reads the
// array, and the "new" context, which already copies via "concat" one
// level up).
func spreadSegments(l *Lowerer, items []ast.Expr, freshCopyForLoneSpread bool) ast.Expr {
	var segments []ast.Expr
	var run []ast.Expr
	flushRun := func() {
		if len(run) > 0 {
			segments = append(segments, ast.ArraySlice(run))
			run = nil
		}
	}
	for _, it := range items {
		if spread, ok := it.Data.(*ast.ESpread); ok {
			flushRun()
			segments = append(segments, l.VisitExpr(spread.Value))
			continue
		}
		run = append(run, l.VisitExpr(it))
	}
	flushRun()

	if len(segments) == 0 {
		return ast.ArraySlice(nil)
	}
	if len(segments) == 1 {
		_, lonelySpread := items[0].Data.(*ast.ESpread)
		if lonelySpread && len(items) == 1 && freshCopyForLoneSpread {
			return ast.Call(ast.Dot(segments[0], "slice"))
		}
		return segments[0]
	}
	head, rest := segments[0], segments[1:]
	return ast.CallSlice(ast.Dot(head, "concat"), rest)
}

// splitReceiver picks the thisArg/callee pair for a member-call spread
// rewrite: "obj.m(...)" / "obj[k](...)" use obj as the receiver, hoisting
// it into a temp first if it isn't
// already side-effect-free to evaluate twice. wrap joins that hoisting
// assignment in front of the final apply call with a comma, or is the
// identity when no hoist was needed.
func (l *Lowerer) splitReceiver(target ast.Expr) (thisArg ast.Expr, callee ast.Expr, wrap func(ast.Expr) ast.Expr) {
	identity := func(e ast.Expr) ast.Expr { return e }

	switch d := target.Data.(type) {
	case *ast.EDot:
		obj, hoistWrap := l.hoistReceiver(d.Target)
		return obj, ast.Dot(obj, d.Name), hoistWrap
	case *ast.EIndex:
		obj, hoistWrap := l.hoistReceiver(d.Target)
		return obj, ast.Index(obj, l.VisitExpr(d.Index)), hoistWrap
	default:
		// Bare call: receiver is void 0.
		return ast.Undefined(), l.VisitExpr(target), identity
	}
}

// hoistReceiver returns (ref, wrap) where ref can be read twice (once as
// thisArg, once as the callee's own target) and wrap prepends whatever
// comma-assignment was needed to make that safe.
func (l *Lowerer) hoistReceiver(obj ast.Expr) (ast.Expr, func(ast.Expr) ast.Expr) {
	identity := func(e ast.Expr) ast.Expr { return e }
	visited := l.VisitExpr(obj)
	switch visited.Data.(type) {
	case *ast.EIdentifier, *ast.EThis:
		return visited, identity
	default:
		temp := l.t.CreateTempVariable(transformer.TempFlagAuto)
		assign := ast.Assign(ast.Ident(temp), visited)
		return ast.Ident(temp), func(e ast.Expr) ast.Expr { return ast.JoinWithComma(assign, e) }
	}
}
