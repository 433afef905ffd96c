// Function lowering: default parameters, rest parameter, captured
// "this", arrow-to-function, and the common body-assembly sequence
// every function-like node shares.
//
// Grounded on evanw-esbuild/internal/js_parser_lower.go's lowerFunction,
// adapted from "one function mutating in place behind several *T
// out-params" into a value-returning rule over the façade in package
// transformer.
package lower

import (
	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/transformer"
)

func (l *Lowerer) lowerFunctionExpr(e ast.Expr, d *ast.EFunction) ast.Expr {
	e.Data = &ast.EFunction{Fn: l.lowerFn(d.Fn, e.ID, false)}
	return e
}

func (l *Lowerer) lowerFunctionDecl(s ast.Stmt, d *ast.SFunction) ast.Stmt {
	s.Data = &ast.SFunction{Fn: l.lowerFn(d.Fn, s.ID, false), NameRef: d.NameRef}
	return s
}

// lowerArrow turns an arrow function into a plain function expression
// with no own "this" binding; any "this"/"super" captured from within is
// read through the owning non-arrow function's "_this" at emit time,
// never rewritten here.
func (l *Lowerer) lowerArrow(e ast.Expr, d *ast.EArrow) ast.Expr {
	fn := l.lowerFn(d.Fn, e.ID, d.PreferExpr)
	return ast.Expr{Node: e.Node, Data: &ast.EFunction{Fn: fn}}
}

// lowerFn performs the common body assembly for any function-like node:
// ownerID identifies this function as a "this"-owner (used by
// CaptureThis/ThisCaptured), and preferExprArrow is true only for an
// arrow whose body was a bare expression (already normalized by the
// parser into a single SReturn statement).
func (l *Lowerer) lowerFn(fn *ast.Fn, ownerID ast.NodeID, preferExprArrow bool) *ast.Fn {
	l.t.StartLexicalEnvironment()

	var prologue []ast.Stmt
	var newArgs []ast.Arg

	for i, arg := range fn.Args {
		isLast := i == len(fn.Args)-1
		if fn.HasRestArg && isLast {
			continue
		}
		switch b := arg.Binding.Data.(type) {
		case *ast.BArray, *ast.BObject:
			temp := l.t.CreateTempVariable(transformer.TempFlagAuto)
			value := ast.Ident(temp)
			if arg.DefaultOrNil.Data != nil {
				value = defaultedParamValue(l, value, arg.DefaultOrNil)
			}
			prologue = append(prologue, l.destructureParam(arg.Binding, value)...)
			newArgs = append(newArgs, ast.Arg{Binding: ast.Binding{Loc: ast.SynthesizedLoc, Data: &ast.BIdentifier{Ref: temp}}})

		case *ast.BIdentifier:
			if arg.DefaultOrNil.Data != nil {
				prologue = append(prologue, l.defaultParamCheck(b.Ref, arg.DefaultOrNil))
			}
			newArgs = append(newArgs, ast.Arg{Binding: ast.Binding{Loc: arg.Binding.Loc, Data: &ast.BIdentifier{Ref: b.Ref}}})

		default:
			newArgs = append(newArgs, arg)
		}
	}

	if fn.HasRestArg {
		last := fn.Args[len(fn.Args)-1]
		restIndex := len(fn.Args) - 1
		restRef := last.Binding.Data.(*ast.BIdentifier).Ref
		prologue = append(prologue, l.restParamPrologue(restRef, restIndex)...)
		// The rest parameter itself is elided from the parameter list.
	}

	bodyStmts := make([]ast.Stmt, 0, len(prologue)+len(fn.Body.Stmts)+1)
	bodyStmts = append(bodyStmts, prologue...)
	bodyStmts = append(bodyStmts, l.visitStmts(fn.Body.Stmts)...)

	if ref, ok := l.needsThisCapture(ownerID); ok {
		bodyStmts = append([]ast.Stmt{ast.VarDecl(ast.LocalVar, ref, ast.This())}, bodyStmts...)
	}

	bodyStmts = l.t.EndLexicalEnvironment(bodyStmts)

	return &ast.Fn{
		Name:        fn.Name,
		HasName:     fn.HasName,
		Args:        newArgs,
		HasRestArg:  false,
		Body:        ast.FnBody{Loc: fn.Body.Loc, Stmts: bodyStmts},
		IsAsync:     fn.IsAsync,
		IsGenerator: fn.IsGenerator,
	}
}

// destructureParam delegates a pattern parameter to the destructuring
// bridge.
func (l *Lowerer) destructureParam(binding ast.Binding, value ast.Expr) []ast.Stmt {
	return l.destructurer().DestructureBinding(l, ast.LocalVar, binding, value)
}

// defaultedParamValue builds "(temp === void 0 ? init : temp)" for a
// defaulted pattern parameter, evaluated once before the pattern itself
// is flattened against it.
func defaultedParamValue(l *Lowerer, temp ast.Expr, defaultExpr ast.Expr) ast.Expr {
	test := ast.StrictEquals(temp, ast.Undefined())
	return ast.Expr{Node: temp.Node, Data: &ast.EIf{Test: test, Yes: l.VisitExpr(defaultExpr), No: temp}}
}

// defaultParamCheck builds "if (name === void 0) { name = init; }".
func (l *Lowerer) defaultParamCheck(ref ast.Ref, defaultExpr ast.Expr) ast.Stmt {
	test := ast.StrictEquals(ast.Ident(ref), ast.Undefined())
	assign := ast.AssignStmt(ast.Ident(ref), l.VisitExpr(defaultExpr))
	return ast.Stmt{Node: defaultExpr.Node, Data: &ast.SIf{Test: test, Yes: ast.AsBlock(assign)}}
}

// restParamPrologue builds "var name = []; for (var _i = restIndex; _i
// < arguments.length; _i++) { name[_i - restIndex] = arguments[_i]; }",
// omitting the subtraction when restIndex is 0.
func (l *Lowerer) restParamPrologue(restRef ast.Ref, restIndex int) []ast.Stmt {
	initDecl := ast.VarDecl(ast.LocalVar, restRef, ast.ArraySlice(nil))

	iRef := l.t.CreateTempVariable(transformer.TempFlagI)
	argumentsIdent := ast.Ident(l.t.ArgumentsRef())
	argumentsLength := ast.Dot(argumentsIdent, "length")
	test := ast.Binary(ast.BinOpLt, ast.Ident(iRef), argumentsLength)
	update := ast.Expr{Node: ast.Node{Loc: ast.SynthesizedLoc}, Data: &ast.EUnary{Op: ast.UnOpPostInc, Value: ast.Ident(iRef)}}

	var destIndex ast.Expr
	if restIndex == 0 {
		destIndex = ast.Ident(iRef)
	} else {
		destIndex = ast.Binary(ast.BinOpSub, ast.Ident(iRef), ast.Num(float64(restIndex)))
	}
	assign := ast.AssignStmt(ast.Index(ast.Ident(restRef), destIndex), ast.Index(ast.Ident(l.t.ArgumentsRef()), ast.Ident(iRef)))

	forStmt := ast.Stmt{Node: ast.Node{Loc: ast.SynthesizedLoc}, Data: &ast.SFor{
		InitOrNil:   ast.VarDecl(ast.LocalVar, iRef, ast.Num(float64(restIndex))),
		TestOrNil:   test,
		UpdateOrNil: update,
		Body:        ast.AsBlock(assign),
	}}
	return []ast.Stmt{initDecl, forStmt}
}
