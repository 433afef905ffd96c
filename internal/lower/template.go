// Template literal lowering. An untagged template becomes
// a left-associative "+" chain of its literal chunks and substitution
// expressions; a tagged template becomes a comma-sequence that builds a
// one-shot site object (cooked strings array, plus a "raw" property
// holding the same chunks' unescaped source text) and calls the tag
// function against it.
//
// Grounded on evanw-esbuild/internal/js_parser_lower.go's
// lowerTemplateLiteral (the untagged case) and lowerTaggedTemplateLiteral
// (the site-object construction), adapted since this target has no ES5
// template-object caching story to preserve (the real compiler reuses one
// frozen site object across every call at a given tag site; this target
// simply rebuilds the pair of arrays inline each time, which is
// observably different only if a caller mutates the site object and
// expects that mutation to stick across calls).
package lower

import (
	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/transformer"
)

func (l *Lowerer) lowerTemplate(e ast.Expr, d *ast.ETemplate) ast.Expr {
	if d.TagOrNil.Data != nil {
		return l.lowerTaggedTemplate(e, d)
	}
	return untaggedConcat(l, d)
}

// untaggedConcat builds the "+" chain. Parenthesization of any operand
// whose own precedence doesn't exceed binary "+" is left
// entirely to the printer's standard precedence-aware expression
// printing; a correctly-associative "+" chain like this one needs no
// lowering-side paren bookkeeping; it falls out of ordinary operator
// precedence the same way "a + (b, c)" does for any other "+" expression.
func untaggedConcat(l *Lowerer, d *ast.ETemplate) ast.Expr {
	var result ast.Expr
	have := false

	appendStr := func(s string) {
		if s == "" {
			return
		}
		if !have {
			result, have = ast.Str(s), true
			return
		}
		result = ast.Binary(ast.BinOpAdd, result, ast.Str(s))
	}
	appendExpr := func(v ast.Expr) {
		visited := l.VisitExpr(v)
		if !have {
			result, have = visited, true
			return
		}
		result = ast.Binary(ast.BinOpAdd, result, visited)
	}

	appendStr(d.HeadCooked)
	for _, part := range d.Parts {
		appendExpr(part.Value)
		appendStr(part.TailCooked)
	}
	if !have {
		return ast.Str("")
	}
	return result
}

// lowerTaggedTemplate builds the "(_a = [...], _a.raw = [...], tag(_a,
// ...))" sequence. The tag expression is split into a
// (thisArg, callee) pair the same way a spread member call is (spread.go's
// splitReceiver) so "obj.tag`...`" still calls tag with "this === obj".
func (l *Lowerer) lowerTaggedTemplate(e ast.Expr, d *ast.ETemplate) ast.Expr {
	cooked := make([]ast.Expr, 0, len(d.Parts)+1)
	raw := make([]ast.Expr, 0, len(d.Parts)+1)
	cooked = append(cooked, ast.Str(d.HeadCooked))
	raw = append(raw, ast.Str(d.HeadRaw))

	values := make([]ast.Expr, 0, len(d.Parts))
	for _, part := range d.Parts {
		values = append(values, l.VisitExpr(part.Value))
		cooked = append(cooked, ast.Str(part.TailCooked))
		raw = append(raw, ast.Str(part.TailRaw))
	}

	siteRef := l.t.CreateTempVariable(transformer.TempFlagAuto)
	assignSite := ast.Assign(ast.Ident(siteRef), ast.ArraySlice(cooked))
	assignRaw := ast.Assign(ast.Dot(ast.Ident(siteRef), "raw"), ast.ArraySlice(raw))

	thisArg, callee, wrap := l.splitReceiver(d.TagOrNil)
	callArgs := append([]ast.Expr{ast.Ident(siteRef)}, values...)

	var call ast.Expr
	if _, bare := thisArg.Data.(*ast.EUndefined); bare {
		call = ast.CallSlice(callee, callArgs)
	} else {
		call = ast.Call(ast.Dot(callee, "call"), append([]ast.Expr{thisArg}, callArgs...)...)
	}
	call = wrap(call)

	return ast.JoinWithComma(assignSite, ast.JoinWithComma(assignRaw, call))
}
