// Object-literal lowering: computed-property split into a
// temp-and-assignments comma-sequence, plus shorthand-property expansion.
// Also routes getter/setter and spread properties through the same split
// machinery (flags.go flags an EObject ES6 for any of
// shorthand/computed/get/set/spread, not computed keys alone), since all
// four need the same "build incrementally against one temp" treatment
// once any one of them forces leaving literal-object syntax behind.
//
// Grounded on evanw-esbuild/internal/js_parser_lower.go's
// lowerObjectPropertyInDecl / lowerObjectSpread family and
// js_parser_lower_class.go's accessor-pairing logic (reused nearly
// verbatim here, since an object literal's getter/setter pairing problem
// is the same problem as a class's).
package lower

import (
	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/transformer"
)

func (l *Lowerer) lowerObject(e ast.Expr, d *ast.EObject) ast.Expr {
	splitAt := -1
	for i, p := range d.Properties {
		if p.IsComputed || p.Kind == ast.PropertyGet || p.Kind == ast.PropertySet || p.Kind == ast.PropertySpread {
			splitAt = i
			break
		}
	}
	if splitAt < 0 {
		return expandShorthandOnly(l, e, d)
	}

	prefix := make([]ast.Property, splitAt)
	for i, p := range d.Properties[:splitAt] {
		prefix[i] = visitPlainProperty(l, p)
	}

	temp := l.t.CreateTempVariable(transformer.TempFlagAuto)
	prefixLit := ast.Expr{Node: ast.Node{Loc: ast.SynthesizedLoc}, Data: &ast.EObject{Properties: prefix, IsSingleLine: d.IsSingleLine}}
	chain := ast.Assign(ast.Ident(temp), prefixLit)

	seenAccessors := map[string]bool{}
	rest := d.Properties[splitAt:]
	for i, p := range rest {
		switch p.Kind {
		case ast.PropertyGet, ast.PropertySet:
			name := accessorNameFromProp(p)
			if !p.IsComputed {
				if name != "" && seenAccessors[name] {
					continue
				}
				if name != "" {
					seenAccessors[name] = true
				}
			}
			chain = ast.JoinWithComma(chain, l.buildObjectAccessorInstall(temp, rest, i, p))

		case ast.PropertySpread:
			chain = ast.JoinWithComma(chain, ast.Call(
				ast.Dot(ast.Ident(l.t.GlobalRef("Object")), "assign"),
				ast.Ident(temp),
				l.VisitExpr(p.ValueOrNil),
			))

		default:
			key := p.Key
			if p.IsComputed {
				key = l.VisitExpr(key)
			}
			value := l.VisitExpr(p.ValueOrNil)
			target := propertyTarget(ast.Ident(temp), key, p.IsComputed)
			chain = ast.JoinWithComma(chain, ast.Assign(target, value))
		}
	}

	return ast.JoinWithComma(chain, ast.Ident(temp))
}

// expandShorthandOnly handles the common case of an object literal that
// needs lowering only because it contains a shorthand property (or a
// deeper ES6 construct in one of its values), with no computed key,
// accessor, or spread forcing the full temp-and-assignments treatment.
func expandShorthandOnly(l *Lowerer, e ast.Expr, d *ast.EObject) ast.Expr {
	props := make([]ast.Property, len(d.Properties))
	for i, p := range d.Properties {
		props[i] = visitPlainProperty(l, p)
	}
	e.Data = &ast.EObject{Properties: props, IsSingleLine: d.IsSingleLine}
	return e
}

// visitPlainProperty expands a shorthand property ("{x}" -> "{x: x}")
// and visits whatever value position either kind carries.
func visitPlainProperty(l *Lowerer, p ast.Property) ast.Property {
	if p.ValueOrNil.Data != nil {
		p.ValueOrNil = l.VisitExpr(p.ValueOrNil)
	}
	p.IsShorthand = false
	return p
}

func accessorNameFromProp(p ast.Property) string {
	if p.IsComputed {
		return ""
	}
	if s, ok := p.Key.Data.(*ast.EString); ok {
		return s.Value
	}
	return ""
}

// buildObjectAccessorInstall mirrors class.go's buildAccessorInstall: find
// the getter/setter sharing this property's key (pairing by name for a
// static key; a computed key is never paired with another member, since
// two independently-evaluated computed keys have no reliable way to be
// recognized as "the same" key ahead of runtime) and emit one
// Object.defineProperty call.
func (l *Lowerer) buildObjectAccessorInstall(temp ast.Ref, rest []ast.Property, selfIndex int, p ast.Property) ast.Expr {
	key := p.Key
	if p.IsComputed {
		key = l.VisitExpr(key)
	}

	var getFn, setFn ast.Expr
	if p.IsComputed {
		switch p.Kind {
		case ast.PropertyGet:
			getFn = l.VisitExpr(p.ValueOrNil)
		case ast.PropertySet:
			setFn = l.VisitExpr(p.ValueOrNil)
		}
	} else {
		name := accessorNameFromProp(p)
		for _, other := range rest {
			if other.IsComputed || accessorNameFromProp(other) != name {
				continue
			}
			switch other.Kind {
			case ast.PropertyGet:
				if getFn.Data == nil {
					getFn = l.VisitExpr(other.ValueOrNil)
				}
			case ast.PropertySet:
				if setFn.Data == nil {
					setFn = l.VisitExpr(other.ValueOrNil)
				}
			}
		}
	}

	descriptor := []ast.Property{
		{Key: ast.Str("enumerable"), ValueOrNil: ast.Bool(true)},
		{Key: ast.Str("configurable"), ValueOrNil: ast.Bool(true)},
	}
	if getFn.Data != nil {
		descriptor = append(descriptor, ast.Property{Key: ast.Str("get"), ValueOrNil: getFn})
	}
	if setFn.Data != nil {
		descriptor = append(descriptor, ast.Property{Key: ast.Str("set"), ValueOrNil: setFn})
	}

	return ast.Call(
		ast.Dot(ast.Ident(l.t.GlobalRef("Object")), "defineProperty"),
		ast.Ident(temp),
		key,
		ast.Expr{Node: ast.Node{Loc: ast.SynthesizedLoc}, Data: &ast.EObject{Properties: descriptor, IsSingleLine: true}},
	)
}
