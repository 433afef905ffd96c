// let/const-in-loop lowering: a hoisted-to-"var" binding that re-executes
// per loop iteration needs a defined initializer on every iteration, and
// a binding that shadows another hoisted binding from an enclosing block
// needs renaming, with every reference to the original name redirected
// via a substitution hook for the rest of its scope.
//
// Grounded on evanw-esbuild/internal/js_parser_lower.go's handling of
// "var" hoisting interacting with block scoping (wrapFuncBodyIfHoistedFn
// and the per-iteration "let" capture machinery), adapted to this
// domain's simpler single-pass renaming (no closure-capture IIFE needed
// since this target never needs the "let" in a closure to see its own
// iteration's value — only a defined initializer on every iteration,
// not full per-iteration lexical capture).
package lower

import (
	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/resolver"
)

func (l *Lowerer) lowerLocal(s ast.Stmt, d *ast.SLocal) ast.Stmt {
	l.ensureNestedRedeclarationHook()

	inLoop := l.t.Resolver().NodeCheckFlags(s.ID).Has(resolver.BlockScopedBindingInLoop)
	isBlockScoped := d.Kind != ast.LocalVar

	var renameRef ast.Ref
	var renamed bool
	if isBlockScoped {
		renameRef, renamed = l.t.Resolver().IsNestedRedeclaration(s.ID)
	}

	var plainDecls []ast.Decl
	var extraStmts []ast.Stmt

	for _, decl := range d.Decls {
		binding := decl.Binding
		if renamed {
			if _, ok := binding.Data.(*ast.BIdentifier); ok {
				// renameRef is the exact Ref ReferencedNestedRedeclaration
				// will later hand back for every reference the resolver
				// tracked against this declaration, so the declaration
				// site and every redirected reference agree on one Ref.
				binding = ast.Binding{Loc: binding.Loc, Data: &ast.BIdentifier{Ref: renameRef}}
			}
		}

		var value ast.Expr
		if decl.ValueOrNil.Data != nil {
			value = l.VisitExpr(decl.ValueOrNil)
		} else if isBlockScoped && inLoop && !d.IsLoopInit {
			// An uninitialized "let" that isn't the loop's own
			// for-in/for-of head binding must start each iteration
			// undefined rather than silently reusing the prior
			// iteration's "var" value.
			value = ast.Undefined()
		}

		if ast.IsBindingPattern(binding) {
			if value.Data == nil {
				// A bare "let [a, b];" with no initializer: nothing to
				// destructure against, so the pattern's names are simply
				// left undeclared of any initial value; emit each name
				// as a plain uninitialized var.
				for _, ref := range bindingIdentifiers(binding) {
					plainDecls = append(plainDecls, ast.Decl{Binding: ast.Binding{Loc: ast.SynthesizedLoc, Data: &ast.BIdentifier{Ref: ref}}})
				}
				continue
			}
			extraStmts = append(extraStmts, l.destructurer().DestructureBinding(l, ast.LocalVar, binding, value)...)
			continue
		}

		plainDecls = append(plainDecls, ast.Decl{Binding: binding, ValueOrNil: value})
	}

	var out []ast.Stmt
	if len(plainDecls) > 0 {
		out = append(out, ast.VarDecls(ast.LocalVar, plainDecls))
	}
	out = append(out, extraStmts...)

	if len(out) == 1 {
		return out[0]
	}
	return ast.Block(out)
}

// bindingIdentifiers collects every leaf BIdentifier ref in binding, in
// source order, for the "declared but never given a value" fallback.
func bindingIdentifiers(binding ast.Binding) []ast.Ref {
	var out []ast.Ref
	var walk func(ast.Binding)
	walk = func(b ast.Binding) {
		switch bd := b.Data.(type) {
		case *ast.BIdentifier:
			out = append(out, bd.Ref)
		case *ast.BArray:
			for _, item := range bd.Items {
				walk(item.Binding)
			}
		case *ast.BObject:
			for _, p := range bd.Properties {
				walk(p.Value)
			}
		}
	}
	walk(binding)
	return out
}

// ensureNestedRedeclarationHook installs the single global expression-
// substitution hook that redirects every reference the resolver reports
// as pointing at a renamed binding. Installed lazily, once, on the first
// call (whether or not any renaming happens then), and is idempotent
// across repeated calls.
func (l *Lowerer) ensureNestedRedeclarationHook() {
	if l.installedRedeclHook {
		return
	}
	l.installedRedeclHook = true
	l.t.SetExpressionSubstitution(func(id ast.NodeID) (ast.Expr, bool) {
		if newRef, ok := l.t.Resolver().ReferencedNestedRedeclaration(id); ok {
			return ast.Ident(newRef), true
		}
		return ast.Expr{}, false
	})
}
