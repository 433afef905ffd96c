// Destructuring bridge: binding patterns in parameters, variable
// declarations, and assignment expressions are flattened by an external
// helper so the construct-specific lowering rules (function, for-of,
// loop-var renaming) don't each reimplement pattern-walking.
//
// Grounded on evanw-esbuild/internal/js_parser's lowerObjectRestToDecls
// family: given a root pattern and a source value expression, emit a
// sequence of simple declarations/assignments reading from generated
// temporaries. Defaults become a conditional expression,
// "(x === void 0 ? default : x)" (see defaultedValue).
package lower

import (
	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/transformer"
)

// Destructurer flattens one binding pattern (or, for assignment targets,
// one pattern-shaped expression) against a value expression.
type Destructurer interface {
	// DestructureBinding flattens a parameter/variable-declaration
	// pattern, emitting `kind`-declarations (var/let/const, already
	// lowered to LocalVar by the caller in every case this module
	// reaches) that read from value.
	DestructureBinding(l *Lowerer, kind ast.LocalKind, binding ast.Binding, value ast.Expr) []ast.Stmt

	// DestructureAssignment flattens an assignment-target expression
	// (an array/object literal used as an assignment LHS) against
	// value, emitting plain assignment statements.
	DestructureAssignment(l *Lowerer, target ast.Expr, value ast.Expr) []ast.Stmt
}

// defaultDestructurer is the bridge's built-in implementation: the core
// leaves the flattening algorithm unspecified behind the Destructurer
// interface, so this is a direct, reasonably minimal walk rather than a
// port of any one teacher routine.
type defaultDestructurer struct{}

func NewDestructurer() Destructurer { return defaultDestructurer{} }

func (defaultDestructurer) DestructureBinding(l *Lowerer, kind ast.LocalKind, binding ast.Binding, value ast.Expr) []ast.Stmt {
	var out []ast.Stmt
	flattenBindingInto(l, kind, binding, value, &out)
	return out
}

// flattenBindingInto recursively destructures binding against value,
// appending declarations to out. A plain identifier is the base case: a
// single "var name = value;" (or, for a nested binding under a pattern
// whose own parent supplied the temp, the same shape).
func flattenBindingInto(l *Lowerer, kind ast.LocalKind, binding ast.Binding, value ast.Expr, out *[]ast.Stmt) {
	switch b := binding.Data.(type) {
	case *ast.BMissing:
		// An elided slot still needs its source-position value evaluated
		// for side effects, but binds nothing.
		*out = append(*out, ast.SExprStmt(value))

	case *ast.BIdentifier:
		*out = append(*out, ast.VarDecl(kind, b.Ref, l.VisitExpr(value)))

	case *ast.BArray:
		// value is read once per element, so anything other than a bare
		// identifier (a nested element read, the loop source index
		// expression) is first stored in a hoisted temp.
		root := requireSimpleRef(l, value, out)
		for i, item := range b.Items {
			if item.IsSpread {
				if id, ok := item.Binding.Data.(*ast.BIdentifier); ok {
					*out = append(*out, ast.VarDecl(kind, id.Ref, sliceFromIndex(root, i)))
					break
				}
				rest := l.t.CreateTempVariable(transformer.TempFlagAuto)
				*out = append(*out, ast.VarDecl(kind, rest, sliceFromIndex(root, i)))
				flattenBindingInto(l, kind, item.Binding, ast.Ident(rest), out)
				break
			}
			elem := ast.Index(root, ast.Num(float64(i)))
			if item.DefaultOrNil.Data != nil {
				elem = defaultedValue(l, elem, item.DefaultOrNil)
			}
			if _, isMissing := item.Binding.Data.(*ast.BMissing); isMissing {
				continue
			}
			flattenBindingInto(l, kind, item.Binding, elem, out)
		}

	case *ast.BObject:
		root := requireSimpleRef(l, value, out)
		for _, p := range b.Properties {
			key := p.Key
			if p.IsComputed {
				key = l.VisitExpr(key)
			}
			var elem ast.Expr
			if !p.IsComputed {
				if s, ok := key.Data.(*ast.EString); ok {
					elem = ast.Dot(root, s.Value)
				}
			}
			if elem.Data == nil {
				elem = ast.Index(root, key)
			}
			if p.DefaultOrNil.Data != nil {
				elem = defaultedValue(l, elem, p.DefaultOrNil)
			}
			flattenBindingInto(l, kind, p.Value, elem, out)
		}

	default:
		panic("lower: unreachable binding kind in destructuring")
	}
}

func (defaultDestructurer) DestructureAssignment(l *Lowerer, target ast.Expr, value ast.Expr) []ast.Stmt {
	var out []ast.Stmt
	flattenAssignInto(l, target, value, &out)
	return out
}

func flattenAssignInto(l *Lowerer, target ast.Expr, value ast.Expr, out *[]ast.Stmt) {
	switch t := target.Data.(type) {
	case *ast.EArray:
		root := requireSimpleRef(l, value, out)
		for i, item := range t.Items {
			if spread, ok := item.Data.(*ast.ESpread); ok {
				rest := l.t.CreateTempVariable(transformer.TempFlagAuto)
				*out = append(*out, ast.VarDecl(ast.LocalVar, rest, sliceFromIndex(root, i)))
				flattenAssignInto(l, spread.Value, ast.Ident(rest), out)
				break
			}
			if _, ok := item.Data.(*ast.EMissing); ok {
				continue
			}
			elem := ast.Index(root, ast.Num(float64(i)))
			if assign, ok := item.Data.(*ast.EBinary); ok && assign.Op == ast.BinOpAssign {
				elem = defaultedValue(l, elem, assign.Right)
				flattenAssignInto(l, assign.Left, elem, out)
				continue
			}
			flattenAssignInto(l, item, elem, out)
		}

	case *ast.EObject:
		root := requireSimpleRef(l, value, out)
		for _, p := range t.Properties {
			key := p.Key
			if p.IsComputed {
				key = l.VisitExpr(key)
			}
			var elem ast.Expr
			if !p.IsComputed {
				if s, ok := key.Data.(*ast.EString); ok {
					elem = ast.Dot(root, s.Value)
				}
			}
			if elem.Data == nil {
				elem = ast.Index(root, key)
			}
			v := p.ValueOrNil
			if assign, ok := v.Data.(*ast.EBinary); ok && assign.Op == ast.BinOpAssign {
				elem = defaultedValue(l, elem, assign.Right)
				v = assign.Left
			}
			flattenAssignInto(l, v, elem, out)
		}

	default:
		*out = append(*out, ast.AssignStmt(l.VisitExpr(target), value))
	}
}

// requireSimpleRef returns value directly if it's already a bare
// reference (so nested patterns can index it repeatedly without
// re-evaluating a side-effecting expression), otherwise assigns it to a
// fresh hoisted temp and returns a reference to that temp.
func requireSimpleRef(l *Lowerer, value ast.Expr, out *[]ast.Stmt) ast.Expr {
	visited := l.VisitExpr(value)
	if _, ok := visited.Data.(*ast.EIdentifier); ok {
		return visited
	}
	temp := l.t.CreateTempVariable(transformer.TempFlagAuto)
	*out = append(*out, ast.AssignStmt(ast.Ident(temp), visited))
	return ast.Ident(temp)
}

func sliceFromIndex(root ast.Expr, index int) ast.Expr {
	call := ast.Dot(root, "slice")
	return ast.Call(call, ast.Num(float64(index)))
}

// defaultedValue builds "(elem === void 0 ? defaultExpr : elem)" without
// re-evaluating elem twice when elem is already a temp/member read that
// is side-effect-free to repeat (property reads and identifier reads,
// the only shapes this helper is ever called with).
func defaultedValue(l *Lowerer, elem ast.Expr, defaultExpr ast.Expr) ast.Expr {
	test := ast.StrictEquals(elem, ast.Undefined())
	return ast.Expr{Node: elem.Node, Data: &ast.EIf{Test: test, Yes: l.VisitExpr(defaultExpr), No: elem}}
}
