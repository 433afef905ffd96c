// Package lower is the down-leveling core itself: the flag-gated
// dispatcher and the construct-by-construct rewrite rules. Everything
// here is grounded on evanw-esbuild/internal/js_parser's lowerXxx
// family, adapted from "one pass mixed into the parser's visitor" into
// a standalone visitor driven by the transformer façade in package
// transformer.
package lower

import (
	"fmt"

	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/logger"
	"github.com/tsdown/es6down/internal/transformer"
)

// Lowerer is the stateful visitor the dispatcher hangs off of. Most
// mutable state lives one layer down, in package transformer; the
// Lowerer itself keeps only the destructuring bridge, the super-context
// stack, the set of "_this" capture owners, and whether the
// nested-redeclaration hook is installed.
type Lowerer struct {
	t    *transformer.Transformer
	dstr Destructurer

	installedRedeclHook bool
	superStack          []superContext
	thisCaptureOwners   map[ast.NodeID]bool
}

func New(t *transformer.Transformer) *Lowerer { return &Lowerer{t: t, dstr: NewDestructurer()} }

// SetThisCaptureOwners tells the Lowerer which function owners (NodeIDs,
// 0 meaning the top-level file) need their own "var _this = this;"
// declaration, derived from ast.ComputeFlags's thisOwner map by
// transform.go before traversal starts. The printer's substitution hook
// (substitution.go) only learns a given owner needs a capture the first
// time it's actually asked to print a captured "this" reference, which
// happens well after lowering has already decided whether to emit the
// declaration — so that decision can't be driven by the hook firing, it
// has to be driven by this precomputed set instead.
func (l *Lowerer) SetThisCaptureOwners(owners map[ast.NodeID]bool) {
	l.thisCaptureOwners = owners
}

// needsThisCapture reports whether ownerID needs a "_this" declaration,
// eagerly minting its Ref so every later reference (inside the function
// now, or in a substitution firing after printing starts) resolves to
// the same symbol.
func (l *Lowerer) needsThisCapture(ownerID ast.NodeID) (ast.Ref, bool) {
	if !l.thisCaptureOwners[ownerID] {
		return ast.Ref{}, false
	}
	return l.t.CaptureThis(ownerID), true
}

// SetDestructurer swaps in a different binding-pattern flattening
// strategy; tests exercise this to stub the destructuring bridge out.
func (l *Lowerer) SetDestructurer(d Destructurer) { l.dstr = d }

func (l *Lowerer) destructurer() Destructurer { return l.dstr }

// VisitStmt implements the three-way rewrite/recurse/pass-through gate
// for a single statement node.
func (l *Lowerer) VisitStmt(s ast.Stmt) ast.Stmt {
	if s.Data == nil {
		return s
	}
	if s.TransformFlags.Has(ast.ES6) {
		l.t.PushNode(s.Data)
		defer l.t.PopNode()
		return l.rewriteStmt(s)
	}
	if s.TransformFlags.Has(ast.ContainsES6) {
		l.t.PushNode(s.Data)
		defer l.t.PopNode()
		return l.acceptStmt(s)
	}
	return s
}

// VisitExpr implements the three-way gate for a single expression node.
func (l *Lowerer) VisitExpr(e ast.Expr) ast.Expr {
	if e.Data == nil {
		return e
	}
	if e.TransformFlags.Has(ast.ES6) {
		l.t.PushNode(e.Data)
		defer l.t.PopNode()
		return l.rewriteExpr(e)
	}
	if e.TransformFlags.Has(ast.ContainsES6) {
		l.t.PushNode(e.Data)
		defer l.t.PopNode()
		return l.acceptExpr(e)
	}
	return e
}

func (l *Lowerer) visitStmts(stmts []ast.Stmt) []ast.Stmt {
	if len(stmts) == 0 {
		return stmts
	}
	out := make([]ast.Stmt, len(stmts))
	changed := false
	for i, s := range stmts {
		v := l.VisitStmt(s)
		out[i] = v
		if v.Data != s.Data {
			changed = true
		}
	}
	if !changed {
		return stmts
	}
	return out
}

// rewriteExpr dispatches an ES6-flagged expression to its specific
// lowering rule.
func (l *Lowerer) rewriteExpr(e ast.Expr) ast.Expr {
	switch d := e.Data.(type) {
	case *ast.EArrow:
		return l.lowerArrow(e, d)
	case *ast.EClass:
		return l.lowerClassExpr(e, d)
	case *ast.ETemplate:
		return l.lowerTemplate(e, d)
	case *ast.ESpread:
		// A bare spread only has meaning inside a call/new/array literal;
		// those container kinds consume their spread children directly
		// via lowerCallLike/lowerArraySpread rather than visiting an
		// ESpread node standalone. Reaching here means a spread sits
		// somewhere neither rule expects.
		return l.unknownKind(e.Loc, "spread outside call/new/array context")
	case *ast.ECall:
		return l.lowerCallLike(e, d)
	case *ast.ENew:
		return l.lowerNew(e, d)
	case *ast.EArray:
		return l.lowerArraySpread(e, d)
	case *ast.EObject:
		return l.lowerObject(e, d)
	case *ast.EFunction:
		return l.lowerFunctionExpr(e, d)
	default:
		return l.unknownKind(e.Loc, fmt.Sprintf("unrecognized ES6 expression kind %T", d))
	}
}

// rewriteStmt dispatches an ES6-flagged statement to its specific
// lowering rule.
func (l *Lowerer) rewriteStmt(s ast.Stmt) ast.Stmt {
	switch d := s.Data.(type) {
	case *ast.SForOf:
		return l.lowerForOf(s, d)
	case *ast.SLocal:
		return l.lowerLocal(s, d)
	case *ast.SFunction:
		return l.lowerFunctionDecl(s, d)
	case *ast.SClass:
		return l.lowerClassDecl(s, d)
	default:
		return l.unknownStmtKind(s.Loc, fmt.Sprintf("unrecognized ES6 statement kind %T", d))
	}
}

// unknownKind implements the "must fail loudly" requirement for an
// expression position: report file/line/column of the offending node
// and return a placeholder so a best-effort output can still be
// produced for the rest of the file.
func (l *Lowerer) unknownKind(loc ast.Loc, what string) ast.Expr {
	l.reportUnknownKind(loc, what)
	return ast.Expr{Node: ast.Node{Loc: loc}, Data: &ast.EUndefined{}}
}

// unknownStmtKind is unknownKind's statement-position counterpart: same
// diagnostic, but a statement placeholder rather than an expression one.
func (l *Lowerer) unknownStmtKind(loc ast.Loc, what string) ast.Stmt {
	l.reportUnknownKind(loc, what)
	return ast.Stmt{Node: ast.Node{Loc: loc}, Data: &ast.SEmpty{}}
}

func (l *Lowerer) reportUnknownKind(loc ast.Loc, what string) {
	tracker := l.t.SourceTracker()
	r := logger.Range{Loc: loc, Len: 0}
	logger.AddError(l.t.Log(), tracker, r, "internal error: "+what)
}
