// The global "this" reference-site substitution. A bare
// "this" reached through the normal recursive visit is never itself
// ES6/ContainsES6-flagged (ast.ComputeFlags only flags the node that
// actually needs a structural rewrite, and a leaf reference needs none),
// so lower's flag-gated dispatcher would otherwise pass it straight
// through unchanged. The printer is the one place that touches every
// identifier/this/super leaf regardless of flags, so this hook is
// installed once on the shared transformer and consulted there, not from
// anywhere in this package's dispatcher.
//
// Grounded on evanw-esbuild/internal/js_parser's captureThis
// bookkeeping (the parser substitutes at print time off a similar
// per-scope map), adapted here to the explicit thisOwner map
// ast.ComputeFlags already produces.
package lower

import (
	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/transformer"
)

// InstallThisCaptureSubstitution wires the reference-site hook that
// rewrites a bare "this" inside an arrow into the captured "_this" local
// of its nearest enclosing non-arrow function (or the top-level file,
// ast.NodeID 0). thisOwner is ast.ComputeFlags's own output: it already
// decided, for every such "this", which owner's capture it belongs to.
func InstallThisCaptureSubstitution(t *transformer.Transformer, thisOwner map[ast.NodeID]ast.NodeID) {
	t.SetExpressionSubstitution(func(id ast.NodeID) (ast.Expr, bool) {
		ownerID, ok := thisOwner[id]
		if !ok {
			return ast.Expr{}, false
		}
		return ast.Ident(t.CaptureThis(ownerID)), true
	})
}
