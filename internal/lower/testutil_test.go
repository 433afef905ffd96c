package lower

import (
	"testing"

	"github.com/tsdown/es6down/internal/compat"
	"github.com/tsdown/es6down/internal/config"
	"github.com/tsdown/es6down/internal/logger"
	"github.com/tsdown/es6down/internal/resolver"
	"github.com/tsdown/es6down/internal/transformer"
)

// newTestLowerer builds a Lowerer over a fresh Transformer/StaticResolver
// pair, for white-box tests in this package that call an unexported
// lowering rule directly rather than going through CreateTransformation.
// It opens one lexical environment, so temps those rules hoist have a
// bracket to land in.
func newTestLowerer(t *testing.T) (*Lowerer, *transformer.Transformer, *resolver.StaticResolver) {
	t.Helper()
	opts := config.NewOptions(compat.ES5)
	log := logger.NewDeferLog()
	res := resolver.NewStaticResolver()
	tr := transformer.New(&opts, res, &log)
	tr.StartLexicalEnvironment()
	return New(tr), tr, res
}
