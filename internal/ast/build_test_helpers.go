package ast

// BuildContext mints named Refs against a private SymbolTable, for tests
// that build a tree by hand (literal Expr{Data: &ast.E...{}} construction,
// mirroring evanw-esbuild's js_ast_helpers_test.go style) without going
// through a full transformer.Transformer.
type BuildContext struct {
	Symbols SymbolTable
}

func NewBuildContext() *BuildContext { return &BuildContext{} }

// Var mints an ordinary (non-generated) symbol and returns both its Ref
// and an identifier Expr reading it, since most call sites want one
// right after the other.
func (b *BuildContext) Var(name string) (Ref, Expr) {
	ref := b.Symbols.New(SymbolOther, name)
	return ref, Ident(ref)
}

// Generated mints a SymbolGenerated Ref, for fixtures that need to hand
// a pre-named "temp" to code under test rather than let it mint one.
func (b *BuildContext) Generated(name string) Ref {
	return b.Symbols.New(SymbolGenerated, name)
}

// Name resolves a previously-minted Ref back to its source name. Its
// signature matches jsprint.SymbolName, so a BuildContext can be handed
// directly to jsprint.Print as `bc.Name`.
func (b *BuildContext) Name(ref Ref) string { return b.Symbols.Get(ref).OriginalName }
