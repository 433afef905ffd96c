// Package transformer implements the façade that owns a single file
// transform's mutable state: lexical environment stack, name allocator,
// substitution hooks, ancestor stack — handed by reference to every
// lowering rule in package lower rather than recomputed by each one.
//
// Grounded on evanw-esbuild's internal/js_parser, which plays the same
// role (parser.currentScope, parser.tempRefsToDeclare,
// parser.exprParentMap) for a different set of lowering rules.
package transformer

import (
	"fmt"

	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/config"
	"github.com/tsdown/es6down/internal/logger"
	"github.com/tsdown/es6down/internal/resolver"
)

// TempFlags hints the name allocator's choice of letter, mirroring the
// real compiler's "_i" vs "Auto" distinction.
type TempFlags uint8

const (
	// TempFlagAuto cycles through _a, _b, _c, ... skipping any letter
	// that collides with a name already in the file.
	TempFlagAuto TempFlags = iota

	// TempFlagI cycles through _i, _j, _k, ... reserved for loop
	// counters so nested loops don't all fight over "_i". These are
	// not hoisted: the caller declares them in its loop's initializer.
	TempFlagI
)

// SubstitutionHook decides the replacement for one reference. Returning
// ok=false means "no opinion, defer to any chained predecessor hook."
type SubstitutionHook func(id ast.NodeID) (ast.Expr, bool)

// lexicalFrame is one start/endLexicalEnvironment bracket.
type lexicalFrame struct {
	hoisted []ast.Ref
}

// Transformer owns every piece of mutable state a single source-file
// transform needs. It is not safe for concurrent use: the transform is
// single-threaded cooperative within a compilation.
type Transformer struct {
	symbols  ast.SymbolTable
	options  *config.Options
	resolver resolver.Resolver
	log      *logger.Log
	tracker  logger.LineColumnTracker

	lexicalStack []lexicalFrame
	ancestors    []interface{}

	generatedNames map[ast.NodeID]ast.Ref
	reservedNames  map[string]bool
	autoCounter    int
	iCounter       int

	bindingHook     SubstitutionHook
	expressionHook  SubstitutionHook
	noSubstitution  map[ast.NodeID]bool

	thisCaptures map[ast.NodeID]ast.Ref
	argumentsRef *ast.Ref
	globalRefs   map[string]ast.Ref
}

func New(options *config.Options, res resolver.Resolver, log *logger.Log) *Transformer {
	return &Transformer{
		options:        options,
		resolver:       res,
		log:            log,
		generatedNames: map[ast.NodeID]ast.Ref{},
		reservedNames:  map[string]bool{},
		noSubstitution: map[ast.NodeID]bool{},
		thisCaptures:   map[ast.NodeID]ast.Ref{},
		globalRefs:     map[string]ast.Ref{},
	}
}

// Reserve registers a name already in use in the source file so the
// temp allocator never picks it: name uniqueness is guaranteed across
// the entire file transform.
func (t *Transformer) Reserve(name string) { t.reservedNames[name] = true }

func (t *Transformer) Symbols() *ast.SymbolTable   { return &t.symbols }
func (t *Transformer) Options() *config.Options    { return t.options }
func (t *Transformer) Resolver() resolver.Resolver { return t.resolver }
func (t *Transformer) Log() *logger.Log            { return t.log }

// SetSourceTracker installs the line/column tracker for the file being
// transformed, used to attach source positions to diagnostics that fail
// loudly with a file name, line, and column. Callers that never report a
// diagnostic (most tests) can skip this; AddError still works without a
// tracker, it just omits the location.
func (t *Transformer) SetSourceTracker(tracker logger.LineColumnTracker) {
	t.tracker = tracker
}

func (t *Transformer) SourceTracker() *logger.LineColumnTracker { return &t.tracker }

// ---- Lexical environment brackets ----

func (t *Transformer) StartLexicalEnvironment() {
	t.lexicalStack = append(t.lexicalStack, lexicalFrame{})
}

// EndLexicalEnvironment closes the innermost bracket and prepends a
// single "var" statement declaring everything hoisted inside it ahead
// of sink, or returns sink unchanged if nothing was hoisted.
func (t *Transformer) EndLexicalEnvironment(sink []ast.Stmt) []ast.Stmt {
	n := len(t.lexicalStack)
	if n == 0 {
		panic("transformer: endLexicalEnvironment with no matching startLexicalEnvironment")
	}
	frame := t.lexicalStack[n-1]
	t.lexicalStack = t.lexicalStack[:n-1]

	if len(frame.hoisted) == 0 {
		return sink
	}
	decls := make([]ast.Decl, len(frame.hoisted))
	for i, ref := range frame.hoisted {
		decls[i] = ast.Decl{Binding: ast.Binding{Loc: ast.SynthesizedLoc, Data: &ast.BIdentifier{Ref: ref}}}
	}
	hoistStmt := ast.VarDecls(ast.LocalVar, decls)
	return append([]ast.Stmt{hoistStmt}, sink...)
}

// HoistVariableDeclaration records ref as a "var" to surface at the top
// of the nearest open lexical-environment bracket.
func (t *Transformer) HoistVariableDeclaration(ref ast.Ref) {
	n := len(t.lexicalStack)
	if n == 0 {
		panic("transformer: hoistVariableDeclaration with no open lexical environment")
	}
	t.lexicalStack[n-1].hoisted = append(t.lexicalStack[n-1].hoisted, ref)
}

// ---- Ancestor stack ----

func (t *Transformer) PushNode(n interface{}) { t.ancestors = append(t.ancestors, n) }

func (t *Transformer) PopNode() {
	n := len(t.ancestors)
	if n == 0 {
		panic("transformer: popNode with empty ancestor stack")
	}
	t.ancestors = t.ancestors[:n-1]
}

// GetParentNode returns whatever node is currently being visited by the
// caller (i.e. the node the dispatcher pushed just before descending
// into the child currently being processed), or nil at the root.
func (t *Transformer) GetParentNode() interface{} {
	if len(t.ancestors) == 0 {
		return nil
	}
	return t.ancestors[len(t.ancestors)-1]
}

// FindAncestorNode walks outward from the current node until predicate
// reports true, returning nil if no ancestor matches. Used by the
// "this"/"super" rewrites to find the nearest enclosing function-like
// node.
func (t *Transformer) FindAncestorNode(predicate func(interface{}) bool) interface{} {
	for i := len(t.ancestors) - 1; i >= 0; i-- {
		if predicate(t.ancestors[i]) {
			return t.ancestors[i]
		}
	}
	return nil
}

// ---- Name allocation ----

// NewSymbol mints a fresh generated Ref with the given original name.
func (t *Transformer) NewSymbol(name string) ast.Ref {
	return t.symbols.New(ast.SymbolGenerated, name)
}

func (t *Transformer) SymbolName(ref ast.Ref) string { return t.symbols.Get(ref).OriginalName }

// CreateTempVariable allocates a fresh, file-unique temp identifier. A
// TempFlagAuto temp is hoisted into the nearest open lexical-environment
// bracket; a TempFlagI loop counter is not, since its loop declares it.
func (t *Transformer) CreateTempVariable(flags TempFlags) ast.Ref {
	var name string
	switch flags {
	case TempFlagI:
		for {
			name = fmt.Sprintf("_%c", 'i'+rune(t.iCounter%3))
			if t.iCounter >= 3 {
				name = fmt.Sprintf("_%c%d", 'i'+rune(t.iCounter%3), t.iCounter/3)
			}
			t.iCounter++
			if !t.reservedNames[name] {
				break
			}
		}
	default:
		for {
			name = fmt.Sprintf("_%c", 'a'+rune(t.autoCounter%26))
			if t.autoCounter >= 26 {
				name = fmt.Sprintf("_%c%d", 'a'+rune(t.autoCounter%26), t.autoCounter/26)
			}
			t.autoCounter++
			if !t.reservedNames[name] {
				break
			}
		}
	}
	t.reservedNames[name] = true
	ref := t.symbols.New(ast.SymbolGenerated, name)
	if flags != TempFlagI {
		t.HoistVariableDeclaration(ref)
	}
	return ref
}

// GetGeneratedNameForNode returns a stable, file-unique Ref for a given
// node, minting one the first time it's asked for a particular NodeID
// and returning the same Ref on every subsequent call.
func (t *Transformer) GetGeneratedNameForNode(id ast.NodeID, hint string) ast.Ref {
	if ref, ok := t.generatedNames[id]; ok {
		return ref
	}
	base := ast.ForceValidIdentifier(hint)
	name := base
	suffix := 1
	for t.reservedNames[name] {
		name = fmt.Sprintf("%s%d", base, suffix)
		suffix++
	}
	t.reservedNames[name] = true
	ref := t.symbols.New(ast.SymbolGenerated, name)
	t.generatedNames[id] = ref
	return ref
}

// CaptureThis returns the "_this" symbol that owns the lexical "this" for
// ownerID (a non-arrow function's NodeID, or 0 for the top-level file),
// allocating it the first time a given owner is asked for one. Every
// arrow nested inside the same owner shares this one Ref.
func (t *Transformer) CaptureThis(ownerID ast.NodeID) ast.Ref {
	if ref, ok := t.thisCaptures[ownerID]; ok {
		return ref
	}
	ref := t.NewSymbol("_this")
	t.thisCaptures[ownerID] = ref
	return ref
}

// ThisCaptured reports whether CaptureThis has already been called for
// ownerID, so the owner's own lowering rule knows whether it still needs
// to emit "var _this = this;" or whether no arrow ever actually referred
// to it.
func (t *Transformer) ThisCaptured(ownerID ast.NodeID) (ast.Ref, bool) {
	ref, ok := t.thisCaptures[ownerID]
	return ref, ok
}

// ArgumentsRef returns a Ref that names the implicit "arguments" object
// of whichever function the caller emits it inside. It's memoized per
// transform (not per owner, unlike CaptureThis) because it never needs
// its own declaration: rest-parameter lowering only ever reads from it,
// never declares it.
func (t *Transformer) ArgumentsRef() ast.Ref {
	if t.argumentsRef == nil {
		ref := t.symbols.New(ast.SymbolOther, "arguments")
		t.argumentsRef = &ref
	}
	return *t.argumentsRef
}

// GlobalRef returns a stable Ref naming a well-known global or runtime
// helper (e.g. "Object", "__extends"), minting it the first time a given
// name is asked for and returning the same Ref on every later call. Used
// for identifiers that are always read, never declared, by the lowered
// output — "__extends" is assumed provided by the output environment.
func (t *Transformer) GlobalRef(name string) ast.Ref {
	if ref, ok := t.globalRefs[name]; ok {
		return ref
	}
	ref := t.symbols.New(ast.SymbolOther, name)
	t.globalRefs[name] = ref
	return ref
}

// ---- Substitution hooks ----

// SetBindingIdentifierSubstitution installs a hook for declaration
// sites, chaining to whatever hook (if any) was previously installed.
func (t *Transformer) SetBindingIdentifierSubstitution(hook SubstitutionHook) {
	t.bindingHook = chain(t.bindingHook, hook)
}

// SetExpressionSubstitution installs a hook for reference sites,
// chaining to whatever hook (if any) was previously installed.
func (t *Transformer) SetExpressionSubstitution(hook SubstitutionHook) {
	t.expressionHook = chain(t.expressionHook, hook)
}

func chain(prev SubstitutionHook, next SubstitutionHook) SubstitutionHook {
	if prev == nil {
		return next
	}
	return func(id ast.NodeID) (ast.Expr, bool) {
		if e, ok := next(id); ok {
			return e, true
		}
		return prev(id)
	}
}

// SubstituteBindingIdentifier runs the installed declaration-site hook,
// honoring SuppressSubstitution for identifiers that are themselves
// already a substitution's replacement: the replacement is itself not
// to be re-substituted.
func (t *Transformer) SubstituteBindingIdentifier(id ast.NodeID, fallback ast.Expr) ast.Expr {
	if t.noSubstitution[id] {
		return fallback
	}
	if t.bindingHook != nil {
		if e, ok := t.bindingHook(id); ok {
			return e
		}
	}
	return fallback
}

// SubstituteExpression runs the installed reference-site hook.
func (t *Transformer) SubstituteExpression(id ast.NodeID, fallback ast.Expr) ast.Expr {
	if t.noSubstitution[id] {
		return fallback
	}
	if t.expressionHook != nil {
		if e, ok := t.expressionHook(id); ok {
			return e
		}
	}
	return fallback
}

// SuppressSubstitution marks a node (typically one lowering itself just
// synthesized as a hook's replacement) as exempt from further
// substitution.
func (t *Transformer) SuppressSubstitution(id ast.NodeID) { t.noSubstitution[id] = true }
