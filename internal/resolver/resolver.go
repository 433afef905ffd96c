// Package resolver models the semantic query surface the lowering core
// depends on: facts about bindings that only a checker (lexing,
// parsing, and type-checking all sit upstream of this module) could
// know, and that the lowering passes in package lower need without
// recomputing themselves.
//
// evanw-esbuild's own internal/resolver solves a different problem
// entirely (locating the file a module specifier points at on disk).
// That has no counterpart in a pure AST-to-AST transform with no module
// system in scope, so this package replaces it rather than adapting it
// (see DESIGN.md).
package resolver

import "github.com/tsdown/es6down/internal/ast"

// NodeCheckFlags mirrors the subset of TypeScript's per-node checker
// flags the lowering core reads.
type NodeCheckFlags uint8

const (
	// BlockScopedBindingInLoop marks a "let"/"const" declaration whose
	// enclosing loop body re-executes it per iteration, so lowering to
	// "var" needs a fresh uninitialized binding reinitialized with
	// "void 0" rather than silently reusing the prior iteration's value.
	BlockScopedBindingInLoop NodeCheckFlags = 1 << iota

	// SuperInstance marks a bare "super" reference that occurs in
	// instance-member position, distinguishing "_super.prototype" from
	// the static "_super" lowering.
	SuperInstance
)

// Resolver is the semantic query surface lowering depends on. A real
// pipeline provides this from its checker; StaticResolver below is a
// concrete, explicitly-populated implementation for tests and for
// standalone use of this module.
type Resolver interface {
	// NodeCheckFlags reports the checker flags recorded against a given
	// node, keyed by its stable NodeID (assigned by ast.ComputeFlags).
	NodeCheckFlags(id ast.NodeID) NodeCheckFlags

	// ReferencedNestedRedeclaration reports whether an identifier
	// reference (again keyed by NodeID) resolves to a binding that
	// nested-redeclaration renaming replaced, and if so, which Ref it
	// was renamed to.
	ReferencedNestedRedeclaration(id ast.NodeID) (ast.Ref, bool)

	// IsNestedRedeclaration reports whether a declaration (keyed by the
	// NodeID of its SLocal/Decl) shadows an enclosing "let"/"const" that's
	// being hoisted to "var" in the same lowering pass, and if so, the Ref
	// it must be renamed to at the declaration site. This is the same Ref
	// ReferencedNestedRedeclaration later hands back for every reference
	// this declaration's scope redirects to it — the two methods are two
	// views onto one fact, so a declaration and its references can never
	// land on different bindings.
	IsNestedRedeclaration(id ast.NodeID) (ast.Ref, bool)
}

// StaticResolver is a plain map-backed Resolver. A real checker would
// compute these facts by walking scopes during type-checking; since
// that's out of scope here, callers populate a StaticResolver directly —
// from a real checker's output in a full pipeline, or by hand in tests
// exercising one lowering rule at a time.
type StaticResolver struct {
	checkFlags        map[ast.NodeID]NodeCheckFlags
	nestedRedeclRefs  map[ast.NodeID]ast.Ref
	nestedRedeclDecls map[ast.NodeID]ast.Ref
}

func NewStaticResolver() *StaticResolver {
	return &StaticResolver{
		checkFlags:        map[ast.NodeID]NodeCheckFlags{},
		nestedRedeclRefs:  map[ast.NodeID]ast.Ref{},
		nestedRedeclDecls: map[ast.NodeID]ast.Ref{},
	}
}

func (r *StaticResolver) SetCheckFlags(id ast.NodeID, flags NodeCheckFlags) {
	r.checkFlags[id] = flags
}

// SetNestedRedeclarationReference records that the identifier reference
// node id resolves to renamedTo, a binding nested-redeclaration renaming
// replaced.
func (r *StaticResolver) SetNestedRedeclarationReference(id ast.NodeID, renamedTo ast.Ref) {
	r.nestedRedeclRefs[id] = renamedTo
}

// MarkNestedRedeclaration records that the declaration node id must be
// renamed to renamedTo at its declaration site — the same Ref every
// reference this declaration's scope redirects is recorded against via
// SetNestedRedeclarationReference.
func (r *StaticResolver) MarkNestedRedeclaration(id ast.NodeID, renamedTo ast.Ref) {
	r.nestedRedeclDecls[id] = renamedTo
}

func (r *StaticResolver) NodeCheckFlags(id ast.NodeID) NodeCheckFlags {
	return r.checkFlags[id]
}

func (r *StaticResolver) ReferencedNestedRedeclaration(id ast.NodeID) (ast.Ref, bool) {
	ref, ok := r.nestedRedeclRefs[id]
	return ref, ok
}

func (r *StaticResolver) IsNestedRedeclaration(id ast.NodeID) (ast.Ref, bool) {
	ref, ok := r.nestedRedeclDecls[id]
	return ref, ok
}

func (f NodeCheckFlags) Has(flag NodeCheckFlags) bool { return f&flag != 0 }
