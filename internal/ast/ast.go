// Package ast defines the tagged-variant tree that the down-leveling
// transform reads and produces. A tree built here is intended to be
// immutable: rewriting never mutates an input node, it returns a new one,
// and subtrees that don't need to change are shared by reference with the
// input tree.
package ast

import "github.com/tsdown/es6down/internal/logger"

// Loc is a byte offset into a file's source text, or SynthesizedLoc.Start
// (-1) for a node that has no source counterpart. Aliased to logger.Loc so
// every package shares one location type without importing logger.
type Loc = logger.Loc

// Ref identifies a symbol (a declared binding) within a single file's
// symbol table. Unlike esbuild's Ref this carries no source index because
// the transform only ever operates on one file at a time.
type Ref struct {
	InnerIndex uint32
	IsValid    bool
}

// InvalidRef is the zero value of an unset Ref.
var InvalidRef = Ref{}

// SymbolKind distinguishes how a Ref came to exist, which controls whether
// the substitution and renaming machinery is allowed to touch it.
type SymbolKind uint8

const (
	// SymbolOther is an ordinary hoisted or block-scoped binding.
	SymbolOther SymbolKind = iota

	// SymbolGenerated is a name minted by the name allocator (temps,
	// loop counters, "_this", "_super", and so on). These never collide
	// with anything written in the source file.
	SymbolGenerated

	// SymbolHoistedFunction is a function declaration that must be
	// visible for the whole enclosing function body, not just its block.
	SymbolHoistedFunction
)

// Symbol is one entry in a file's symbol table.
type Symbol struct {
	OriginalName string
	Kind         SymbolKind
}

// SymbolTable owns every Ref minted while transforming one source file.
type SymbolTable struct {
	symbols []Symbol
}

func (t *SymbolTable) New(kind SymbolKind, name string) Ref {
	ref := Ref{InnerIndex: uint32(len(t.symbols)), IsValid: true}
	t.symbols = append(t.symbols, Symbol{OriginalName: name, Kind: kind})
	return ref
}

func (t *SymbolTable) Get(ref Ref) *Symbol {
	return &t.symbols[ref.InnerIndex]
}

// NodeID is a small stable handle minted for every node that the transform
// may need to look up out-of-band, such as the "no substitution" side
// table (see Transformer.SuppressSubstitution) and the generated-name
// cache keyed on source nodes.
type NodeID uint32

// Flags holds the small set of static (non-transform) modifiers that the
// down-leveling rules consult: whether a class member is static, whether a
// variable was declared with "let"/"const", formatting hints preserved
// across synthesis, and whether a node was synthesized rather than parsed.
type Flags uint16

const (
	Static Flags = 1 << iota
	LetBinding
	ConstBinding
	MultiLine
	SingleLine
	Generated
	Computed
	Shorthand
	Async
	HasRestArg
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// TransformFlags is the bitset precomputed on every node that the
// dispatcher (see package lower) gates on. "ContainsX" bits are monotone:
// if any descendant sets a ContainsX bit, every ancestor up to the root
// has it set too. The bare "X" bit (without "Contains") means the node
// itself, not just some descendant, requires that particular lowering.
type TransformFlags uint32

const (
	// ES6 means this node itself is an ES6 construct requiring rewriting
	// (arrow function, class, for-of, template literal, binding pattern,
	// spread, computed/shorthand property, captured "this", and so on).
	ES6 TransformFlags = 1 << iota
	ContainsES6

	ContainsDefaultValueAssignments
	ContainsRestArgument
	ContainsCapturedLexicalThis
	ContainsSpreadElementExpression
	ContainsComputedPropertyName
	ContainsBlockScopedBinding
	ContainsBlockScopedBindingInLoop
	ContainsLexicalThis
)

func (f TransformFlags) Has(flag TransformFlags) bool { return f&flag != 0 }

// Node is the common metadata every Expr and Stmt carries alongside its
// kind-specific Data payload.
type Node struct {
	Loc            logger.Loc
	ID             NodeID
	Flags          Flags
	TransformFlags TransformFlags

	// OriginalLoc is non-zero when this node was synthesized to replace a
	// parsed node; it lets later pipeline stages (e.g. a source-map
	// emitter) attribute the synthetic output back to source. It is
	// never used to reason about ownership: the original node is not
	// mutated and is not part of the output tree.
	OriginalLoc logger.Loc
}

func (n Node) IsSynthesized() bool { return n.Loc.Start < 0 }

// ExprData is implemented by every concrete E* expression payload type.
type ExprData interface{ isExprData() }

// StmtData is implemented by every concrete S* statement payload type.
type StmtData interface{ isStmtData() }

type Expr struct {
	Node
	Data ExprData
}

type Stmt struct {
	Node
	Data StmtData
}

// NodeIsSynthesized reports whether loc belongs to a synthesized node:
// synthesized nodes carry no source range.
func NodeIsSynthesized(loc logger.Loc) bool { return loc.Start < 0 }

// SynthesizedLoc is used whenever a rewriter builds a node with no direct
// source counterpart (temporaries, helper calls, hoisted "var" statements).
var SynthesizedLoc = logger.Loc{Start: -1}
