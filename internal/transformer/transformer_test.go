package transformer_test

import (
	"testing"

	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/compat"
	"github.com/tsdown/es6down/internal/config"
	"github.com/tsdown/es6down/internal/logger"
	"github.com/tsdown/es6down/internal/resolver"
	"github.com/tsdown/es6down/internal/transformer"
)

func newTransformer() *transformer.Transformer {
	opts := config.NewOptions(compat.ES5)
	log := logger.NewDeferLog()
	return transformer.New(&opts, resolver.NewStaticResolver(), &log)
}

func TestCreateTempVariableUnique(t *testing.T) {
	tr := newTransformer()
	tr.StartLexicalEnvironment()
	a := tr.CreateTempVariable(transformer.TempFlagAuto)
	b := tr.CreateTempVariable(transformer.TempFlagAuto)
	if a == b {
		t.Fatalf("expected distinct temps, got %+v twice", a)
	}
	if tr.SymbolName(a) == tr.SymbolName(b) {
		t.Fatalf("expected distinct names, both %q", tr.SymbolName(a))
	}
	stmts := tr.EndLexicalEnvironment(nil)
	if len(stmts) != 1 {
		t.Fatalf("expected one hoisted var statement, got %d", len(stmts))
	}
	local, ok := stmts[0].Data.(*ast.SLocal)
	if !ok || len(local.Decls) != 2 {
		t.Fatalf("expected a single var statement declaring both temps, got %#v", stmts[0].Data)
	}
}

func TestGetGeneratedNameForNodeStable(t *testing.T) {
	tr := newTransformer()
	first := tr.GetGeneratedNameForNode(42, "super")
	second := tr.GetGeneratedNameForNode(42, "super")
	if first != second {
		t.Fatalf("expected the same node id to return the same generated ref")
	}
	if tr.SymbolName(first) != "_super" {
		t.Fatalf("expected generated name %q, got %q", "_super", tr.SymbolName(first))
	}
}

func TestReservedNameAvoidsCollision(t *testing.T) {
	tr := newTransformer()
	tr.Reserve("_a")
	tr.StartLexicalEnvironment()
	ref := tr.CreateTempVariable(transformer.TempFlagAuto)
	if tr.SymbolName(ref) == "_a" {
		t.Fatalf("expected allocator to skip the reserved name _a")
	}
}

func TestSubstitutionHooksChain(t *testing.T) {
	tr := newTransformer()
	tr.SetExpressionSubstitution(func(id ast.NodeID) (ast.Expr, bool) {
		if id == 1 {
			return ast.Str("first"), true
		}
		return ast.Expr{}, false
	})
	tr.SetExpressionSubstitution(func(id ast.NodeID) (ast.Expr, bool) {
		if id == 2 {
			return ast.Str("second"), true
		}
		return ast.Expr{}, false
	})

	fallback := ast.Ident(ast.Ref{InnerIndex: 0, IsValid: true})
	if e := tr.SubstituteExpression(1, fallback); e.Data.(*ast.EString).Value != "first" {
		t.Fatalf("expected chained hook to still resolve the earlier installed hook's match")
	}
	if e := tr.SubstituteExpression(2, fallback); e.Data.(*ast.EString).Value != "second" {
		t.Fatalf("expected the later installed hook to take priority")
	}
	if e := tr.SubstituteExpression(3, fallback); e.Data != fallback.Data {
		t.Fatalf("expected unmatched id to fall through to fallback")
	}
}

func TestSuppressSubstitution(t *testing.T) {
	tr := newTransformer()
	tr.SetBindingIdentifierSubstitution(func(id ast.NodeID) (ast.Expr, bool) {
		return ast.Str("renamed"), true
	})
	tr.SuppressSubstitution(5)
	fallback := ast.Str("original")
	if e := tr.SubstituteBindingIdentifier(5, fallback); e.Data.(*ast.EString).Value != "original" {
		t.Fatalf("expected suppressed node to keep its fallback")
	}
	if e := tr.SubstituteBindingIdentifier(6, fallback); e.Data.(*ast.EString).Value != "renamed" {
		t.Fatalf("expected non-suppressed node to use the hook's replacement")
	}
}

func TestCaptureThisMemoizedPerOwner(t *testing.T) {
	tr := newTransformer()
	a := tr.CaptureThis(7)
	b := tr.CaptureThis(7)
	if a != b {
		t.Fatalf("expected the same owner to get back the same _this ref, got %+v and %+v", a, b)
	}
	c := tr.CaptureThis(0)
	if c == a {
		t.Fatalf("expected distinct owners to get distinct _this refs")
	}
	if tr.SymbolName(a) != "_this" {
		t.Fatalf("expected generated name %q, got %q", "_this", tr.SymbolName(a))
	}
	if _, ok := tr.ThisCaptured(7); !ok {
		t.Fatalf("expected ThisCaptured to report owner 7 as already captured")
	}
	if _, ok := tr.ThisCaptured(99); ok {
		t.Fatalf("expected ThisCaptured to report false for an owner never asked for a capture")
	}
}

func TestFindAncestorNode(t *testing.T) {
	tr := newTransformer()
	type marker struct{ name string }
	tr.PushNode(&marker{"outer"})
	tr.PushNode(&marker{"inner"})
	found := tr.FindAncestorNode(func(n interface{}) bool {
		m, ok := n.(*marker)
		return ok && m.name == "outer"
	})
	if found == nil || found.(*marker).name != "outer" {
		t.Fatalf("expected to find the outer marker, got %#v", found)
	}
	tr.PopNode()
	tr.PopNode()
}
