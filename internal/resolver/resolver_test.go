package resolver_test

import (
	"testing"

	"github.com/tsdown/es6down/internal/ast"
	"github.com/tsdown/es6down/internal/resolver"
)

func TestStaticResolverCheckFlags(t *testing.T) {
	r := resolver.NewStaticResolver()
	r.SetCheckFlags(7, resolver.BlockScopedBindingInLoop|resolver.SuperInstance)

	flags := r.NodeCheckFlags(7)
	if !flags.Has(resolver.BlockScopedBindingInLoop) {
		t.Fatalf("expected BlockScopedBindingInLoop to be set")
	}
	if !flags.Has(resolver.SuperInstance) {
		t.Fatalf("expected SuperInstance to be set")
	}
	if r.NodeCheckFlags(99) != 0 {
		t.Fatalf("expected unrecorded node to report zero flags")
	}
}

func TestStaticResolverNestedRedeclaration(t *testing.T) {
	r := resolver.NewStaticResolver()
	renamed := ast.Ref{InnerIndex: 3, IsValid: true}
	r.SetNestedRedeclarationReference(12, renamed)
	r.MarkNestedRedeclaration(5, renamed)

	if ref, ok := r.ReferencedNestedRedeclaration(12); !ok || ref != renamed {
		t.Fatalf("expected reference 12 to resolve to %+v, got %+v (ok=%v)", renamed, ref, ok)
	}
	if _, ok := r.ReferencedNestedRedeclaration(13); ok {
		t.Fatalf("expected reference 13 to have no nested redeclaration")
	}
	if ref, ok := r.IsNestedRedeclaration(5); !ok || ref != renamed {
		t.Fatalf("expected declaration 5 to be marked as renamed to %+v, got %+v (ok=%v)", renamed, ref, ok)
	}
	if _, ok := r.IsNestedRedeclaration(6); ok {
		t.Fatalf("expected declaration 6 to not be marked")
	}
}
