package ast

// This file collects small synthetic-node constructors, mirroring the
// teacher's js_ast_helpers.go: building a fresh Expr or Stmt by hand at
// every call site would bury every lowering rule in Node{} boilerplate.
// Every constructor here produces a node marked Generated, consistent
// with NodeIsSynthesized, at SynthesizedLoc unless it takes a loc
// argument (IdentAt).

func synthNode() Node {
	return Node{Loc: SynthesizedLoc, Flags: Generated}
}

func Ident(ref Ref) Expr {
	return Expr{Node: synthNode(), Data: &EIdentifier{Ref: ref}}
}

func IdentAt(loc Loc, ref Ref) Expr {
	n := synthNode()
	n.Loc = loc
	return Expr{Node: n, Data: &EIdentifier{Ref: ref}}
}

func Str(value string) Expr {
	return Expr{Node: synthNode(), Data: &EString{Value: value}}
}

func Num(value float64) Expr {
	return Expr{Node: synthNode(), Data: &ENumber{Value: value}}
}

func Bool(value bool) Expr {
	return Expr{Node: synthNode(), Data: &EBoolean{Value: value}}
}

func Null() Expr {
	return Expr{Node: synthNode(), Data: &ENull{}}
}

func Undefined() Expr {
	return Expr{Node: synthNode(), Data: &EUndefined{}}
}

func This() Expr {
	return Expr{Node: synthNode(), Data: &EThis{}}
}

func Dot(target Expr, name string) Expr {
	return Expr{Node: synthNode(), Data: &EDot{Target: target, Name: name}}
}

func Index(target Expr, index Expr) Expr {
	return Expr{Node: synthNode(), Data: &EIndex{Target: target, Index: index}}
}

func Call(target Expr, args ...Expr) Expr {
	return Expr{Node: synthNode(), Data: &ECall{Target: target, Args: args}}
}

func CallSlice(target Expr, args []Expr) Expr {
	return Expr{Node: synthNode(), Data: &ECall{Target: target, Args: args}}
}

func New(target Expr, args ...Expr) Expr {
	return Expr{Node: synthNode(), Data: &ENew{Target: target, Args: args}}
}

func Array(items ...Expr) Expr {
	return Expr{Node: synthNode(), Data: &EArray{Items: items, IsSingleLine: true}}
}

func ArraySlice(items []Expr) Expr {
	return Expr{Node: synthNode(), Data: &EArray{Items: items, IsSingleLine: true}}
}

func Binary(op OpCode, left Expr, right Expr) Expr {
	return Expr{Node: synthNode(), Data: &EBinary{Op: op, Left: left, Right: right}}
}

func Assign(target Expr, value Expr) Expr {
	return Binary(BinOpAssign, target, value)
}

func AssignStmt(target Expr, value Expr) Stmt {
	return SExprStmt(Assign(target, value))
}

func StrictEquals(left Expr, right Expr) Expr {
	return Binary(BinOpStrictEq, left, right)
}

// JoinWithComma builds a comma expression "a, b". Computed property
// lowering ends in exactly this shape.
func JoinWithComma(a Expr, b Expr) Expr {
	return Binary(BinOpComma, a, b)
}

// JoinAllWithComma folds a non-empty slice of expressions into one
// left-associative comma expression.
func JoinAllWithComma(all []Expr) Expr {
	if len(all) == 0 {
		return Undefined()
	}
	result := all[0]
	for _, e := range all[1:] {
		result = JoinWithComma(result, e)
	}
	return result
}

func SExprStmt(value Expr) Stmt {
	return Stmt{Node: synthNode(), Data: &SExpr{Value: value}}
}

func Return(value Expr) Stmt {
	return Stmt{Node: synthNode(), Data: &SReturn{ValueOrNil: value}}
}

func ReturnVoid() Stmt {
	return Stmt{Node: synthNode(), Data: &SReturn{}}
}

func Block(stmts []Stmt) Stmt {
	return Stmt{Node: synthNode(), Data: &SBlock{Stmts: stmts}}
}

func AsBlock(s Stmt) Stmt {
	if _, ok := s.Data.(*SBlock); ok {
		return s
	}
	return Block([]Stmt{s})
}

func VarDecl(kind LocalKind, ref Ref, value Expr) Stmt {
	decl := Decl{Binding: Binding{Loc: SynthesizedLoc, Data: &BIdentifier{Ref: ref}}, ValueOrNil: value}
	return Stmt{Node: synthNode(), Data: &SLocal{Kind: kind, Decls: []Decl{decl}}}
}

func VarDecls(kind LocalKind, decls []Decl) Stmt {
	return Stmt{Node: synthNode(), Data: &SLocal{Kind: kind, Decls: decls}}
}

// ConvertBindingToExpr turns a binding pattern into the equivalent
// assignment-target expression: "{a, b: [c]}" the pattern becomes
// "{a, b: [c]}" the object/array literal, with wrapIdentifier (if given)
// controlling how leaf identifiers are rendered (used when a leaf needs to
// read through the substitution hooks instead of a bare EIdentifier).
func ConvertBindingToExpr(binding Binding, wrapIdentifier func(Ref) Expr) Expr {
	switch b := binding.Data.(type) {
	case *BMissing:
		return Expr{Node: synthNode(), Data: &EMissing{}}

	case *BIdentifier:
		if wrapIdentifier != nil {
			return wrapIdentifier(b.Ref)
		}
		return IdentAt(binding.Loc, b.Ref)

	case *BArray:
		items := make([]Expr, len(b.Items))
		for i, item := range b.Items {
			expr := ConvertBindingToExpr(item.Binding, wrapIdentifier)
			if item.IsSpread {
				expr = Expr{Node: synthNode(), Data: &ESpread{Value: expr}}
			} else if item.DefaultOrNil.Data != nil {
				expr = Assign(expr, item.DefaultOrNil)
			}
			items[i] = expr
		}
		return Expr{Node: synthNode(), Data: &EArray{Items: items, IsSingleLine: true}}

	case *BObject:
		props := make([]Property, len(b.Properties))
		for i, p := range b.Properties {
			value := ConvertBindingToExpr(p.Value, wrapIdentifier)
			if p.DefaultOrNil.Data != nil {
				value = Assign(value, p.DefaultOrNil)
			}
			kind := PropertyNormal
			if p.IsSpread {
				kind = PropertySpread
			}
			props[i] = Property{Key: p.Key, ValueOrNil: value, Kind: kind, IsComputed: p.IsComputed}
		}
		return Expr{Node: synthNode(), Data: &EObject{Properties: props, IsSingleLine: true}}

	default:
		panic("unreachable binding kind")
	}
}

// EMissing represents an elided array-literal slot ("[a, , b]"), the
// expression-side counterpart of BMissing.
type EMissing struct{}

func (*EMissing) isExprData() {}
