package ast

// ComputeFlags precomputes NodeID and TransformFlags on every node of a
// freshly built tree. In the full pipeline this is folded into parsing;
// since parsing is out of scope for this module, the function returned
// by lower.CreateTransformation calls this once on each tree it is
// handed, before visiting it.
//
// The monotone "ContainsX" bits are computed bottom-up: a node's own flags
// start from whatever is intrinsically true about its kind (an arrow is
// always ES6; a "let" declaration is always ES6), then OR in every
// child's flags with "Contains" promoted onto the parent.
//
// ComputeFlags also returns thisOwner: a map from the NodeID of a bare
// "this" reference captured by an enclosing arrow to the NodeID of the
// nearest non-arrow function (or 0 for the top-level file) that owns
// the "_this" it must read through. ("super" never appears in this map:
// a derived class's "_super" local is already in scope for any nested
// arrow by ordinary closure, so it needs no capture bookkeeping of its
// own; see lower/misc.go.) This is a purely syntactic fact (no resolver
// query needed), but it isn't a TransformFlags bit on the reference
// node itself: that node is deliberately left untouched by lowering,
// and is instead something the emitter consults at emit time, so the
// lookup has to live somewhere the emitter can reach it instead.
func ComputeFlags(file *SourceFile) (thisOwner map[NodeID]NodeID) {
	idCounter := uint32(0)
	nextID := func() NodeID {
		idCounter++
		return NodeID(idCounter)
	}
	thisOwner = map[NodeID]NodeID{}

	var fe func(e Expr, insideArrow bool) (Expr, []NodeID)
	var fs func(s Stmt, insideArrow bool) (Stmt, []NodeID)

	promote := func(flags TransformFlags) TransformFlags {
		var contains TransformFlags
		if flags.Has(ES6) || flags.Has(ContainsES6) {
			contains |= ContainsES6
		}
		if flags.Has(ContainsDefaultValueAssignments) {
			contains |= ContainsDefaultValueAssignments
		}
		if flags.Has(ContainsRestArgument) {
			contains |= ContainsRestArgument
		}
		if flags.Has(ContainsSpreadElementExpression) {
			contains |= ContainsSpreadElementExpression
		}
		if flags.Has(ContainsComputedPropertyName) {
			contains |= ContainsComputedPropertyName
		}
		if flags.Has(ContainsBlockScopedBinding) {
			contains |= ContainsBlockScopedBinding
		}
		if flags.Has(ContainsBlockScopedBindingInLoop) {
			contains |= ContainsBlockScopedBindingInLoop
		}
		return contains
	}

	mergeChild := func(parent *TransformFlags, child TransformFlags) {
		*parent |= promote(child)
	}

	fe = func(e Expr, insideArrow bool) (Expr, []NodeID) {
		e.ID = nextID()
		var self TransformFlags
		var pending []NodeID

		switch d := e.Data.(type) {
		case *EThis:
			// A bare "this" doesn't get ES6/ContainsES6 set on itself (it
			// has no children to contain, and its own rewrite is a
			// substitution the not-yet-traversed-to printer applies, not a
			// tree rewrite lower.VisitExpr would ever reach). What matters
			// here is only the bookkeeping: if this reference sits inside
			// an arrow, record it as pending so the nearest enclosing
			// non-arrow function (or the top-level file) gets flagged as
			// needing a captured "_this" local.
			if insideArrow {
				pending = append(pending, e.ID)
			}
		case *ESuper:
			// Unlike "this", a bare "super" reference captured by a nested
			// arrow does not need a "_this"-style hoisted local (the
			// derived class's own "_super" binding is already reachable
			// from any nested function by closure, since it's declared in
			// the class IIFE's own scope). So ESuper never contributes to
			// "pending"/thisOwner; only ECall's IsSuperCall/super-method
			// shapes are lowered at all (misc.go), which rewriteExpr's
			// dispatcher reaches because the ECall is itself flagged ES6,
			// not because ESuper carries any flag of its own.

		case *EArray:
			for i, item := range d.Items {
				child, p := fe(item, insideArrow)
				d.Items[i] = child
				pending = append(pending, p...)
				mergeChild(&self, child.TransformFlags)
				if _, ok := child.Data.(*ESpread); ok {
					self |= ContainsSpreadElementExpression
				}
			}

		case *EObject:
			for i, p := range d.Properties {
				if p.Key.Data != nil {
					k, pk := fe(p.Key, insideArrow)
					p.Key = k
					pending = append(pending, pk...)
					mergeChild(&self, k.TransformFlags)
				}
				if p.ValueOrNil.Data != nil {
					v, pv := fe(p.ValueOrNil, insideArrow)
					p.ValueOrNil = v
					pending = append(pending, pv...)
					mergeChild(&self, v.TransformFlags)
				}
				if p.IsComputed {
					self |= ES6 | ContainsComputedPropertyName
				}
				if p.IsShorthand || p.Kind == PropertySpread || p.Kind == PropertyGet || p.Kind == PropertySet {
					self |= ES6
				}
				d.Properties[i] = p
			}

		case *EFunction:
			pending = flagFn(d.Fn, fe, fs, &self, e.ID, thisOwner)

		case *EArrow:
			self |= ES6
			pending = flagFnBody(d.Fn, fe, fs, &self, true, 0, thisOwner)

		case *EClass:
			self |= ES6
			pending = flagClass(d.Class, fe, fs, &self, insideArrow, nextID, thisOwner)

		case *ECall:
			t, pt := fe(d.Target, insideArrow)
			d.Target = t
			pending = append(pending, pt...)
			mergeChild(&self, t.TransformFlags)
			if d.IsSuperCall || isSuperMemberAccess(t) {
				self |= ES6
			}
			for i, a := range d.Args {
				child, pa := fe(a, insideArrow)
				d.Args[i] = child
				pending = append(pending, pa...)
				mergeChild(&self, child.TransformFlags)
				if _, ok := child.Data.(*ESpread); ok {
					self |= ES6 | ContainsSpreadElementExpression
				}
			}

		case *ENew:
			t, pt := fe(d.Target, insideArrow)
			d.Target = t
			pending = append(pending, pt...)
			mergeChild(&self, t.TransformFlags)
			for i, a := range d.Args {
				child, pa := fe(a, insideArrow)
				d.Args[i] = child
				pending = append(pending, pa...)
				mergeChild(&self, child.TransformFlags)
				if _, ok := child.Data.(*ESpread); ok {
					self |= ES6 | ContainsSpreadElementExpression
				}
			}

		case *EDot:
			t, pt := fe(d.Target, insideArrow)
			d.Target = t
			pending = append(pending, pt...)
			mergeChild(&self, t.TransformFlags)

		case *EIndex:
			t, pt := fe(d.Target, insideArrow)
			d.Target = t
			pending = append(pending, pt...)
			mergeChild(&self, t.TransformFlags)
			i2, pi := fe(d.Index, insideArrow)
			d.Index = i2
			pending = append(pending, pi...)
			mergeChild(&self, i2.TransformFlags)

		case *EBinary:
			l, pl := fe(d.Left, insideArrow)
			d.Left = l
			r, pr := fe(d.Right, insideArrow)
			d.Right = r
			pending = append(pending, pl...)
			pending = append(pending, pr...)
			mergeChild(&self, l.TransformFlags)
			mergeChild(&self, r.TransformFlags)

		case *EUnary:
			v, pv := fe(d.Value, insideArrow)
			d.Value = v
			pending = append(pending, pv...)
			mergeChild(&self, v.TransformFlags)

		case *EIf:
			test, p1 := fe(d.Test, insideArrow)
			yes, p2 := fe(d.Yes, insideArrow)
			no, p3 := fe(d.No, insideArrow)
			d.Test, d.Yes, d.No = test, yes, no
			pending = append(pending, p1...)
			pending = append(pending, p2...)
			pending = append(pending, p3...)
			mergeChild(&self, test.TransformFlags)
			mergeChild(&self, yes.TransformFlags)
			mergeChild(&self, no.TransformFlags)

		case *ESpread:
			v, pv := fe(d.Value, insideArrow)
			d.Value = v
			pending = append(pending, pv...)
			self |= ES6 | ContainsSpreadElementExpression
			mergeChild(&self, v.TransformFlags)

		case *ETemplate:
			self |= ES6
			for i, part := range d.Parts {
				v, pv := fe(part.Value, insideArrow)
				part.Value = v
				pending = append(pending, pv...)
				mergeChild(&self, v.TransformFlags)
				d.Parts[i] = part
			}
			if d.TagOrNil.Data != nil {
				tag, pt := fe(d.TagOrNil, insideArrow)
				d.TagOrNil = tag
				pending = append(pending, pt...)
				mergeChild(&self, tag.TransformFlags)
			}

		default:
			// Identifiers and literals: nothing to recurse into.
		}

		e.TransformFlags = self
		return e, pending
	}

	fs = func(s Stmt, insideArrow bool) (Stmt, []NodeID) {
		s.ID = nextID()
		var self TransformFlags
		var pending []NodeID

		switch d := s.Data.(type) {
		case *SExpr:
			v, pv := fe(d.Value, insideArrow)
			d.Value = v
			pending = append(pending, pv...)
			mergeChild(&self, v.TransformFlags)

		case *SReturn:
			if d.ValueOrNil.Data != nil {
				v, pv := fe(d.ValueOrNil, insideArrow)
				d.ValueOrNil = v
				pending = append(pending, pv...)
				mergeChild(&self, v.TransformFlags)
			}

		case *SThrow:
			v, pv := fe(d.Value, insideArrow)
			d.Value = v
			pending = append(pending, pv...)
			mergeChild(&self, v.TransformFlags)

		case *SBlock:
			for i, child := range d.Stmts {
				c, p := fs(child, insideArrow)
				d.Stmts[i] = c
				pending = append(pending, p...)
				mergeChild(&self, c.TransformFlags)
			}

		case *SIf:
			test, p1 := fe(d.Test, insideArrow)
			yes, p2 := fs(d.Yes, insideArrow)
			d.Test, d.Yes = test, yes
			pending = append(pending, p1...)
			pending = append(pending, p2...)
			mergeChild(&self, test.TransformFlags)
			mergeChild(&self, yes.TransformFlags)
			if d.NoOrNil.Data != nil {
				no, p3 := fs(d.NoOrNil, insideArrow)
				d.NoOrNil = no
				pending = append(pending, p3...)
				mergeChild(&self, no.TransformFlags)
			}

		case *SFor:
			if d.InitOrNil.Data != nil {
				init, p := fs(d.InitOrNil, insideArrow)
				d.InitOrNil = init
				pending = append(pending, p...)
				mergeChild(&self, init.TransformFlags)
			}
			if d.TestOrNil.Data != nil {
				test, p := fe(d.TestOrNil, insideArrow)
				d.TestOrNil = test
				pending = append(pending, p...)
				mergeChild(&self, test.TransformFlags)
			}
			if d.UpdateOrNil.Data != nil {
				upd, p := fe(d.UpdateOrNil, insideArrow)
				d.UpdateOrNil = upd
				pending = append(pending, p...)
				mergeChild(&self, upd.TransformFlags)
			}
			body, p := fs(d.Body, insideArrow)
			d.Body = body
			pending = append(pending, p...)
			mergeChild(&self, body.TransformFlags)

		case *SForOf:
			self |= ES6
			init, p1 := fs(d.Init, insideArrow)
			d.Init = init
			value, p2 := fe(d.Value, insideArrow)
			d.Value = value
			body, p3 := fs(d.Body, insideArrow)
			d.Body = body
			pending = append(pending, p1...)
			pending = append(pending, p2...)
			pending = append(pending, p3...)
			mergeChild(&self, init.TransformFlags)
			mergeChild(&self, value.TransformFlags)
			mergeChild(&self, body.TransformFlags)

		case *SLocal:
			if d.Kind != LocalVar {
				self |= ES6 | ContainsBlockScopedBinding
			}
			for i, decl := range d.Decls {
				if IsBindingPattern(decl.Binding) {
					self |= ES6
				}
				if decl.ValueOrNil.Data != nil {
					v, pv := fe(decl.ValueOrNil, insideArrow)
					decl.ValueOrNil = v
					pending = append(pending, pv...)
					mergeChild(&self, v.TransformFlags)
				}
				d.Decls[i] = decl
			}

		case *SFunction:
			pending = flagFn(d.Fn, fe, fs, &self, s.ID, thisOwner)

		case *SClass:
			self |= ES6
			pending = flagClass(d.Class, fe, fs, &self, insideArrow, nextID, thisOwner)

		case *SWhile:
			test, p1 := fe(d.Test, insideArrow)
			body, p2 := fs(d.Body, insideArrow)
			d.Test, d.Body = test, body
			pending = append(pending, p1...)
			pending = append(pending, p2...)
			mergeChild(&self, test.TransformFlags)
			mergeChild(&self, body.TransformFlags)

		case *SDoWhile:
			body, p1 := fs(d.Body, insideArrow)
			test, p2 := fe(d.Test, insideArrow)
			d.Body, d.Test = body, test
			pending = append(pending, p1...)
			pending = append(pending, p2...)
			mergeChild(&self, body.TransformFlags)
			mergeChild(&self, test.TransformFlags)

		case *STry:
			for i, child := range d.Body {
				c, p := fs(child, insideArrow)
				d.Body[i] = c
				pending = append(pending, p...)
				mergeChild(&self, c.TransformFlags)
			}
			if d.CatchOrNil != nil {
				for i, child := range d.CatchOrNil.Body {
					c, p := fs(child, insideArrow)
					d.CatchOrNil.Body[i] = c
					pending = append(pending, p...)
					mergeChild(&self, c.TransformFlags)
				}
			}
			for i, child := range d.FinallyOrNil {
				c, p := fs(child, insideArrow)
				d.FinallyOrNil[i] = c
				pending = append(pending, p...)
				mergeChild(&self, c.TransformFlags)
			}

		case *SSwitch:
			test, p := fe(d.Test, insideArrow)
			d.Test = test
			pending = append(pending, p...)
			mergeChild(&self, test.TransformFlags)
			for ci, c := range d.Cases {
				if c.TestOrNil.Data != nil {
					t, tp := fe(c.TestOrNil, insideArrow)
					c.TestOrNil = t
					pending = append(pending, tp...)
					mergeChild(&self, t.TransformFlags)
				}
				for i, child := range c.Body {
					cc, p := fs(child, insideArrow)
					c.Body[i] = cc
					pending = append(pending, p...)
					mergeChild(&self, cc.TransformFlags)
				}
				d.Cases[ci] = c
			}

		case *SLabel:
			inner, p := fs(d.Stmt, insideArrow)
			d.Stmt = inner
			pending = append(pending, p...)
			mergeChild(&self, inner.TransformFlags)

		default:
			// SEmpty, SDirective, SBreak, SContinue: nothing to recurse into.
		}

		s.TransformFlags = self
		return s, pending
	}

	for i, s := range file.Stmts {
		child, pending := fs(s, false)
		file.Stmts[i] = child
		for _, id := range pending {
			// A bare top-level "this" reference captured by a
			// nested arrow: the source file itself owns "_this" here and
			// emits the top-level capture, so the owner key is the
			// sentinel 0.
			thisOwner[id] = 0
			child.TransformFlags |= ContainsCapturedLexicalThis
		}
		file.Stmts[i] = child
	}

	return thisOwner
}

// flagFn computes flags for a non-arrow function-like node's body,
// absorbing any "this" capture bubbled up from nested arrows:
// every pending reference is assigned ownerID as its owner in
// thisOwner, and this node's own ContainsCapturedLexicalThis bit is set
// so function lowering knows to emit "var _this = this;".
func flagFn(fn *Fn, fe func(Expr, bool) (Expr, []NodeID), fs func(Stmt, bool) (Stmt, []NodeID), self *TransformFlags, ownerID NodeID, thisOwner map[NodeID]NodeID) []NodeID {
	return flagFnBody(fn, fe, fs, self, false, ownerID, thisOwner)
}

func flagFnBody(fn *Fn, fe func(Expr, bool) (Expr, []NodeID), fs func(Stmt, bool) (Stmt, []NodeID), self *TransformFlags, isArrow bool, ownerID NodeID, thisOwner map[NodeID]NodeID) []NodeID {
	var pending []NodeID

	for i, arg := range fn.Args {
		if IsBindingPattern(arg.Binding) {
			*self |= ES6
		}
		if arg.DefaultOrNil.Data != nil {
			v, p := fe(arg.DefaultOrNil, isArrow)
			arg.DefaultOrNil = v
			pending = append(pending, p...)
			*self |= ES6 | ContainsDefaultValueAssignments
			fn.Args[i] = arg
		}
	}
	if fn.HasRestArg {
		*self |= ES6 | ContainsRestArgument
	}

	for i, st := range fn.Body.Stmts {
		c, p := fs(st, isArrow)
		fn.Body.Stmts[i] = c
		pending = append(pending, p...)
		*self |= promoteStandalone(c.TransformFlags)
	}

	if len(pending) == 0 {
		return nil
	}
	if isArrow {
		// Transparent: an arrow never owns "this", so keep bubbling to
		// whichever non-arrow function or top-level scope encloses it.
		return pending
	}

	for _, id := range pending {
		thisOwner[id] = ownerID
	}
	*self |= ContainsCapturedLexicalThis
	return nil
}

// isSuperMemberAccess reports whether a call's (already-visited) target
// is "super.m" or "super[k]": these need the same rewrite as a bare
// "super(...)" call, just aimed at a method instead of the constructor.
func isSuperMemberAccess(target Expr) bool {
	switch d := target.Data.(type) {
	case *EDot:
		_, ok := d.Target.Data.(*ESuper)
		return ok
	case *EIndex:
		_, ok := d.Target.Data.(*ESuper)
		return ok
	default:
		return false
	}
}

func promoteStandalone(flags TransformFlags) TransformFlags {
	var contains TransformFlags
	if flags.Has(ES6) || flags.Has(ContainsES6) {
		contains |= ContainsES6
	}
	if flags.Has(ContainsDefaultValueAssignments) {
		contains |= ContainsDefaultValueAssignments
	}
	if flags.Has(ContainsRestArgument) {
		contains |= ContainsRestArgument
	}
	if flags.Has(ContainsSpreadElementExpression) {
		contains |= ContainsSpreadElementExpression
	}
	if flags.Has(ContainsComputedPropertyName) {
		contains |= ContainsComputedPropertyName
	}
	if flags.Has(ContainsBlockScopedBinding) {
		contains |= ContainsBlockScopedBinding
	}
	return contains
}

func flagClass(class *Class, fe func(Expr, bool) (Expr, []NodeID), fs func(Stmt, bool) (Stmt, []NodeID), self *TransformFlags, insideArrow bool, nextID func() NodeID, thisOwner map[NodeID]NodeID) []NodeID {
	var pending []NodeID
	if class.ExtendsOrNil.Data != nil {
		v, p := fe(class.ExtendsOrNil, insideArrow)
		class.ExtendsOrNil = v
		pending = append(pending, p...)
		*self |= promoteStandalone(v.TransformFlags)
	}
	for i, m := range class.Properties {
		m.ID = nextID()
		if m.IsComputed {
			*self |= ContainsComputedPropertyName
			k, pk := fe(m.Key, insideArrow)
			m.Key = k
			pending = append(pending, pk...)
		}
		if m.Fn != nil {
			var memberFlags TransformFlags
			flagFn(m.Fn, fe, fs, &memberFlags, m.ID, thisOwner)
			*self |= promoteStandalone(memberFlags)
		}
		class.Properties[i] = m
	}
	return pending
}
