package lower

import "github.com/tsdown/es6down/internal/ast"

// acceptExpr is the generic copy-visitor: reconstruct a node whose own
// ES6 bit is clear but whose ContainsES6 bit is set, visiting each
// child in turn. Nodes with neither bit never reach here (VisitExpr
// returns them unchanged first).
func (l *Lowerer) acceptExpr(e ast.Expr) ast.Expr {
	switch d := e.Data.(type) {
	case *ast.EArray:
		items := make([]ast.Expr, len(d.Items))
		for i, item := range d.Items {
			items[i] = l.VisitExpr(item)
		}
		e.Data = &ast.EArray{Items: items, IsSingleLine: d.IsSingleLine}

	case *ast.EObject:
		props := make([]ast.Property, len(d.Properties))
		for i, p := range d.Properties {
			if p.Key.Data != nil {
				p.Key = l.VisitExpr(p.Key)
			}
			if p.ValueOrNil.Data != nil {
				p.ValueOrNil = l.VisitExpr(p.ValueOrNil)
			}
			props[i] = p
		}
		e.Data = &ast.EObject{Properties: props, IsSingleLine: d.IsSingleLine}

	case *ast.ECall:
		target := l.VisitExpr(d.Target)
		args := make([]ast.Expr, len(d.Args))
		for i, a := range d.Args {
			args[i] = l.VisitExpr(a)
		}
		e.Data = &ast.ECall{Target: target, Args: args, IsSuperCall: d.IsSuperCall}

	case *ast.ENew:
		target := l.VisitExpr(d.Target)
		args := make([]ast.Expr, len(d.Args))
		for i, a := range d.Args {
			args[i] = l.VisitExpr(a)
		}
		e.Data = &ast.ENew{Target: target, Args: args}

	case *ast.EDot:
		e.Data = &ast.EDot{Target: l.VisitExpr(d.Target), Name: d.Name}

	case *ast.EIndex:
		e.Data = &ast.EIndex{Target: l.VisitExpr(d.Target), Index: l.VisitExpr(d.Index)}

	case *ast.EBinary:
		e.Data = &ast.EBinary{Op: d.Op, Left: l.VisitExpr(d.Left), Right: l.VisitExpr(d.Right)}

	case *ast.EUnary:
		e.Data = &ast.EUnary{Op: d.Op, Value: l.VisitExpr(d.Value)}

	case *ast.EIf:
		e.Data = &ast.EIf{Test: l.VisitExpr(d.Test), Yes: l.VisitExpr(d.Yes), No: l.VisitExpr(d.No)}

	case *ast.EFunction:
		// A function expression that merely contains ES6 syntax (e.g. a
		// nested arrow) rather than being ES6 itself still needs its own
		// captured-"this" bookkeeping checked: that applies to any
		// function-like node, not only ones with their own
		// default/rest/pattern parameters.
		return l.lowerFunctionExpr(e, d)

	case *ast.EArrow:
		return l.lowerArrow(e, d)

	case *ast.EClass:
		return l.lowerClassExpr(e, d)

	case *ast.ESpread:
		e.Data = &ast.ESpread{Value: l.VisitExpr(d.Value)}

	case *ast.ETemplate:
		parts := make([]ast.TemplatePart, len(d.Parts))
		for i, part := range d.Parts {
			part.Value = l.VisitExpr(part.Value)
			parts[i] = part
		}
		tag := d.TagOrNil
		if tag.Data != nil {
			tag = l.VisitExpr(tag)
		}
		e.Data = &ast.ETemplate{HeadCooked: d.HeadCooked, HeadRaw: d.HeadRaw, Parts: parts, TagOrNil: tag}

	default:
		// Leaf kinds (identifiers, literals) never carry ContainsES6.
	}
	return e
}

// acceptStmt is acceptExpr's statement-side counterpart.
func (l *Lowerer) acceptStmt(s ast.Stmt) ast.Stmt {
	switch d := s.Data.(type) {
	case *ast.SExpr:
		s.Data = &ast.SExpr{Value: l.VisitExpr(d.Value)}

	case *ast.SReturn:
		v := d.ValueOrNil
		if v.Data != nil {
			v = l.VisitExpr(v)
		}
		s.Data = &ast.SReturn{ValueOrNil: v}

	case *ast.SThrow:
		s.Data = &ast.SThrow{Value: l.VisitExpr(d.Value)}

	case *ast.SBlock:
		s.Data = &ast.SBlock{Stmts: l.visitStmts(d.Stmts)}

	case *ast.SIf:
		yes := l.VisitStmt(d.Yes)
		no := d.NoOrNil
		if no.Data != nil {
			no = l.VisitStmt(no)
		}
		s.Data = &ast.SIf{Test: l.VisitExpr(d.Test), Yes: yes, NoOrNil: no}

	case *ast.SFor:
		init := d.InitOrNil
		if init.Data != nil {
			init = l.VisitStmt(init)
		}
		test := d.TestOrNil
		if test.Data != nil {
			test = l.VisitExpr(test)
		}
		update := d.UpdateOrNil
		if update.Data != nil {
			update = l.VisitExpr(update)
		}
		s.Data = &ast.SFor{InitOrNil: init, TestOrNil: test, UpdateOrNil: update, Body: l.VisitStmt(d.Body)}

	case *ast.SForOf:
		return l.lowerForOf(s, d)

	case *ast.SLocal:
		// Reached only when this "var" declaration isn't itself ES6 (not
		// a "let"/"const", no binding-pattern target) but a declaration
		// value contains ES6 syntax, e.g. "var x = () => 1" — still
		// needs loop-variable renaming consulted, so route through the
		// same rule rather than hand-rolling a second decl-value visitor
		// here.
		return l.lowerLocal(s, d)

	case *ast.SFunction:
		return l.lowerFunctionDecl(s, d)

	case *ast.SClass:
		return l.lowerClassDecl(s, d)

	case *ast.SWhile:
		s.Data = &ast.SWhile{Test: l.VisitExpr(d.Test), Body: l.VisitStmt(d.Body)}

	case *ast.SDoWhile:
		s.Data = &ast.SDoWhile{Body: l.VisitStmt(d.Body), Test: l.VisitExpr(d.Test)}

	case *ast.STry:
		body := l.visitStmts(d.Body)
		var c *ast.Catch
		if d.CatchOrNil != nil {
			c = &ast.Catch{BindingOrNil: d.CatchOrNil.BindingOrNil, Body: l.visitStmts(d.CatchOrNil.Body)}
		}
		s.Data = &ast.STry{Body: body, CatchOrNil: c, FinallyOrNil: l.visitStmts(d.FinallyOrNil)}

	case *ast.SSwitch:
		cases := make([]ast.Case, len(d.Cases))
		for i, c := range d.Cases {
			if c.TestOrNil.Data != nil {
				c.TestOrNil = l.VisitExpr(c.TestOrNil)
			}
			c.Body = l.visitStmts(c.Body)
			cases[i] = c
		}
		s.Data = &ast.SSwitch{Test: l.VisitExpr(d.Test), Cases: cases}

	case *ast.SLabel:
		s.Data = &ast.SLabel{Name: d.Name, Stmt: l.VisitStmt(d.Stmt)}

	default:
		// SEmpty, SDirective, SBreak, SContinue carry no children.
	}
	return s
}
