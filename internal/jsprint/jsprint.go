// Package jsprint renders the closed subset of internal/ast node kinds
// the lowering passes in package lower can produce, as flat, single-line
// ES5 source text. It exists only so tests can assert a lowering
// result against a golden string instead of walking the tree node by
// node; it is not a real emitter and makes no attempt at readable
// formatting, source maps, or any construct a lowering pass doesn't
// itself produce (arrow functions, classes, template literals, spread,
// binding patterns, accessor properties all panic here, since their
// presence downstream of lowering means a lowering rule left ES6 syntax
// behind, not that this printer is incomplete).
//
// Grounded on evanw-esbuild/internal/js_printer/js_printer.go's printer
// struct and level-gated expression printing, scaled down to the one
// flat, unminified ES5 dialect this transform's tests need to assert
// against.
package jsprint

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/tsdown/es6down/internal/ast"
)

// SymbolName resolves a Ref to the name it should print as.
// transformer.Transformer.SymbolName and a bare ast.SymbolTable wrapped
// as `func(ref ast.Ref) string { return table.Get(ref).OriginalName }`
// both satisfy this.
type SymbolName func(ast.Ref) string

type printer struct {
	sb   strings.Builder
	name SymbolName
}

// Print renders a sequence of top-level statements as one line of
// semicolon/brace-delimited ES5 text, each statement separated by a
// single space.
func Print(stmts []ast.Stmt, name SymbolName) string {
	p := &printer{name: name}
	p.stmtList(stmts)
	return strings.TrimSpace(p.sb.String())
}

// PrintExpr renders a single expression in isolation, for tests that
// only care about one synthesized subexpression rather than a full
// statement.
func PrintExpr(e ast.Expr, name SymbolName) string {
	p := &printer{name: name}
	p.expr(e, ast.LLowest)
	return p.sb.String()
}

func (p *printer) w(s string) { p.sb.WriteString(s) }

func (p *printer) stmtList(stmts []ast.Stmt) {
	for i, s := range stmts {
		if i > 0 {
			p.w(" ")
		}
		p.stmt(s)
	}
}

func localKeyword(kind ast.LocalKind) string {
	switch kind {
	case ast.LocalVar:
		return "var"
	case ast.LocalLet:
		return "let"
	case ast.LocalConst:
		return "const"
	default:
		panic("jsprint: unrecognized local kind")
	}
}

func (p *printer) forClause(init ast.Stmt) {
	switch d := init.Data.(type) {
	case *ast.SLocal:
		p.w(localKeyword(d.Kind) + " ")
		p.declList(d.Decls)
	case *ast.SExpr:
		p.expr(d.Value, ast.LLowest)
	default:
		panic(fmt.Sprintf("jsprint: unsupported for-init kind %T", d))
	}
}

func (p *printer) declList(decls []ast.Decl) {
	for i, decl := range decls {
		if i > 0 {
			p.w(", ")
		}
		p.binding(decl.Binding)
		if decl.ValueOrNil.Data != nil {
			p.w(" = ")
			p.expr(decl.ValueOrNil, ast.LAssign)
		}
	}
}

func (p *printer) binding(b ast.Binding) {
	switch d := b.Data.(type) {
	case *ast.BIdentifier:
		p.w(p.name(d.Ref))
	case *ast.BMissing:
		// Elided array-pattern slot: nothing prints between its commas.
	case *ast.BArray, *ast.BObject:
		panic("jsprint: binding patterns are never lowering output; found one reaching the printer")
	default:
		panic(fmt.Sprintf("jsprint: unsupported binding kind %T", d))
	}
}

func (p *printer) fnRest(fn *ast.Fn) {
	p.w("(")
	for i, arg := range fn.Args {
		if i > 0 {
			p.w(", ")
		}
		p.binding(arg.Binding)
		if arg.DefaultOrNil.Data != nil {
			p.w(" = ")
			p.expr(arg.DefaultOrNil, ast.LAssign)
		}
	}
	p.w(") { ")
	p.stmtList(fn.Body.Stmts)
	p.w(" }")
}

func (p *printer) stmt(s ast.Stmt) {
	switch d := s.Data.(type) {
	case *ast.SExpr:
		p.expr(d.Value, ast.LLowest)
		p.w(";")
	case *ast.SReturn:
		p.w("return")
		if d.ValueOrNil.Data != nil {
			p.w(" ")
			p.expr(d.ValueOrNil, ast.LLowest)
		}
		p.w(";")
	case *ast.SBlock:
		p.w("{ ")
		p.stmtList(d.Stmts)
		p.w(" }")
	case *ast.SIf:
		p.w("if (")
		p.expr(d.Test, ast.LLowest)
		p.w(") ")
		p.stmt(ast.AsBlock(d.Yes))
		if d.NoOrNil.Data != nil {
			p.w(" else ")
			p.stmt(ast.AsBlock(d.NoOrNil))
		}
	case *ast.SFor:
		p.w("for (")
		if d.InitOrNil.Data != nil {
			p.forClause(d.InitOrNil)
		}
		p.w("; ")
		if d.TestOrNil.Data != nil {
			p.expr(d.TestOrNil, ast.LLowest)
		}
		p.w("; ")
		if d.UpdateOrNil.Data != nil {
			p.expr(d.UpdateOrNil, ast.LLowest)
		}
		p.w(") ")
		p.stmt(ast.AsBlock(d.Body))
	case *ast.SForOf:
		p.w("for (")
		p.forClause(d.Init)
		p.w(" of ")
		p.expr(d.Value, ast.LLowest)
		p.w(") ")
		p.stmt(ast.AsBlock(d.Body))
	case *ast.SLocal:
		p.w(localKeyword(d.Kind) + " ")
		p.declList(d.Decls)
		p.w(";")
	case *ast.SFunction:
		p.w("function " + p.name(d.NameRef))
		p.fnRest(d.Fn)
	case *ast.SClass:
		panic("jsprint: class statements are never lowering output; found one reaching the printer")
	case *ast.SEmpty:
		p.w(";")
	case *ast.SDirective:
		fmt.Fprintf(&p.sb, "%q;", d.Value)
	case *ast.SThrow:
		p.w("throw ")
		p.expr(d.Value, ast.LLowest)
		p.w(";")
	case *ast.SWhile:
		p.w("while (")
		p.expr(d.Test, ast.LLowest)
		p.w(") ")
		p.stmt(ast.AsBlock(d.Body))
	case *ast.SDoWhile:
		p.w("do ")
		p.stmt(ast.AsBlock(d.Body))
		p.w(" while (")
		p.expr(d.Test, ast.LLowest)
		p.w(");")
	case *ast.STry:
		p.w("try { ")
		p.stmtList(d.Body)
		p.w(" }")
		if d.CatchOrNil != nil {
			p.w(" catch (")
			if d.CatchOrNil.BindingOrNil != nil {
				p.binding(*d.CatchOrNil.BindingOrNil)
			}
			p.w(") { ")
			p.stmtList(d.CatchOrNil.Body)
			p.w(" }")
		}
		if d.FinallyOrNil != nil {
			p.w(" finally { ")
			p.stmtList(d.FinallyOrNil)
			p.w(" }")
		}
	case *ast.SSwitch:
		p.w("switch (")
		p.expr(d.Test, ast.LLowest)
		p.w(") { ")
		for i, c := range d.Cases {
			if i > 0 {
				p.w(" ")
			}
			if c.TestOrNil.Data != nil {
				p.w("case ")
				p.expr(c.TestOrNil, ast.LLowest)
				p.w(": ")
			} else {
				p.w("default: ")
			}
			p.stmtList(c.Body)
		}
		p.w(" }")
	case *ast.SLabel:
		p.w(d.Name + ": ")
		p.stmt(d.Stmt)
	case *ast.SBreak:
		p.w("break")
		if d.LabelOrNil != "" {
			p.w(" " + d.LabelOrNil)
		}
		p.w(";")
	case *ast.SContinue:
		p.w("continue")
		if d.LabelOrNil != "" {
			p.w(" " + d.LabelOrNil)
		}
		p.w(";")
	default:
		panic(fmt.Sprintf("jsprint: unsupported statement kind %T", d))
	}
}

// atLevel wraps body in parentheses when the surrounding context
// (level) demands strictly higher precedence than what this production
// (own) guarantees.
func (p *printer) atLevel(level, own ast.L, body func()) {
	if level > own {
		p.w("(")
		body()
		p.w(")")
		return
	}
	body()
}

func (p *printer) expr(e ast.Expr, level ast.L) {
	switch d := e.Data.(type) {
	case *ast.EIdentifier:
		p.w(p.name(d.Ref))
	case *ast.ENumber:
		p.w(formatNumber(d.Value))
	case *ast.EString:
		fmt.Fprintf(&p.sb, "%q", d.Value)
	case *ast.EBoolean:
		p.w(strconv.FormatBool(d.Value))
	case *ast.ENull:
		p.w("null")
	case *ast.EUndefined:
		p.w("void 0")
	case *ast.EThis:
		p.w("this")
	case *ast.ESuper:
		p.w("super")
	case *ast.ERegExp:
		p.w(d.Value)
	case *ast.EMissing:
		// Elided array-literal slot: nothing prints between its commas.
	case *ast.EArray:
		p.w("[")
		for i, item := range d.Items {
			if i > 0 {
				p.w(", ")
			}
			p.expr(item, ast.LComma+1)
		}
		p.w("]")
	case *ast.EObject:
		p.w("{")
		for i, prop := range d.Properties {
			if i > 0 {
				p.w(", ")
			}
			p.property(prop)
		}
		p.w("}")
	case *ast.EFunction:
		p.w("function")
		if d.Fn.HasName {
			p.w(" " + p.name(d.Fn.Name))
		}
		p.fnRest(d.Fn)
	case *ast.EArrow:
		panic("jsprint: arrow functions are never lowering output; found one reaching the printer")
	case *ast.EClass:
		panic("jsprint: class expressions are never lowering output; found one reaching the printer")
	case *ast.ECall:
		p.atLevel(level, ast.LCall, func() {
			p.expr(d.Target, ast.LCall)
			p.w("(")
			p.argList(d.Args)
			p.w(")")
		})
	case *ast.ENew:
		p.atLevel(level, ast.LNew, func() {
			p.w("new ")
			p.expr(d.Target, ast.LMember)
			p.w("(")
			p.argList(d.Args)
			p.w(")")
		})
	case *ast.EDot:
		p.expr(d.Target, ast.LMember)
		p.w("." + d.Name)
	case *ast.EIndex:
		p.expr(d.Target, ast.LMember)
		p.w("[")
		p.expr(d.Index, ast.LLowest)
		p.w("]")
	case *ast.EBinary:
		p.binaryExpr(d, level)
	case *ast.EUnary:
		p.unaryExpr(d, level)
	case *ast.EIf:
		p.atLevel(level, ast.LConditional, func() {
			p.expr(d.Test, ast.LLogicalOr)
			p.w(" ? ")
			p.expr(d.Yes, ast.LAssign)
			p.w(" : ")
			p.expr(d.No, ast.LAssign)
		})
	case *ast.ESpread:
		panic("jsprint: spread elements are never lowering output; found one reaching the printer")
	case *ast.ETemplate:
		panic("jsprint: template literals are never lowering output; found one reaching the printer")
	default:
		panic(fmt.Sprintf("jsprint: unsupported expression kind %T", d))
	}
}

func (p *printer) argList(args []ast.Expr) {
	for i, arg := range args {
		if i > 0 {
			p.w(", ")
		}
		p.expr(arg, ast.LComma+1)
	}
}

func (p *printer) binaryExpr(d *ast.EBinary, level ast.L) {
	own := d.Op.Level()
	leftLevel, rightLevel := own, own+1
	if d.Op == ast.BinOpAssign {
		leftLevel, rightLevel = own+1, own
	}
	p.atLevel(level, own, func() {
		p.expr(d.Left, leftLevel)
		if d.Op == ast.BinOpComma {
			p.w(", ")
		} else {
			p.w(" " + d.Op.Text() + " ")
		}
		p.expr(d.Right, rightLevel)
	})
}

func unaryOpText(op ast.UnOpCode) string {
	switch op {
	case ast.UnOpVoid:
		return "void "
	case ast.UnOpTypeof:
		return "typeof "
	case ast.UnOpDelete:
		return "delete "
	case ast.UnOpNeg:
		return "-"
	case ast.UnOpPos:
		return "+"
	case ast.UnOpNot:
		return "!"
	case ast.UnOpCpl:
		return "~"
	case ast.UnOpPreInc, ast.UnOpPostInc:
		return "++"
	case ast.UnOpPreDec, ast.UnOpPostDec:
		return "--"
	default:
		panic("jsprint: unrecognized unary operator")
	}
}

func (p *printer) unaryExpr(d *ast.EUnary, level ast.L) {
	own := ast.LPrefix
	if !d.Op.IsPrefix() {
		own = ast.LPostfix
	}
	p.atLevel(level, own, func() {
		if d.Op.IsPrefix() {
			p.w(unaryOpText(d.Op))
			p.expr(d.Value, ast.LPrefix)
		} else {
			p.expr(d.Value, ast.LPostfix)
			p.w(unaryOpText(d.Op))
		}
	})
}

func (p *printer) property(prop ast.Property) {
	switch prop.Kind {
	case ast.PropertySpread:
		panic("jsprint: object spread is never lowering output; found one reaching the printer")
	case ast.PropertyGet, ast.PropertySet:
		panic("jsprint: accessor properties are never lowering output; found one reaching the printer")
	}
	p.propertyKey(prop)
	p.w(": ")
	p.expr(prop.ValueOrNil, ast.LAssign)
}

func (p *printer) propertyKey(prop ast.Property) {
	if prop.IsComputed {
		p.w("[")
		p.expr(prop.Key, ast.LLowest)
		p.w("]")
		return
	}
	if s, ok := prop.Key.Data.(*ast.EString); ok {
		if isValidIdentifierName(s.Value) {
			p.w(s.Value)
			return
		}
		fmt.Fprintf(&p.sb, "%q", s.Value)
		return
	}
	p.expr(prop.Key, ast.LLowest)
}

func isValidIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if r != '_' && r != '$' && !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func formatNumber(v float64) string {
	if !math.IsInf(v, 0) && v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
