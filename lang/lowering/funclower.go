package lowering

import (
	"fmt"

	"github.com/jlang-gyoji/gyoji/lang/cst"
	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/literal"
	"github.com/jlang-gyoji/gyoji/lang/mir"
	"github.com/jlang-gyoji/gyoji/lang/namespace"
	"github.com/jlang-gyoji/gyoji/lang/scopetracker"
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
)

// localVar is one name bound by a LetStmt or parameter within the
// function currently being lowered: its MIR-visible storage name (made
// unique per shadowing instance, since MIR has no nested scopes of its
// own) and resolved type.
type localVar struct {
	mirName string
	typ     *typegraph.Type
}

// loopTargets is the continue/break pair for one enclosing while/for,
// per spec §4.5 "break/continue stack".
type loopTargets struct {
	continueTarget mir.BlockID
	breakTarget    mir.BlockID
}

// FuncLowerer lowers one function body (CST statements) to MIR basic
// blocks, per spec §4.5. A fresh FuncLowerer is used per function.
type FuncLowerer struct {
	Graph *typegraph.Graph
	NS    *namespace.NamespaceContext
	Diags *diag.Diagnostics

	fn      *mir.Function
	tracker *scopetracker.ScopeTracker

	block *mir.BasicBlock

	scopes      []map[string]localVar // innermost last; shadows by name within a function
	shadowCount map[string]int
	loops       []loopTargets

	labels map[string]*mir.BasicBlock
}

// NewFuncLowerer returns a lowerer for one function, writing into graph
// and ns (already populated by type lowering) and reporting to diags.
func NewFuncLowerer(graph *typegraph.Graph, ns *namespace.NamespaceContext, diags *diag.Diagnostics) *FuncLowerer {
	return &FuncLowerer{Graph: graph, NS: ns, Diags: diags}
}

// LowerFunction lowers def's body into a *mir.Function. params and ret
// are the already-resolved signature (installed on the namespace symbol
// by type lowering); def.Body is walked statement by statement.
func (l *FuncLowerer) LowerFunction(name string, params []mir.Param, ret *typegraph.Type, body *cst.Block, src token.SourceRef) *mir.Function {
	l.fn = mir.NewFunction(name, ret, params, src)
	l.tracker = scopetracker.New(l.Diags)
	l.labels = make(map[string]*mir.BasicBlock)
	l.shadowCount = make(map[string]int)

	entry := l.fn.NewBlock(src)
	l.fn.Entry = entry.ID
	l.block = entry

	l.pushScope()
	for _, p := range params {
		l.bindLocal(p.Name, p.Type)
	}
	l.lowerBlock(body)
	l.popScope()

	// An empty block opened after the body's final terminator, with no
	// branch into it, is dead: drop it instead of terminating it.
	dead := len(l.block.Operations) == 0 && l.block.ID != l.fn.Entry
	for _, b := range l.fn.Blocks {
		for _, op := range b.Operations {
			for _, o := range op.Operands {
				if o.Kind == mir.OperandBlockRef && o.Block == l.block.ID {
					dead = false
				}
			}
		}
	}
	if dead {
		delete(l.fn.Blocks, l.block.ID)
	} else if !l.blockTerminated() {
		if ret.IsVoid() {
			l.emit(mir.Operation{Kind: mir.OpReturnVoid, Src: body.Src})
		} else {
			l.Diags.AddSimple(body.Src, "MissingReturn", "function "+name+" does not return a value on every path")
			l.emit(mir.Operation{Kind: mir.OpUnreachable, Src: body.Src})
		}
	}

	l.tracker.Finalise()
	return l.fn
}

// --- scope bookkeeping ---------------------------------------------------

func (l *FuncLowerer) pushScope() {
	l.tracker.PushScope()
	l.scopes = append(l.scopes, map[string]localVar{})
}

func (l *FuncLowerer) popScope() {
	l.tracker.PopScope()
	l.scopes = l.scopes[:len(l.scopes)-1]
}

// bindLocal introduces name in the innermost scope, giving it a unique
// MIR storage name so a shadowing inner declaration never collides with
// an outer one in the flat, block-scope-free MIR.
func (l *FuncLowerer) bindLocal(name string, t *typegraph.Type) localVar {
	mirName := name
	if n := l.shadowCount[name]; n > 0 {
		mirName = fmt.Sprintf("%s$%d", name, n)
	}
	l.shadowCount[name]++
	lv := localVar{mirName: mirName, typ: t}
	l.scopes[len(l.scopes)-1][name] = lv
	return lv
}

func (l *FuncLowerer) lookupLocal(name string) (localVar, bool) {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if lv, ok := l.scopes[i][name]; ok {
			return lv, true
		}
	}
	return localVar{}, false
}

// --- block / operation plumbing ------------------------------------------

func (l *FuncLowerer) emit(op mir.Operation) {
	l.block.Operations = append(l.block.Operations, op)
}

func (l *FuncLowerer) blockTerminated() bool {
	ops := l.block.Operations
	return len(ops) > 0 && ops[len(ops)-1].IsTerminator()
}

func (l *FuncLowerer) point() scopetracker.FunctionPoint {
	return scopetracker.FunctionPoint{Block: l.block.ID, Index: len(l.block.Operations)}
}

// switchTo starts emitting into b. Per spec §4.5, a fresh block always
// follows a terminator so later statements are not silently folded into
// unreachable code; switchTo is how every control-flow construct below
// performs that switch, whether or not the block being left already
// carries its own terminator.
func (l *FuncLowerer) switchTo(b *mir.BasicBlock) {
	l.block = b
}

// branchTo terminates the current block with an unconditional branch to
// target, unless the current block is already terminated (e.g. by an
// earlier return within the same straight-line sequence).
func (l *FuncLowerer) branchTo(target mir.BlockID, src token.SourceRef) {
	if l.blockTerminated() {
		return
	}
	l.emit(mir.Operation{Kind: mir.OpBranch, Operands: []mir.Operand{mir.BlockRef(target)}, Src: src})
}

// labelBlock returns the block assigned to name, allocating a fresh one
// on first reference whether that reference is the goto or the label
// definition itself.
func (l *FuncLowerer) labelBlock(name string, src token.SourceRef) *mir.BasicBlock {
	if b, ok := l.labels[name]; ok {
		return b
	}
	b := l.fn.NewBlock(src)
	l.labels[name] = b
	return b
}

// --- statements -----------------------------------------------------------

func (l *FuncLowerer) lowerBlock(b *cst.Block) {
	l.pushScope()
	for _, s := range b.Stmts {
		l.lowerStmt(s)
	}
	l.popScope()
}

func (l *FuncLowerer) lowerStmt(s cst.Stmt) {
	switch n := s.(type) {
	case *cst.LetStmt:
		l.lowerLet(n)
	case *cst.ExprStmt:
		l.lowerExpr(n.X)
	case *cst.AssignStmt:
		l.lowerAssign(n)
	case *cst.IfStmt:
		l.lowerIf(n)
	case *cst.WhileStmt:
		l.lowerWhile(n)
	case *cst.ForStmt:
		l.lowerFor(n)
	case *cst.ReturnStmt:
		l.lowerReturn(n)
	case *cst.BreakStmt:
		l.lowerBreak(n)
	case *cst.ContinueStmt:
		l.lowerContinue(n)
	case *cst.GotoStmt:
		l.lowerGoto(n)
	case *cst.LabelStmt:
		l.lowerLabel(n)
	case *cst.Block:
		l.lowerBlock(n)
	default:
		l.Diags.AddInternal(s.SourceRef(), fmt.Sprintf("unhandled statement kind %T in function lowering", s))
	}
}

func (l *FuncLowerer) lowerLet(n *cst.LetStmt) {
	var t *typegraph.Type
	var init *valueRef
	if n.Init != nil {
		init = l.lowerExpr(n.Init)
	}
	switch {
	case n.Type != nil:
		t = (&TypeLowerer{Graph: l.Graph, NS: l.NS, Diags: l.Diags}).resolveTypeSpec(n.Type, n.Src)
	case init != nil:
		t = init.typ
	default:
		l.Diags.AddSimple(n.Src, "Semantic", "let "+n.Name.Text+" has neither a type nor an initializer")
		t = l.Graph.Primitive(typegraph.VoidKind)
	}

	lv := l.bindLocal(n.Name.Text, t)
	l.tracker.Declare(n.Name.Text, n.Src)

	if init != nil {
		l.emit(mir.Operation{
			Kind:     mir.OpStore,
			Operands: []mir.Operand{mir.LocalAddr(lv.mirName, t), init.operand()},
			Type:     t,
			Src:      n.Src,
		})
	}
}

func (l *FuncLowerer) lowerAssign(n *cst.AssignStmt) {
	addr := l.lowerLvalue(n.Target)
	val := l.lowerExpr(n.Value)
	l.emit(mir.Operation{
		Kind:     mir.OpStore,
		Operands: []mir.Operand{addr, val.operand()},
		Type:     addr.Type,
		Src:      n.Src,
	})
}

func (l *FuncLowerer) lowerIf(n *cst.IfStmt) {
	cond := l.lowerExpr(n.Cond)

	thenBlock := l.fn.NewBlock(n.Then.Src)
	elseSrc := n.Src
	if n.Else != nil {
		elseSrc = n.Else.Src
	}
	elseBlock := l.fn.NewBlock(elseSrc)
	after := l.fn.NewBlock(n.Src)

	l.emit(mir.Operation{
		Kind:     mir.OpCondBranch,
		Operands: []mir.Operand{cond.operand(), mir.BlockRef(thenBlock.ID), mir.BlockRef(elseBlock.ID)},
		Src:      n.Src,
	})

	l.switchTo(thenBlock)
	l.lowerBlock(n.Then)
	l.branchTo(after.ID, n.Src)

	l.switchTo(elseBlock)
	if n.Else != nil {
		l.lowerBlock(n.Else)
	}
	l.branchTo(after.ID, n.Src)

	l.switchTo(after)
}

func (l *FuncLowerer) lowerWhile(n *cst.WhileStmt) {
	header := l.fn.NewBlock(n.Src)
	body := l.fn.NewBlock(n.Body.Src)
	exit := l.fn.NewBlock(n.Src)

	l.branchTo(header.ID, n.Src)
	l.switchTo(header)
	cond := l.lowerExpr(n.Cond)
	l.emit(mir.Operation{
		Kind:     mir.OpCondBranch,
		Operands: []mir.Operand{cond.operand(), mir.BlockRef(body.ID), mir.BlockRef(exit.ID)},
		Src:      n.Src,
	})

	l.loops = append(l.loops, loopTargets{continueTarget: header.ID, breakTarget: exit.ID})
	l.switchTo(body)
	l.lowerBlock(n.Body)
	l.branchTo(header.ID, n.Src)
	l.loops = l.loops[:len(l.loops)-1]

	l.switchTo(exit)
}

func (l *FuncLowerer) lowerFor(n *cst.ForStmt) {
	l.pushScope()
	if n.Init != nil {
		l.lowerStmt(n.Init)
	}

	header := l.fn.NewBlock(n.Src)
	body := l.fn.NewBlock(n.Body.Src)
	post := l.fn.NewBlock(n.Src)
	exit := l.fn.NewBlock(n.Src)

	l.branchTo(header.ID, n.Src)
	l.switchTo(header)
	if n.Cond != nil {
		cond := l.lowerExpr(n.Cond)
		l.emit(mir.Operation{
			Kind:     mir.OpCondBranch,
			Operands: []mir.Operand{cond.operand(), mir.BlockRef(body.ID), mir.BlockRef(exit.ID)},
			Src:      n.Src,
		})
	} else {
		l.branchTo(body.ID, n.Src)
	}

	l.loops = append(l.loops, loopTargets{continueTarget: post.ID, breakTarget: exit.ID})
	l.switchTo(body)
	l.lowerBlock(n.Body)
	l.branchTo(post.ID, n.Src)
	l.loops = l.loops[:len(l.loops)-1]

	l.switchTo(post)
	if n.Post != nil {
		l.lowerStmt(n.Post)
	}
	l.branchTo(header.ID, n.Src)

	l.popScope()
	l.switchTo(exit)
}

func (l *FuncLowerer) lowerReturn(n *cst.ReturnStmt) {
	if n.Value == nil {
		l.emit(mir.Operation{Kind: mir.OpReturnVoid, Src: n.Src})
	} else {
		v := l.lowerExpr(n.Value)
		l.emit(mir.Operation{Kind: mir.OpReturn, Operands: []mir.Operand{v.operand()}, Type: v.typ, Src: n.Src})
	}
	l.switchTo(l.fn.NewBlock(n.Src))
}

func (l *FuncLowerer) lowerBreak(n *cst.BreakStmt) {
	if len(l.loops) == 0 {
		l.Diags.AddSimple(n.Src, "Semantic", "break outside of a loop")
		return
	}
	target := l.loops[len(l.loops)-1].breakTarget
	l.emit(mir.Operation{Kind: mir.OpBranch, Operands: []mir.Operand{mir.BlockRef(target)}, Src: n.Src})
	l.switchTo(l.fn.NewBlock(n.Src))
}

func (l *FuncLowerer) lowerContinue(n *cst.ContinueStmt) {
	if len(l.loops) == 0 {
		l.Diags.AddSimple(n.Src, "Semantic", "continue outside of a loop")
		return
	}
	target := l.loops[len(l.loops)-1].continueTarget
	l.emit(mir.Operation{Kind: mir.OpBranch, Operands: []mir.Operand{mir.BlockRef(target)}, Src: n.Src})
	l.switchTo(l.fn.NewBlock(n.Src))
}

func (l *FuncLowerer) lowerGoto(n *cst.GotoStmt) {
	name := n.Label.Text
	target := l.labelBlock(name, n.Src)
	l.tracker.Goto(name, l.point(), n.Src)
	l.emit(mir.Operation{Kind: mir.OpBranch, Operands: []mir.Operand{mir.BlockRef(target.ID)}, Src: n.Src})
	l.switchTo(l.fn.NewBlock(n.Src))
}

func (l *FuncLowerer) lowerLabel(n *cst.LabelStmt) {
	name := n.Name.Text
	target := l.labelBlock(name, n.Src)
	l.branchTo(target.ID, n.Src)
	l.switchTo(target)
	l.tracker.LabelDefine(name, l.point(), n.Src)
}

// --- lvalues ---------------------------------------------------------------

// lowerLvalue resolves an assignable expression to the address operand
// its value should be stored through. Only identifiers, derefs, member
// access, and indexing are valid lvalues; anything else is a semantic
// error reported once and replaced by a void placeholder address.
func (l *FuncLowerer) lowerLvalue(e cst.Expr) mir.Operand {
	switch n := e.(type) {
	case *cst.IdentExpr:
		if lv, ok := l.lookupLocal(n.Name()); ok {
			return mir.LocalAddr(lv.mirName, lv.typ)
		}
		sym := l.NS.Resolve(l.NS.Current(), n.Name(), n.Src)
		return mir.GlobalRef(n.Name(), sym.Type)

	case *cst.DerefExpr:
		ptr := l.lowerExpr(n.Operand)
		addr := ptr.operand()
		addr.Type = elemOf(ptr.typ)
		return addr

	case *cst.MemberExpr:
		base := l.lowerLvalue(n.Base)
		t := fieldType(base.Type, n.Member.Text)
		return memberAddr(base, n.Member.Text, t)

	case *cst.IndexExpr:
		base := l.lowerLvalue(n.Base)
		idx := l.lowerExpr(n.Index)
		elemT := base.Type
		if base.Type != nil && (base.Type.Kind() == typegraph.KindArray || base.Type.Kind() == typegraph.KindPointer) {
			elemT = base.Type.Elem()
		}
		tmp := l.fn.NewTmp(elemT)
		l.emit(mir.Operation{
			Kind:     mir.OpBinary,
			Binary:   mir.BinAdd,
			Operands: []mir.Operand{base, idx.operand()},
			Result:   &tmp,
			Type:     elemT,
			Src:      n.Src,
		})
		return mir.TmpOperand(tmp, elemT)

	default:
		l.Diags.AddSimple(e.SourceRef(), "Semantic", "expression is not assignable")
		return mir.Operand{}
	}
}

// memberAddr extends an address operand with a field access: "p.x"
// addresses through the same LocalAddr/GlobalRef name the base resolved
// to, dotted with the member name, so a chain of member accesses
// ("a.b.c") naturally folds into one dotted storage name rather than a
// new address-computation instruction per level.
func memberAddr(base mir.Operand, member string, t *typegraph.Type) mir.Operand {
	switch base.Kind {
	case mir.OperandLocalAddr:
		return mir.LocalAddr(base.LocalName+"."+member, t)
	case mir.OperandGlobalRef:
		return mir.GlobalRef(base.GlobalName+"."+member, t)
	default:
		return mir.LocalAddr(fmt.Sprintf("$tmp%d.%s", base.Tmp, member), t)
	}
}

func fieldType(base *typegraph.Type, name string) *typegraph.Type {
	t := elemOf(base)
	if t == nil || t.Kind() != typegraph.KindComposite {
		return t
	}
	if f, ok := t.Field(name); ok {
		return f.Type
	}
	return t
}

// --- expressions -------------------------------------------------------

// valueRef is the result of lowering an expression: where its value
// lives (a temporary, or a literal materialised in place) and its type.
type valueRef struct {
	tmp     *mir.TmpID
	literal *mir.Operand
	typ     *typegraph.Type
}

func (v *valueRef) operand() mir.Operand {
	if v.literal != nil {
		return *v.literal
	}
	return mir.TmpOperand(*v.tmp, v.typ)
}

func tmpValue(id mir.TmpID, t *typegraph.Type) *valueRef {
	return &valueRef{tmp: &id, typ: t}
}

func literalValue(op mir.Operand) *valueRef {
	return &valueRef{literal: &op, typ: op.Type}
}

func (l *FuncLowerer) lowerExpr(e cst.Expr) *valueRef {
	switch n := e.(type) {
	case *cst.IntLiteralExpr:
		res := literal.Parse(l.Diags, n.Tok.Text, n.Src)
		t := l.Graph.Primitive(intKindToPrimitive(res.Kind))
		return literalValue(intLiteralOperand(res, t))

	case *cst.FloatLiteralExpr:
		res := literal.ParseFloat(l.Diags, n.Tok.Text, n.Src)
		t := l.Graph.Primitive(floatKindToPrimitive(res.Kind))
		return literalValue(mir.FloatLiteral(res.Value, t))

	case *cst.BoolLiteralExpr:
		return literalValue(mir.BoolLiteral(n.Tok.Text == "true", l.Graph.Primitive(typegraph.BoolKind)))

	case *cst.StringLiteralExpr:
		t := l.Graph.PointerTo(l.Graph.Primitive(typegraph.U8), n.Src)
		return literalValue(mir.GlobalRef(n.Tok.Text, t))

	case *cst.IdentExpr:
		return l.lowerIdent(n)

	case *cst.ParenExpr:
		return l.lowerExpr(n.Inner)

	case *cst.UnaryExpr:
		return l.lowerUnary(n)

	case *cst.DerefExpr:
		return l.lowerDeref(n)

	case *cst.BinaryExpr:
		return l.lowerBinary(n)

	case *cst.CallExpr:
		return l.lowerCall(n)

	case *cst.MemberExpr, *cst.IndexExpr:
		addr := l.lowerLvalue(n)
		return l.load(addr, e.SourceRef())

	default:
		l.Diags.AddInternal(e.SourceRef(), fmt.Sprintf("unhandled expression kind %T in function lowering", e))
		return literalValue(mir.Operand{Type: l.Graph.Primitive(typegraph.VoidKind)})
	}
}

func (l *FuncLowerer) lowerIdent(n *cst.IdentExpr) *valueRef {
	if lv, ok := l.lookupLocal(n.Name()); ok {
		return l.load(mir.LocalAddr(lv.mirName, lv.typ), n.Src)
	}
	sym := l.NS.Resolve(l.NS.Current(), n.Name(), n.Src)
	if sym.Kind == namespace.FunctionName || sym.Kind == namespace.EnumTag {
		return literalValue(mir.GlobalRef(n.Name(), sym.Type))
	}
	return l.load(mir.GlobalRef(n.Name(), sym.Type), n.Src)
}

func (l *FuncLowerer) load(addr mir.Operand, src token.SourceRef) *valueRef {
	tmp := l.fn.NewTmp(addr.Type)
	l.emit(mir.Operation{Kind: mir.OpLoad, Operands: []mir.Operand{addr}, Result: &tmp, Type: addr.Type, Src: src})
	return tmpValue(tmp, addr.Type)
}

func (l *FuncLowerer) lowerDeref(n *cst.DerefExpr) *valueRef {
	ptr := l.lowerExpr(n.Operand)
	addr := ptr.operand()
	addr.Type = elemOf(ptr.typ)
	return l.load(addr, n.Src)
}

// elemOf returns t's pointee/referent type, or t itself if it is
// neither a pointer nor a reference (defensive against malformed input
// that earlier diagnostics already reported).
func elemOf(t *typegraph.Type) *typegraph.Type {
	if t != nil && (t.Kind() == typegraph.KindPointer || t.Kind() == typegraph.KindReference) {
		return t.Elem()
	}
	return t
}

func (l *FuncLowerer) lowerUnary(n *cst.UnaryExpr) *valueRef {
	if n.Op.Text == "&" {
		addr := l.lowerLvalue(n.Operand)
		return literalValue(addr)
	}

	operand := l.lowerExpr(n.Operand)
	t := operand.typ
	tmp := l.fn.NewTmp(t)
	zero := mir.IntLiteral(0, t)
	op := mir.BinSub
	if n.Op.Text == "!" {
		op = mir.BinEq
		zero = mir.BoolLiteral(false, t)
	}
	l.emit(mir.Operation{
		Kind:     mir.OpBinary,
		Binary:   op,
		Operands: []mir.Operand{zero, operand.operand()},
		Result:   &tmp,
		Type:     t,
		Src:      n.Src,
	})
	return tmpValue(tmp, t)
}

func (l *FuncLowerer) lowerCall(n *cst.CallExpr) *valueRef {
	ident, ok := n.Callee.(*cst.IdentExpr)
	if !ok {
		l.Diags.AddSimple(n.Src, "Semantic", "call target must be a named function")
		return literalValue(mir.Operand{Type: l.Graph.Primitive(typegraph.VoidKind)})
	}
	sym := l.NS.Resolve(l.NS.Current(), ident.Name(), n.Src)

	args := make([]mir.Operand, len(n.Args))
	for i, a := range n.Args {
		args[i] = l.lowerExpr(a).operand()
	}

	ret := l.Graph.Primitive(typegraph.VoidKind)
	if sym.Type != nil && sym.Type.Kind() == typegraph.KindFunctionPointer {
		ret = sym.Type.FuncReturn()
	}
	if ret.IsVoid() {
		l.emit(mir.Operation{Kind: mir.OpCall, Operands: args, Callee: ident.Name(), Type: ret, Src: n.Src})
		return literalValue(mir.Operand{Type: ret})
	}
	tmp := l.fn.NewTmp(ret)
	l.emit(mir.Operation{Kind: mir.OpCall, Operands: args, Result: &tmp, Callee: ident.Name(), Type: ret, Src: n.Src})
	return tmpValue(tmp, ret)
}

func (l *FuncLowerer) lowerBinary(n *cst.BinaryExpr) *valueRef {
	lhs := l.lowerExpr(n.Left)
	rhs := l.lowerExpr(n.Right)
	op, isComparison := binaryOpFor(n.Op.Text)

	resultType := l.widen(lhs.typ, rhs.typ, op, n.Src)
	if isComparison {
		resultType = l.Graph.Primitive(typegraph.BoolKind)
	}

	tmp := l.fn.NewTmp(resultType)
	l.emit(mir.Operation{
		Kind:     mir.OpBinary,
		Binary:   op,
		Operands: []mir.Operand{lhs.operand(), rhs.operand()},
		Result:   &tmp,
		Type:     resultType,
		Src:      n.Src,
	})
	return tmpValue(tmp, resultType)
}

func binaryOpFor(text string) (op mir.BinaryOp, isComparison bool) {
	switch text {
	case "+":
		return mir.BinAdd, false
	case "-":
		return mir.BinSub, false
	case "*":
		return mir.BinMul, false
	case "/":
		return mir.BinDiv, false
	case "%":
		return mir.BinMod, false
	case "&":
		return mir.BinAnd, false
	case "|":
		return mir.BinOr, false
	case "^":
		return mir.BinXor, false
	case "<<":
		return mir.BinShl, false
	case ">>":
		return mir.BinShr, false
	case "<":
		return mir.BinLt, true
	case "<=":
		return mir.BinLe, true
	case ">":
		return mir.BinGt, true
	case ">=":
		return mir.BinGe, true
	case "==":
		return mir.BinEq, true
	case "!=":
		return mir.BinNe, true
	case "&&":
		return mir.BinLogAnd, false
	case "||":
		return mir.BinLogOr, false
	default:
		return mir.BinAdd, false
	}
}

// widen applies the numeric widening rules of spec §4.5: matching
// integer signedness picks the wider of the two; mismatched signedness
// or mixed int/float is an error requiring an explicit cast; float pairs
// pick the wider float. Logical operators yield bool here; comparison
// operands are checked here too, and the caller replaces the result
// type of a comparison with bool.
func (l *FuncLowerer) widen(t1, t2 *typegraph.Type, op mir.BinaryOp, src token.SourceRef) *typegraph.Type {
	if t1 == nil || t2 == nil {
		return l.Graph.Primitive(typegraph.VoidKind)
	}
	if op == mir.BinLogAnd || op == mir.BinLogOr {
		return l.Graph.Primitive(typegraph.BoolKind)
	}
	if t1.Kind() != typegraph.KindPrimitive || t2.Kind() != typegraph.KindPrimitive {
		l.Diags.AddSimple(src, "TypeMismatch", "binary operator requires primitive operand types, got "+t1.Name()+" and "+t2.Name())
		return t1
	}

	p1, p2 := t1.Primitive(), t2.Primitive()
	switch {
	case p1.IsInteger() && p2.IsInteger():
		if p1.IsSigned() != p2.IsSigned() {
			l.Diags.AddSimple(src, "TypeMismatch", "mismatched integer signedness between "+t1.Name()+" and "+t2.Name()+"; an explicit cast is required")
			return t1
		}
		if bitWidth(p1) >= bitWidth(p2) {
			return t1
		}
		return t2

	case p1.IsFloat() && p2.IsFloat():
		if bitWidth(p1) >= bitWidth(p2) {
			return t1
		}
		return t2

	case p1 == typegraph.BoolKind && p2 == typegraph.BoolKind:
		return t1

	default:
		l.Diags.AddSimple(src, "TypeMismatch", "mixing integer and floating-point operands ("+t1.Name()+", "+t2.Name()+") requires an explicit cast")
		return t1
	}
}

func bitWidth(k typegraph.PrimitiveKind) int {
	switch k {
	case typegraph.I8, typegraph.U8:
		return 8
	case typegraph.I16, typegraph.U16:
		return 16
	case typegraph.I32, typegraph.U32, typegraph.F32:
		return 32
	case typegraph.I64, typegraph.U64, typegraph.F64:
		return 64
	default:
		return 0
	}
}

func intKindToPrimitive(k literal.IntKind) typegraph.PrimitiveKind {
	switch k {
	case literal.I8:
		return typegraph.I8
	case literal.I16:
		return typegraph.I16
	case literal.I32:
		return typegraph.I32
	case literal.I64:
		return typegraph.I64
	case literal.U8:
		return typegraph.U8
	case literal.U16:
		return typegraph.U16
	case literal.U32:
		return typegraph.U32
	default:
		return typegraph.U64
	}
}

func intLiteralOperand(res literal.Result, t *typegraph.Type) mir.Operand {
	switch res.Kind {
	case literal.I8:
		return mir.IntLiteral(int64(res.I8Value), t)
	case literal.I16:
		return mir.IntLiteral(int64(res.I16Value), t)
	case literal.I32:
		return mir.IntLiteral(int64(res.I32Value), t)
	case literal.I64:
		return mir.IntLiteral(res.I64Value, t)
	case literal.U8:
		return mir.UintLiteral(uint64(res.U8Value), t)
	case literal.U16:
		return mir.UintLiteral(uint64(res.U16Value), t)
	case literal.U32:
		return mir.UintLiteral(uint64(res.U32Value), t)
	default:
		return mir.UintLiteral(res.U64Value, t)
	}
}

func floatKindToPrimitive(k literal.FloatKind) typegraph.PrimitiveKind {
	if k == literal.F32 {
		return typegraph.F32
	}
	return typegraph.F64
}
