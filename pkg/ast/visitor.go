package ast

// ActionKind is the three-way decision a Visitor's hook returns for a given
// node, per spec.md §4.3/§9's design note: replace the node outright, or
// descend into its children (optionally post-processing the result), or
// skip it (and its children) entirely.
type ActionKind int

const (
	// DoChildren descends into the node's children, then (if PostFn is set)
	// applies it to the rebuilt node.
	DoChildren ActionKind = iota
	// Change replaces the node with Replacement without descending into its
	// original children.
	Change
	// Skip leaves the node (and its children) untouched.
	Skip
)

// ExprAction is the result of visiting a single expression node.
type ExprAction struct {
	Kind        ActionKind
	Replacement Expr         // valid when Kind == Change
	PostFn      func(Expr) Expr // valid when Kind == DoChildren and non-nil
}

// StmtAction is the result of visiting a single statement node.
type StmtAction struct {
	Kind        ActionKind
	Replacement []Stmt // valid when Kind == Change; may expand to >1 statement
	PostFn      func(Stmt) []Stmt
}

// ExprVisitor is implemented by transform passes that rewrite expressions.
// VisitExpr is called pre-order on every expression node reachable from a
// walked tree; WalkExpr then applies the returned action and recurses on
// children unless told to Skip, exactly as spec.md §4.3 specifies.
type ExprVisitor interface {
	VisitExpr(Expr) ExprAction
}

// StmtVisitor is implemented by transform passes that rewrite statements.
type StmtVisitor interface {
	VisitStmt(Stmt) StmtAction
}

// WalkExpr applies v to e in pre-order, recursing into children per the
// returned ExprAction.
func WalkExpr(v ExprVisitor, e Expr) Expr {
	if e == nil {
		return nil
	}

	action := v.VisitExpr(e)

	switch action.Kind {
	case Change:
		return action.Replacement
	case Skip:
		return e
	}

	descended := descendExpr(v, e)

	if action.PostFn != nil {
		return action.PostFn(descended)
	}

	return descended
}

// descendExpr rebuilds e with each of its immediate expression children
// walked.  One case per Expr variant in pkg/ast/expr.go; a missing case here
// is a latent bug (a pass would silently skip that node kind's children),
// which is why every variant added to expr.go must add a case here too.
func descendExpr(v ExprVisitor, e Expr) Expr {
	switch n := e.(type) {
	case *LitInt, *LitBits, *LitMask, *LitString, *LitBool:
		return e
	case *Var:
		return n
	case *Field:
		n.Record = WalkExpr(v, n.Record)
		return n
	case *MultiField:
		n.Record = WalkExpr(v, n.Record)
		return n
	case *Index:
		n.Array = WalkExpr(v, n.Array)
		n.Key = WalkExpr(v, n.Key)
		return n
	case *Slice:
		n.Target = WalkExpr(v, n.Target)
		n.Index = WalkExpr(v, n.Index)
		if n.Width != nil {
			n.Width = WalkExpr(v, n.Width)
		}
		return n
	case *RecordLit:
		for i, f := range n.Values {
			n.Values[i] = WalkExpr(v, f)
		}
		return n
	case *With:
		n.Target = WalkExpr(v, n.Target)
		for i := range n.Changes {
			n.Changes[i].Value = WalkExpr(v, n.Changes[i].Value)
			if n.Changes[i].Low != nil {
				n.Changes[i].Low = WalkExpr(v, n.Changes[i].Low)
			}
			if n.Changes[i].Width != nil {
				n.Changes[i].Width = WalkExpr(v, n.Changes[i].Width)
			}
		}
		return n
	case *Cond:
		for i := range n.Arms {
			n.Arms[i].Cond = WalkExpr(v, n.Arms[i].Cond)
			n.Arms[i].Then = WalkExpr(v, n.Arms[i].Then)
		}
		if n.Else != nil {
			n.Else = WalkExpr(v, n.Else)
		}
		return n
	case *Let:
		n.Bound = WalkExpr(v, n.Bound)
		n.Body = WalkExpr(v, n.Body)
		return n
	case *AssertIn:
		n.Assertion = WalkExpr(v, n.Assertion)
		n.Body = WalkExpr(v, n.Body)
		return n
	case *UntypedCall:
		for i := range n.Args {
			n.Args[i].Expr = WalkExpr(v, n.Args[i].Expr)
		}
		return n
	case *TypedCall:
		for i := range n.Params {
			n.Params[i] = WalkExpr(v, n.Params[i])
		}
		for i := range n.Args {
			n.Args[i] = WalkExpr(v, n.Args[i])
		}
		return n
	case *TupleExpr:
		for i := range n.Elems {
			n.Elems[i] = WalkExpr(v, n.Elems[i])
		}
		return n
	case *Concat:
		for i := range n.Elems {
			n.Elems[i].Value = WalkExpr(v, n.Elems[i].Value)
		}
		return n
	case *UnaryOp:
		n.Arg = WalkExpr(v, n.Arg)
		return n
	case *BinaryOp:
		n.Left = WalkExpr(v, n.Left)
		n.Right = WalkExpr(v, n.Right)
		return n
	case *AsConstraint:
		n.Target = WalkExpr(v, n.Target)
		return n
	case *AsType:
		n.Target = WalkExpr(v, n.Target)
		return n
	case *ArrayInit:
		for i := range n.Elems {
			n.Elems[i] = WalkExpr(v, n.Elems[i])
		}
		if n.Repeat != nil {
			n.Repeat = WalkExpr(v, n.Repeat)
		}
		if n.Count != nil {
			n.Count = WalkExpr(v, n.Count)
		}
		return n
	case *UnknownOfType:
		return n
	case *PatternIn:
		n.Target = WalkExpr(v, n.Target)
		return n
	default:
		panic("ast.descendExpr: unhandled expression variant")
	}
}

// WalkStmts applies v to every statement in a sequence, in order,
// flattening Replacement lists (used when runtime-check insertion or
// let-hoisting expands one source statement into several).
func WalkStmts(v StmtVisitor, stmts []Stmt) []Stmt {
	var out []Stmt

	for _, s := range stmts {
		out = append(out, WalkStmt(v, s)...)
	}

	return out
}

// WalkStmt applies v to a single statement, recursing into nested statement
// bodies (if/case/for/while/repeat/try) unless told to Skip or Change.
func WalkStmt(v StmtVisitor, s Stmt) []Stmt {
	action := v.VisitStmt(s)

	switch action.Kind {
	case Change:
		return action.Replacement
	case Skip:
		return []Stmt{s}
	}

	descendStmt(v, s)

	if action.PostFn != nil {
		return action.PostFn(s)
	}

	return []Stmt{s}
}

func descendStmt(v StmtVisitor, s Stmt) {
	switch n := s.(type) {
	case *VarDecl, *Assign, *ExprStmt, *Return, *Assert, *Throw:
		// leaf statements: no nested statement bodies.
	case *Try:
		n.Body = WalkStmts(v, n.Body)
		for i := range n.Arms {
			n.Arms[i].Body = WalkStmts(v, n.Arms[i].Body)
		}
		if n.Default != nil {
			n.Default = WalkStmts(v, n.Default)
		}
	case *If:
		for i := range n.Arms {
			n.Arms[i].Body = WalkStmts(v, n.Arms[i].Body)
		}
		if n.Else != nil {
			n.Else = WalkStmts(v, n.Else)
		}
	case *Case:
		for i := range n.Alts {
			n.Alts[i].Body = WalkStmts(v, n.Alts[i].Body)
		}
		if n.Default != nil {
			n.Default = WalkStmts(v, n.Default)
		}
	case *For:
		n.Body = WalkStmts(v, n.Body)
	case *While:
		n.Body = WalkStmts(v, n.Body)
	case *Repeat:
		n.Body = WalkStmts(v, n.Body)
	default:
		panic("ast.descendStmt: unhandled statement variant")
	}
}
