// Package transform implements ASL's staged AST-to-AST lowering pipeline
// (spec.md §4.7): an ordered, registered sequence of total passes, each
// assuming every earlier pass has already run. It is grounded on the
// teacher's pkg/ir/mir and pkg/ir/air staged-lowering pattern (successive IR
// levels, each a total rewrite of the one before) and on
// pkg/corset/compiler/preprocessor.go's recursive per-node-kind expression
// rewriter shape, generalized from corset's invocation/reduction/for-loop
// expansion to ASL's full statement and declaration grammar.
package transform

import "github.com/asl-lang/aslc/pkg/ast"

// Context carries the lookup tables a pass needs beyond the declaration list
// itself (record field layouts, for desugaring `with`-expressions and
// multi-field access; the running identifier supply, for cloning during
// monomorphization).
type Context struct {
	Records map[string]*ast.RecordDecl
	Supply  *identSupply
}

// NewContext builds a Context from a program's declarations.
func NewContext(decls []ast.Decl) *Context {
	c := &Context{Records: map[string]*ast.RecordDecl{}, Supply: newIdentSupply()}

	for _, d := range decls {
		if rd, ok := d.(*ast.RecordDecl); ok {
			c.Records[rd.Name.Name] = rd
		}
	}

	return c
}

// Pass is one named, total rewrite over a program's declarations.
type Pass struct {
	Name string
	Run  func(*Context, []ast.Decl) []ast.Decl
}

// Pipeline is the ordered, registered sequence of transform passes
// (spec.md §4.7).
type Pipeline struct {
	Passes []Pass
}

// Default returns the standard pass ordering spec.md §4.7 specifies, every
// pass but the final optional wrapping pass.
func Default() *Pipeline {
	return &Pipeline{Passes: []Pass{
		{"desugar", Desugar},
		{"bitslice-normalize", NormalizeSlices},
		{"bittuple-lower", LowerBitTuples},
		{"tuple-eliminate", EliminateTuples},
		{"case-lower", LowerCases},
		{"getter-setter-inline", InlineAccessors},
		{"constant-propagate", PropagateConstants},
		{"let-hoist", HoistLets},
		{"monomorphize", Monomorphize},
		{"integer-bounds-lower", LowerIntegerBounds},
	}}
}

// WithWrapping appends the optional thread-local-pointer wrapping pass
// (spec.md §4.7's final bullet; enabled by asl2c's `--thread-local-pointer`
// flag).
func (p *Pipeline) WithWrapping(ptrName string) *Pipeline {
	p.Passes = append(p.Passes, Pass{"wrap-globals", func(ctx *Context, decls []ast.Decl) []ast.Decl {
		return WrapGlobals(decls, ptrName)
	}})

	return p
}

// Run executes every registered pass in order over a fresh Context, each
// pass consuming the previous pass's output.
func (p *Pipeline) Run(decls []ast.Decl) []ast.Decl {
	ctx := NewContext(decls)

	for _, pass := range p.Passes {
		decls = pass.Run(ctx, decls)
		ctx = NewContext(decls)
	}

	return decls
}

// identSupply mints fresh, collision-free identifier tags for declarations
// synthesized by a pass (tuple-elimination's generated record types,
// monomorphization's cloned functions).
type identSupply struct {
	next uint64
}

func newIdentSupply() *identSupply { return &identSupply{next: 1} }

func (s *identSupply) fresh() uint64 {
	tag := s.next
	s.next++

	return tag
}
