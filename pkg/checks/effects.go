package checks

import "github.com/asl-lang/aslc/pkg/ast"

// builtinEffectfulPrimitives are the runtime primitives of C8's RAM
// capability set (spec.md §4.5, §4.8): initialising, reading or writing RAM
// always mutates session-global state, regardless of what any ASL-level
// wrapper around them is named.
var builtinEffectfulPrimitives = map[string]bool{
	"RAMInit":  true,
	"RAMRead":  true,
	"RAMWrite": true,
}

// computeEffectfulFuncs returns the set of function names that are
// effectful: they directly assign to a global, call a builtin RAM
// primitive, or (transitively) call another effectful function. Pre-
// typecheck, overloads of the same name cannot yet be told apart, so the
// classification is per-name — if any overload mutates a global, every
// call to that name is treated as effectful.
func computeEffectfulFuncs(decls []ast.Decl) map[string]bool {
	globals := map[string]bool{}

	type funcInfo struct {
		body  []ast.Stmt
		calls map[string]bool
	}

	funcs := map[string]*funcInfo{}

	for _, d := range decls {
		switch n := d.(type) {
		case *ast.VarDeclGlobal:
			globals[n.Name.Name] = true
		}
	}

	for _, d := range decls {
		fd, ok := d.(*ast.FuncDef)
		if !ok {
			continue
		}

		calls := map[string]bool{}
		stmtsCallNames(fd.Body, calls)

		info, exists := funcs[fd.Name.Name]
		if !exists {
			info = &funcInfo{calls: map[string]bool{}}
			funcs[fd.Name.Name] = info
		}

		info.body = append(info.body, fd.Body...)

		for c := range calls {
			info.calls[c] = true
		}
	}

	eff := map[string]bool{}

	for name := range builtinEffectfulPrimitives {
		eff[name] = true
	}

	for name, info := range funcs {
		if stmtsAssignGlobal(info.body, globals) {
			eff[name] = true
		}
	}

	for changed := true; changed; {
		changed = false

		for name, info := range funcs {
			if eff[name] {
				continue
			}

			for c := range info.calls {
				if eff[c] {
					eff[name] = true
					changed = true

					break
				}
			}
		}
	}

	return eff
}
