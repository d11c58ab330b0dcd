package emit

import "fmt"

// Unimplemented reports a construct the emitter cannot render, per
// spec.md §7's "Unimplemented (emitter cannot handle a construct)" error
// kind. Unlike the typechecker, the emitter is fail-fast (spec.md §7's
// recovery policy: "other passes are fail-fast"), so a Printer does not
// collect these: rendering stops at the first one, which is returned.
type Unimplemented struct {
	What string
}

func (e *Unimplemented) Error() string {
	return fmt.Sprintf("emit: unimplemented: %s", e.What)
}
