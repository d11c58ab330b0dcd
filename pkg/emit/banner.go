package emit

import "fmt"

// banner prepends a one-line "generated file, do not edit" comment.
// Plain string formatting; no templating library is warranted for one line
// (see DESIGN.md's C9 entry on where bavard is and isn't used).
func banner(basename, kind string) string {
	return fmt.Sprintf("/* %s_%s: generated by asl2c, do not edit by hand. */\n", basename, kind)
}
