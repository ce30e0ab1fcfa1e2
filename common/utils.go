package common

import "fmt"

// Assert checks a condition and panics if it is false.
//
// Assertions guard internal invariants: conditions that cannot be false
// unless the program itself is broken. User input and I/O failures are
// validated with error returns, never with Assert.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
