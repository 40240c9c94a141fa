package ast

// NativeUnsupported returns the nodes of program that the native code
// generator cannot lower, in source order. An empty result means the program
// stays within the backend subset: numbers, booleans and arrays, plain
// functions, and the statement forms let, print, if, while, return and blocks.
func NativeUnsupported(program *Program) []Node {
	var unsupported []Node
	Inspect(program, func(n Node) bool {
		switch n.(type) {
		case *Model, *Get:
			unsupported = append(unsupported, n)
			return false
		case *StringLiteral:
			unsupported = append(unsupported, n)
		}
		return true
	})
	return unsupported
}
