package runtime

import (
	"strconv"
	"strings"
)

// FormatValue renders v the way print shows it.
func FormatValue(v Value) string {
	var b strings.Builder
	writeValue(&b, v, nil)
	return b.String()
}

// FormatNumber renders a number as the shortest decimal that reads back as
// the same float64.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// writeValue tracks the arrays on the current path so an array that contains
// itself renders as [...] instead of recursing forever.
func writeValue(b *strings.Builder, v Value, path map[*ArrayValue]bool) {
	switch val := v.(type) {
	case nil, NilValue:
		b.WriteString("nil")
	case BoolValue:
		b.WriteString(strconv.FormatBool(val.Val))
	case NumberValue:
		b.WriteString(FormatNumber(val.Val))
	case StringValue:
		b.WriteString(val.Val)
	case *ArrayValue:
		if path[val] {
			b.WriteString("[...]")
			return
		}
		if path == nil {
			path = make(map[*ArrayValue]bool)
		}
		path[val] = true
		b.WriteByte('[')
		for i, el := range val.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, el, path)
		}
		b.WriteByte(']')
		delete(path, val)
	case *FunctionValue:
		b.WriteString("<fn " + val.Name() + ">")
	case *ModelValue:
		b.WriteString("<model " + val.Name() + ">")
	case *InstanceValue:
		b.WriteString("instance of " + val.Model.Name())
	default:
		b.WriteString("<unknown>")
	}
}
