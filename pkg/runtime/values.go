package runtime

import (
	"fmt"

	"troll/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindNumber
	KindBool
	KindString
	KindArray
	KindFunction
	KindModel
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	case KindModel:
		return "model"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. The set of
// implementations is closed: only this package declares them.
type Value interface {
	Kind() Kind
	isValue()
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }
func (NilValue) isValue()   {}

// Nil is the single nil value.
var Nil Value = NilValue{}

// NumberValue is the only numeric type; integer literals are widened to it.
type NumberValue struct {
	Val float64
}

func (NumberValue) Kind() Kind { return KindNumber }
func (NumberValue) isValue()   {}

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }
func (BoolValue) isValue()   {}

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }
func (StringValue) isValue()   {}

//-----------------------------------------------------------------------------
// Reference values
//-----------------------------------------------------------------------------

// ArrayValue is shared by reference between every binding that holds it.
type ArrayValue struct {
	Elements []Value
}

func (*ArrayValue) Kind() Kind { return KindArray }
func (*ArrayValue) isValue()   {}

// NewArray wraps elements without copying them.
func NewArray(elements []Value) *ArrayValue {
	return &ArrayValue{Elements: elements}
}

// Callable is implemented by values that can appear on the left of a call.
type Callable interface {
	Value
	Arity() int
	Name() string
}

// FunctionValue is a declared function together with the environment it
// closes over.
type FunctionValue struct {
	Declaration *ast.Function
	Closure     *Environment
}

func (*FunctionValue) Kind() Kind { return KindFunction }
func (*FunctionValue) isValue()   {}

func (f *FunctionValue) Arity() int   { return len(f.Declaration.Params) }
func (f *FunctionValue) Name() string { return f.Declaration.Name.Lexeme }

// ModelValue is a model declaration bound to its defining scope. Calling it
// constructs an instance; constructors take no arguments.
type ModelValue struct {
	Declaration *ast.Model
	Closure     *Environment
}

func (*ModelValue) Kind() Kind { return KindModel }
func (*ModelValue) isValue()   {}

func (m *ModelValue) Arity() int   { return 0 }
func (m *ModelValue) Name() string { return m.Declaration.Name.Lexeme }

// InstanceValue holds the member bindings of one constructed model. Every
// instance of a model points at the same ModelValue.
type InstanceValue struct {
	Model *ModelValue
	Env   *Environment
}

func (*InstanceValue) Kind() Kind { return KindInstance }
func (*InstanceValue) isValue()   {}

// Property looks a member up in the instance scope only; bindings visible
// through the model's closure are not properties.
func (i *InstanceValue) Property(name string) (Value, bool) {
	return i.Env.GetLocal(name)
}

//-----------------------------------------------------------------------------
// Helpers
//-----------------------------------------------------------------------------

// Truthy implements the language truthiness rule: nil and false are false,
// everything else is true.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Equal compares two values. Different kinds are never equal; scalars compare
// by value and everything else by identity.
func Equal(a, b Value) bool {
	if a == nil {
		a = Nil
	}
	if b == nil {
		b = Nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case NilValue:
		return true
	case NumberValue:
		return av.Val == b.(NumberValue).Val
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case StringValue:
		return av.Val == b.(StringValue).Val
	case *ArrayValue:
		return av == b.(*ArrayValue)
	case *FunctionValue:
		return av == b.(*FunctionValue)
	case *ModelValue:
		return av == b.(*ModelValue)
	case *InstanceValue:
		return av == b.(*InstanceValue)
	default:
		return false
	}
}
