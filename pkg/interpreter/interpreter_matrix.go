package interpreter

import (
	"troll/interpreter-go/pkg/runtime"
	"troll/interpreter-go/pkg/token"
)

// matrix is a validated rectangular view of a nested array.
type matrix struct {
	rows, cols int
	cells      [][]float64
}

// matrixMultiply implements the @ operator: a naive rows x cols product of two
// arrays of number arrays, returned as a new nested array.
func matrixMultiply(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	l, lok := left.(*runtime.ArrayValue)
	r, rok := right.(*runtime.ArrayValue)
	if !lok || !rok {
		return nil, newRuntimeError(op, "Operands of '@' must be arrays.")
	}
	a, err := toMatrix(op, l)
	if err != nil {
		return nil, err
	}
	if len(r.Elements) != a.cols {
		return nil, newRuntimeError(op, "Matrix dimensions mismatch.")
	}
	b, err := toMatrix(op, r)
	if err != nil {
		return nil, err
	}

	rows := make([]runtime.Value, a.rows)
	for i := 0; i < a.rows; i++ {
		row := make([]runtime.Value, b.cols)
		for j := 0; j < b.cols; j++ {
			sum := 0.0
			for k := 0; k < a.cols; k++ {
				sum += a.cells[i][k] * b.cells[k][j]
			}
			row[j] = runtime.NumberValue{Val: sum}
		}
		rows[i] = runtime.NewArray(row)
	}
	return runtime.NewArray(rows), nil
}

func toMatrix(op token.Token, arr *runtime.ArrayValue) (*matrix, error) {
	if len(arr.Elements) == 0 {
		return nil, newRuntimeError(op, "Empty matrix.")
	}
	m := &matrix{rows: len(arr.Elements), cells: make([][]float64, len(arr.Elements))}
	for i, rowVal := range arr.Elements {
		row, ok := rowVal.(*runtime.ArrayValue)
		if !ok {
			return nil, newRuntimeError(op, "Matrix multiply only supports 2D matrices.")
		}
		if i == 0 {
			m.cols = len(row.Elements)
		} else if len(row.Elements) != m.cols {
			return nil, newRuntimeError(op, "Matrix rows must have equal length.")
		}
		cells := make([]float64, len(row.Elements))
		for j, cell := range row.Elements {
			num, ok := cell.(runtime.NumberValue)
			if !ok {
				return nil, newRuntimeError(op, "Matrix elements must be numbers.")
			}
			cells[j] = num.Val
		}
		m.cells[i] = cells
	}
	return m, nil
}
