package logic

// Row is one line of a truth table.
type Row struct {
	Inputs []bool `json:"inputs"`
	Output bool   `json:"output"`
}

// TruthTable returns every input combination of k with its output. Rows are
// ordered by counting upward with the left input as the most significant
// bit: F, T for NOT and FF, FT, TF, TT for binary kinds.
func TruthTable(k Kind) []Row {
	arity := k.Arity()
	if arity == 0 {
		return nil
	}

	rows := make([]Row, 0, 1<<arity)
	for bits := 0; bits < 1<<arity; bits++ {
		var first, second bool
		if arity == 1 {
			first = bits&1 == 1
		} else {
			first = bits&2 == 2
			second = bits&1 == 1
		}
		in := k.Bind(first, second)
		rows = append(rows, Row{Inputs: in.Values(), Output: Evaluate(k, in)})
	}
	return rows
}
