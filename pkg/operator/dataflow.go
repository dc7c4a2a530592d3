package operator

import "github.com/orcagrid/orca-go/pkg/grid"

// evalGenerate implements "Generate": reads x, y, len from the three cells
// immediately west, then copies len east inputs to (row+1+y, col+x+i).
func evalGenerate(ctx *grid.Context, row, col int) []grid.Update {
	xPort, x := listenDecoded(ctx, "x", row, col-3, '0')
	yPort, y := listenDecoded(ctx, "y", row, col-2, '0')
	lenPort, length := listenDecoded(ctx, "len", row, col-1, '0')

	var inputs []grid.Port
	var outputs []grid.Port
	for i := 0; i < length.V; i++ {
		in := ctx.ListenRaw("in", row, col+1+i)
		inputs = append(inputs, in)
		outputs = append(outputs, grid.Port{Label: "out", Row: row + 1 + y.V, Col: col + x.V + i, Value: in.Value})
	}

	updates := []grid.Update{grid.Inputs(append([]grid.Port{xPort, yPort, lenPort}, inputs...)...)}
	if len(outputs) > 0 {
		updates = append(updates, grid.Outputs(outputs...))
	}
	return updates
}

// evalRead implements "Read": S = value of the cell at (row+y, col+1+x),
// with x, y read from the two cells immediately west.
func evalRead(ctx *grid.Context, row, col int) []grid.Update {
	xPort, x := listenDecoded(ctx, "x", row, col-2, '0')
	yPort, y := listenDecoded(ctx, "y", row, col-1, '0')
	sr, sc := south(row, col)

	target := ctx.Read(row+y.V, col+1+x.V)

	return []grid.Update{
		grid.Inputs(xPort, yPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: target}),
	}
}

// evalWrite implements "Write": writes val (read from the east cell) to
// (row+1+y, col+x), with x, y read from the two cells immediately west.
func evalWrite(ctx *grid.Context, row, col int) []grid.Update {
	xPort, x := listenDecoded(ctx, "x", row, col-2, '0')
	yPort, y := listenDecoded(ctx, "y", row, col-1, '0')
	valPort := ctx.ListenRaw("val", row, col+1)

	return []grid.Update{
		grid.Inputs(xPort, yPort, valPort),
		grid.Outputs(grid.Port{Label: "output", Row: row + 1 + y.V, Col: col + x.V, Value: valPort.Value}),
	}
}

// evalPush implements "Push": writes val (east) to (row+1, col + key mod
// len), locking the len cells of the row-below track it writes into.
func evalPush(ctx *grid.Context, row, col int) []grid.Update {
	keyPort, key := listenDecoded(ctx, "key", row, col-2, '0')
	lenPort, length := listenDecoded(ctx, "len", row, col-1, '1')
	valPort := ctx.ListenRaw("val", row, col+1)

	modulus := maxInt(length.V, 1)
	offset := key.V % modulus

	var locks []grid.Port
	for i := 0; i < length.V; i++ {
		locks = append(locks, grid.Port{Label: "track", Row: row + 1, Col: col + i})
	}

	updates := []grid.Update{
		grid.Inputs(keyPort, lenPort, valPort),
		grid.Outputs(grid.Port{Label: "slot", Row: row + 1, Col: col + offset, Value: valPort.Value}),
	}
	if len(locks) > 0 {
		updates = append(updates, grid.Locks(locks...))
	}
	return updates
}

// evalQuery implements "Query": copies len cells starting at (row+y,
// col+1+x) into the row below, written right-to-left starting at
// (row+1, col).
func evalQuery(ctx *grid.Context, row, col int) []grid.Update {
	xPort, x := listenDecoded(ctx, "x", row, col-3, '0')
	yPort, y := listenDecoded(ctx, "y", row, col-2, '0')
	lenPort, length := listenDecoded(ctx, "len", row, col-1, '0')

	var outputs []grid.Port
	for i := 0; i < length.V; i++ {
		srcR, srcC := row+y.V, col+1+x.V+i
		val := ctx.Read(srcR, srcC)
		outputs = append(outputs, grid.Port{Label: "out", Row: row + 1, Col: col - i, Value: val})
	}

	updates := []grid.Update{grid.Inputs(xPort, yPort, lenPort)}
	if len(outputs) > 0 {
		updates = append(updates, grid.Outputs(outputs...))
	}
	return updates
}

// evalTrack implements "Track": S = E_{key mod len}, reading key and len
// from the two cells immediately west and locking the len-cell east range.
func evalTrack(ctx *grid.Context, row, col int) []grid.Update {
	keyPort, key := listenDecoded(ctx, "key", row, col-2, '0')
	lenPort, length := listenDecoded(ctx, "len", row, col-1, '1')
	sr, sc := south(row, col)

	modulus := maxInt(length.V, 1)
	idx := key.V % modulus

	var eastCells []grid.Port
	var selected rune
	for i := 0; i < length.V; i++ {
		p := ctx.ListenRaw("e", row, col+1+i)
		eastCells = append(eastCells, p)
		if i == idx {
			selected = p.Value
		}
	}

	updates := []grid.Update{grid.Inputs(keyPort, lenPort)}
	if len(eastCells) > 0 {
		updates = append(updates, grid.Inputs(eastCells...))
	}
	updates = append(updates, grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: selected}))
	return updates
}

// evalConcat implements "Concat": for each of the len name cells
// immediately east, reads the variable it names and writes the value into
// the cell directly below it.
func evalConcat(ctx *grid.Context, row, col int) []grid.Update {
	lenPort, length := listenDecoded(ctx, "len", row, col-1, '0')

	var names []grid.Port
	var outputs []grid.Port
	for i := 0; i < length.V; i++ {
		namePort := ctx.ListenRaw("name", row, col+1+i)
		names = append(names, namePort)
		value := ctx.ReadVariable(namePort.Value, grid.Empty)
		outputs = append(outputs, grid.Port{Label: "value", Row: row + 1, Col: col + 1 + i, Value: value})
	}

	updates := []grid.Update{grid.Inputs(append([]grid.Port{lenPort}, names...)...)}
	if len(outputs) > 0 {
		updates = append(updates, grid.Outputs(outputs...))
	}
	return updates
}

// evalVariable implements "Variable". Both operands sit to the east: the
// immediate east cell is the assignment name (or Empty to select read
// mode), and the cell beyond it is either the value to assign or, in read
// mode, the name of the variable to read; see DESIGN.md.
func evalVariable(ctx *grid.Context, row, col int) []grid.Update {
	namePort := ctx.ListenRaw("name", row, col+1)
	valuePort := ctx.ListenRaw("value", row, col+2)
	sr, sc := south(row, col)

	if namePort.Value == grid.Empty {
		result := ctx.ReadVariable(valuePort.Value, grid.Empty)
		return []grid.Update{
			grid.Inputs(namePort, valuePort),
			grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
		}
	}

	return []grid.Update{
		grid.Inputs(namePort, valuePort),
		grid.SetVariables(grid.VarAssign{Name: namePort.Value, Value: valuePort.Value}),
	}
}
