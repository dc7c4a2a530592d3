package operator

import (
	"github.com/orcagrid/orca-go/pkg/codec"
	"github.com/orcagrid/orca-go/pkg/grid"
)

// evalClock implements "Clock": S = encode((ticks / max(rate,1)) mod
// max(mod,1)).
func evalClock(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)
	er, ec := east(row, col)
	sr, sc := south(row, col)

	ratePort, rate := listenDecoded(ctx, "rate", wr, wc, '1')
	modPort, mod := listenDecoded(ctx, "mod", er, ec, '8')

	rateN := maxInt(rate.V, 1)
	modN := maxInt(mod.V, 1)
	value := int(ctx.Ticks()) / rateN % modN
	result := codec.Encode(value, false)

	return []grid.Update{
		grid.Inputs(ratePort, modPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
	}
}

// evalDelay implements "Delay": S = '*' when ticks mod (rate·mod) = 0,
// else '.'.
func evalDelay(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)
	er, ec := east(row, col)
	sr, sc := south(row, col)

	ratePort, rate := listenDecoded(ctx, "rate", wr, wc, '1')
	modPort, mod := listenDecoded(ctx, "mod", er, ec, '8')

	step := maxInt(rate.V*mod.V, 1)
	result := rune(grid.Empty)
	if int(ctx.Ticks())%step == 0 {
		result = grid.Bang
	}

	return []grid.Update{
		grid.Inputs(ratePort, modPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
	}
}

// evalIf implements "If": S = '*' iff a=b, comparing the raw cell
// characters (no base-36 decoding, no default substitution).
func evalIf(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)
	er, ec := east(row, col)
	sr, sc := south(row, col)

	aPort := ctx.ListenRaw("a", wr, wc)
	bPort := ctx.ListenRaw("b", er, ec)

	result := rune(grid.Empty)
	if aPort.Value == bPort.Value {
		result = grid.Bang
	}

	return []grid.Update{
		grid.Inputs(aPort, bPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
	}
}

// evalHalt implements "Halt": locks the cell below it, preventing any
// operator there from evaluating or being written to this tick.
func evalHalt(ctx *grid.Context, row, col int) []grid.Update {
	sr, sc := south(row, col)
	return []grid.Update{
		grid.Locks(grid.Port{Label: "halt", Row: sr, Col: sc}),
	}
}

// evalJump implements "Jump": copies the cell to the north down to the
// cell to the south, passing a signal across its own row without using it.
func evalJump(ctx *grid.Context, row, col int) []grid.Update {
	nr, nc := north(row, col)
	sr, sc := south(row, col)

	inPort := ctx.ListenRaw("input", nr, nc)
	return []grid.Update{
		grid.Inputs(inPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: inPort.Value}),
	}
}

// evalJymp implements "Jymp": copies the cell to the west across to the
// cell to the east.
func evalJymp(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)
	er, ec := east(row, col)

	valPort := ctx.ListenRaw("val", wr, wc)
	return []grid.Update{
		grid.Inputs(valPort),
		grid.Outputs(grid.Port{Label: "output", Row: er, Col: ec, Value: valPort.Value}),
	}
}
