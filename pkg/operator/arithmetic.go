package operator

import (
	"github.com/orcagrid/orca-go/pkg/codec"
	"github.com/orcagrid/orca-go/pkg/grid"
)

// evalAdd implements "Add": S = encode(a+b mod 36, upper∨).
func evalAdd(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)
	er, ec := east(row, col)
	sr, sc := south(row, col)

	aPort, a := listenDecoded(ctx, "a", wr, wc, '0')
	bPort, b := listenDecoded(ctx, "b", er, ec, '0')

	result := codec.Encode(a.V+b.V, upperEither(a, b))
	return []grid.Update{
		grid.Inputs(aPort, bPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
	}
}

// evalSub implements "Sub": S = encode(|a-b|, upper∨).
func evalSub(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)
	er, ec := east(row, col)
	sr, sc := south(row, col)

	aPort, a := listenDecoded(ctx, "a", wr, wc, '0')
	bPort, b := listenDecoded(ctx, "b", er, ec, '0')

	result := codec.Encode(absInt(a.V-b.V), upperEither(a, b))
	return []grid.Update{
		grid.Inputs(aPort, bPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
	}
}

// evalMultiply implements "Multiply": S = encode(saturating a·b) — the
// product is clamped to 35 rather than wrapped, unlike every other
// arithmetic operator.
func evalMultiply(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)
	er, ec := east(row, col)
	sr, sc := south(row, col)

	aPort, a := listenDecoded(ctx, "a", wr, wc, '0')
	bPort, b := listenDecoded(ctx, "b", er, ec, '0')

	product := minInt(a.V*b.V, 35)
	result := codec.Encode(product, upperEither(a, b))
	return []grid.Update{
		grid.Inputs(aPort, bPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
	}
}

// evalLesser implements "Lesser": S = min(a,b) when both operands are
// present (not Empty); otherwise the output is the nul character.
func evalLesser(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)
	er, ec := east(row, col)
	sr, sc := south(row, col)

	aPort := ctx.ListenRaw("a", wr, wc)
	bPort := ctx.ListenRaw("b", er, ec)

	var result rune
	if aPort.Value == grid.Empty || bPort.Value == grid.Empty {
		result = grid.Nul
	} else {
		a := codec.Decode(aPort.Value)
		b := codec.Decode(bPort.Value)
		result = codec.Encode(minInt(a.V, b.V), upperEither(a, b))
	}
	return []grid.Update{
		grid.Inputs(aPort, bPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
	}
}

// evalIncrement implements "Increment": S = (S_prev + step) mod max(mod,1).
func evalIncrement(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)
	er, ec := east(row, col)
	sr, sc := south(row, col)

	stepPort, step := listenDecoded(ctx, "step", wr, wc, '1')
	modPort, mod := listenDecoded(ctx, "mod", er, ec, 'z')
	prev := decodeAt(ctx, sr, sc)

	modulus := maxInt(mod.V, 1)
	next := (prev.V + step.V) % modulus
	result := codec.Encode(next, step.Upper || mod.Upper)

	return []grid.Update{
		grid.Inputs(stepPort, modPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
	}
}

// evalInterpolate implements "Interpolate": S = min(S_prev + rate, target).
func evalInterpolate(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)
	er, ec := east(row, col)
	sr, sc := south(row, col)

	ratePort, rate := listenDecoded(ctx, "rate", wr, wc, '0')
	targetPort, target := listenDecoded(ctx, "target", er, ec, '0')
	prev := decodeAt(ctx, sr, sc)

	next := minInt(prev.V+rate.V, target.V)
	result := codec.Encode(next, target.Upper)

	return []grid.Update{
		grid.Inputs(ratePort, targetPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
	}
}
