package operator

import (
	"math/rand"

	"github.com/orcagrid/orca-go/pkg/codec"
	"github.com/orcagrid/orca-go/pkg/grid"
)

// evalRandom implements "Random": S = uniform int in [min, max), with max
// raised to min+1 when it is not already greater.
func evalRandom(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)
	er, ec := east(row, col)
	sr, sc := south(row, col)

	minPort, minV := listenDecoded(ctx, "min", wr, wc, '0')
	maxPort, maxV := listenDecoded(ctx, "max", er, ec, '0')

	hi := maxV.V
	if hi <= minV.V {
		hi = minV.V + 1
	}
	value := minV.V + rand.Intn(hi-minV.V)
	result := codec.Encode(value, false)

	return []grid.Update{
		grid.Inputs(minPort, maxPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
	}
}

// evalEuclid implements "Euclid": S = '*' iff ((density·(ticks+rotation))
// mod length) < density.
func evalEuclid(ctx *grid.Context, row, col int) []grid.Update {
	wr, wc := west(row, col)

	densityPort, density := listenDecoded(ctx, "density", wr, wc, '1')
	lengthPort, length := listenDecoded(ctx, "length", row, col+1, '8')
	rotationPort, rotation := listenDecoded(ctx, "rotation", row, col+2, '0')
	sr, sc := south(row, col)

	mod := maxInt(length.V, 1)
	phase := (density.V * (int(ctx.Ticks()) + rotation.V)) % mod

	result := rune(grid.Empty)
	if phase < density.V {
		result = grid.Bang
	}

	return []grid.Update{
		grid.Inputs(densityPort, lengthPort, rotationPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
	}
}

// evalBernoulli implements "Bernoulli": on bang, emits S='*' with
// probability p/10; otherwise emits a bang into the cell east of S.
func evalBernoulli(ctx *grid.Context, row, col int) []grid.Update {
	pPort, p := listenDecoded(ctx, "p", row, col+1, '5')
	sr, sc := south(row, col)

	if isBangAdjacent(ctx, row, col) {
		result := rune(grid.Empty)
		if rand.Intn(10) < p.V {
			result = grid.Bang
		}
		return []grid.Update{
			grid.Inputs(pPort),
			grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc, Value: result}),
		}
	}

	return []grid.Update{
		grid.Inputs(pPort),
		grid.Outputs(grid.Port{Label: "output", Row: sr, Col: sc + 1, Value: grid.Bang}),
	}
}
