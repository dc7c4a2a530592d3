package operator

import (
	"github.com/orcagrid/orca-go/pkg/codec"
	"github.com/orcagrid/orca-go/pkg/grid"
)

// rel resolves a (row, col) offset relative to an operator's own cell.
func rel(row, col, dr, dc int) (int, int) { return row + dr, col + dc }

// west, east, north, south are the four immediate neighbours.
func west(row, col int) (int, int)  { return rel(row, col, 0, -1) }
func east(row, col int) (int, int)  { return rel(row, col, 0, 1) }
func north(row, col int) (int, int) { return rel(row, col, -1, 0) }
func south(row, col int) (int, int) { return rel(row, col, 1, 0) }

// decodeAt reads (r, c) and decodes it as a base-36 value.
func decodeAt(ctx *grid.Context, r, c int) codec.Value {
	return codec.Decode(ctx.Read(r, c))
}

// listenDecoded listens at (r, c) with a default char, decoding the result.
func listenDecoded(ctx *grid.Context, label string, r, c int, def rune) (grid.Port, codec.Value) {
	p := ctx.Listen(label, r, c, def)
	return p, codec.Decode(p.Value)
}

// upperEither reports whether either operand was written in uppercase;
// Add/Sub use this to decide whether their output is upper or lowercase.
func upperEither(a, b codec.Value) bool { return a.Upper || b.Upper }

// isBangAdjacent reports whether the cell is adjacent to a bang, per
// grid.Context.BangAdjacent. This is the shared "on bang" test used by
// every bang-gated operator.
func isBangAdjacent(ctx *grid.Context, row, col int) bool {
	return ctx.BangAdjacent(row, col)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
