package operator

import "github.com/orcagrid/orca-go/pkg/grid"

// moveDir implements the shared behaviour of the four cardinal mover
// operators: if the neighbour in the operator's direction is Empty, the
// operator's own character moves there and its own cell goes blank;
// otherwise the operator replaces itself with a bang. The neighbour cell
// is locked either way.
func moveDir(ctx *grid.Context, row, col, dr, dc int) []grid.Update {
	nr, nc := row+dr, col+dc
	self := ctx.Read(row, col)
	neighbor := ctx.Read(nr, nc)

	if neighbor == grid.Empty {
		return []grid.Update{
			grid.Outputs(
				grid.Port{Label: "self", Row: row, Col: col, Value: grid.Empty},
				grid.Port{Label: "move", Row: nr, Col: nc, Value: self},
			),
		}
	}
	return []grid.Update{
		grid.Outputs(grid.Port{Label: "self", Row: row, Col: col, Value: grid.Bang}),
		grid.Locks(grid.Port{Label: "move", Row: nr, Col: nc}),
	}
}

func evalMoveEast(ctx *grid.Context, row, col int) []grid.Update  { return moveDir(ctx, row, col, 0, 1) }
func evalMoveWest(ctx *grid.Context, row, col int) []grid.Update  { return moveDir(ctx, row, col, 0, -1) }
func evalMoveNorth(ctx *grid.Context, row, col int) []grid.Update { return moveDir(ctx, row, col, -1, 0) }
func evalMoveSouth(ctx *grid.Context, row, col int) []grid.Update { return moveDir(ctx, row, col, 1, 0) }
