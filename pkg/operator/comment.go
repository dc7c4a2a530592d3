package operator

import "github.com/orcagrid/orca-go/pkg/grid"

// evalComment implements "Comment": locks every cell from itself up to and
// including the next '#' found scanning east along the same row, so that
// text between a pair of '#' markers is never interpreted as operators.
func evalComment(ctx *grid.Context, row, col int) []grid.Update {
	end := col
	for c := col + 1; ; c++ {
		ch := ctx.Read(row, c)
		if ch == grid.Nul {
			break
		}
		end = c
		if ch == '#' {
			break
		}
	}

	var locks []grid.Port
	for c := col; c <= end; c++ {
		locks = append(locks, grid.Port{Label: "comment", Row: row, Col: c})
	}
	return []grid.Update{grid.Locks(locks...)}
}
