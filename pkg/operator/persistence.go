package operator

import "github.com/orcagrid/orca-go/pkg/grid"

// readName reads up to 8 east cells starting at (row, col+1) as a snippet or
// session name, stopping at the first Empty cell.
func readName(ctx *grid.Context, row, col int) ([]grid.Port, string) {
	var ports []grid.Port
	var name []rune
	for i := 1; i <= 8; i++ {
		p := ctx.ListenRaw("name", row, col+i)
		if p.Value == grid.Empty {
			break
		}
		ports = append(ports, p)
		name = append(name, p.Value)
	}
	return ports, string(name)
}

// evalSave implements "Save": on bang, requests that the named session be
// persisted. The save/load destination (file, in-memory store) is the
// Persistence collaborator's concern, not this operator's.
func evalSave(ctx *grid.Context, row, col int) []grid.Update {
	ports, name := readName(ctx, row, col)
	updates := []grid.Update{grid.Inputs(ports...)}
	if isBangAdjacent(ctx, row, col) && name != "" {
		updates = append(updates, grid.SaveRequest(name))
	}
	return updates
}

// evalLoad implements "Load": on bang, requests that the named session
// replace the grid.
func evalLoad(ctx *grid.Context, row, col int) []grid.Update {
	ports, name := readName(ctx, row, col)
	updates := []grid.Update{grid.Inputs(ports...)}
	if isBangAdjacent(ctx, row, col) && name != "" {
		updates = append(updates, grid.LoadRequest(name))
	}
	return updates
}

// evalSnipSave implements "Snip save": on bang, requests that the named
// snippet be persisted. Snippets share the Persistence collaborator's Save
// path; distinguishing a snippet namespace from a session namespace is the
// collaborator's responsibility, not this operator's.
func evalSnipSave(ctx *grid.Context, row, col int) []grid.Update {
	ports, name := readName(ctx, row, col)
	updates := []grid.Update{grid.Inputs(ports...)}
	if isBangAdjacent(ctx, row, col) && name != "" {
		updates = append(updates, grid.SaveRequest("snippets/"+name))
	}
	return updates
}

// evalSnipLoad implements "Snip load": on bang, requests that the named
// snippet be loaded.
func evalSnipLoad(ctx *grid.Context, row, col int) []grid.Update {
	ports, name := readName(ctx, row, col)
	updates := []grid.Update{grid.Inputs(ports...)}
	if isBangAdjacent(ctx, row, col) && name != "" {
		updates = append(updates, grid.LoadRequest("snippets/"+name))
	}
	return updates
}
