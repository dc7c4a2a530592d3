package operator

import (
	"testing"

	"github.com/orcagrid/orca-go/pkg/codec"
	"github.com/orcagrid/orca-go/pkg/grid"
)

// TestAddWrapsModulo36 checks that Add's output is always the base-36
// digit of (a+b) mod 36, exhaustively over every pair of valid operand
// characters.
func TestAddWrapsModulo36(t *testing.T) {
	alphabet := "0123456789abcdefghijklmnopqrstuvwxyz"

	for _, a := range alphabet {
		for _, b := range alphabet {
			ctx := newCtx(t, []string{
				string([]rune{a, 'A', b}),
				"...",
			})
			apply(ctx, evalAdd(ctx, 0, 1))
			want := codec.Encode(codec.Decode(a).V+codec.Decode(b).V, false)
			if got := ctx.Read(1, 1); got != want {
				t.Errorf("Add(%q, %q) = %q, want %q", a, b, got, want)
			}
		}
	}
}

// TestMoveNeverLeavesTwoCopies checks the cardinal-mover invariant: a mover
// either relocates (leaving its old cell Empty) or bangs in place; it
// never duplicates itself.
func TestMoveNeverLeavesTwoCopies(t *testing.T) {
	for _, blocked := range []bool{false, true} {
		neighbor := string(grid.Empty)
		if blocked {
			neighbor = "X"
		}
		ctx := newCtx(t, []string{"E" + neighbor})
		apply(ctx, evalMoveEast(ctx, 0, 0))

		self := ctx.Read(0, 0)
		next := ctx.Read(0, 1)
		if blocked {
			if self != grid.Bang || next != 'X' {
				t.Errorf("blocked move: got (%q, %q), want (%q, %q)", self, next, grid.Bang, 'X')
			}
			continue
		}
		if self != grid.Empty || next != 'E' {
			t.Errorf("unblocked move: got (%q, %q), want (%q, %q)", self, next, grid.Empty, 'E')
		}
	}
}
