// Package operator implements the ~30 pure grid evaluators and the
// symbol→operator registry that dispatches a cell's character to
// one of them. Every evaluator is a pure function of (context, row, col)
// that returns the Updates the tick evaluator should apply; no evaluator
// mutates the grid directly.
package operator

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/orcagrid/orca-go/pkg/grid"
)

// EvalFunc reads the grid at (row, col) and returns the Updates this
// evaluation produces.
type EvalFunc func(ctx *grid.Context, row, col int) []grid.Update

// Kind distinguishes when a descriptor's evaluator is invoked by the tick
// evaluator.
type Kind int

const (
	// TickKind operators run in the first pass, every tick, unless their
	// own cell is locked.
	TickKind Kind = iota
	// BangKind operators run in the second pass, only when adjacent to a
	// bang and unlocked — the lowercase twin of an uppercase letter
	// operator.
	BangKind
)

// Descriptor names one operator: its canonical name (used by the symbol
// configuration file), its evaluator, and which pass invokes it.
type Descriptor struct {
	Name string
	Kind Kind
	Eval EvalFunc
}

// Registry maps a single display character to a Descriptor. The mapping
// from symbol to canonical name is user-configurable; the canonical
// descriptors themselves are fixed.
type Registry struct {
	descriptors map[string]*Descriptor // canonical name -> descriptor
	symbols     map[rune]string        // display symbol -> canonical name
}

// NewDefaultRegistry builds the registry with the built-in symbol table:
// the 26 letter operators (each registered under both its uppercase tick
// symbol and its lowercase bang-twin), and the non-letter special
// operators.
func NewDefaultRegistry() *Registry {
	r := &Registry{
		descriptors: make(map[string]*Descriptor),
		symbols:     make(map[rune]string),
	}
	for _, d := range letterOperators() {
		r.registerLetter(d)
	}
	for _, sd := range specialOperators() {
		r.registerSpecial(sd.symbol, sd.descriptor)
	}
	return r
}

type letterDescriptor struct {
	upper rune
	name  string
	eval  EvalFunc
}

type specialDescriptor struct {
	symbol     rune
	descriptor *Descriptor
}

func (r *Registry) registerLetter(ld letterDescriptor) {
	tickName := ld.name
	r.descriptors[tickName] = &Descriptor{Name: tickName, Kind: TickKind, Eval: ld.eval}
	r.symbols[ld.upper] = tickName

	bangName := ld.name + "Bang"
	lower := ld.upper - 'A' + 'a'
	r.descriptors[bangName] = &Descriptor{Name: bangName, Kind: BangKind, Eval: ld.eval}
	r.symbols[lower] = bangName
}

func (r *Registry) registerSpecial(symbol rune, d *Descriptor) {
	r.descriptors[d.Name] = d
	r.symbols[symbol] = d.Name
}

// Lookup returns the descriptor bound to symbol, if any.
func (r *Registry) Lookup(symbol rune) (*Descriptor, bool) {
	name, ok := r.symbols[symbol]
	if !ok {
		return nil, false
	}
	d, ok := r.descriptors[name]
	return d, ok
}

// LoadSymbolConfig parses a text file of "<SYMBOL> <Name>" lines, one per
// line, and rebinds those symbols to the named canonical descriptor. A
// name with no matching descriptor is an error; a missing file is not
// handled here — callers fall back to the default symbol table instead.
func (r *Registry) LoadSymbolConfig(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open operator config %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("operator config %s:%d: expected '<SYMBOL> <Name>', got %q", path, lineNo, line)
		}
		symRunes := []rune(fields[0])
		if len(symRunes) != 1 {
			return fmt.Errorf("operator config %s:%d: symbol must be a single character, got %q", path, lineNo, fields[0])
		}
		name := fields[1]
		if _, ok := r.descriptors[name]; !ok {
			return fmt.Errorf("operator config %s:%d: unknown operator name %q", path, lineNo, name)
		}
		r.symbols[symRunes[0]] = name
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read operator config %s: %w", path, err)
	}
	return nil
}
