// Package ssadriver feeds an alias tracker from Go SSA form. It decides,
// per instruction, which elements to create, which pointer edges to link,
// which values escape to wildcards, and which instructions count as writes.
//
// The modelling is intentionally coarse and intraprocedural: anything that
// crosses a call boundary becomes a wildcard. The point is to produce a
// sound graph for one function, not a precise whole-program analysis.
package ssadriver

import (
	"go/token"

	log "github.com/sirupsen/logrus"
	"golang.org/x/tools/go/ssa"

	"github.com/irtools/alias"
)

// Tracker is the alias tracker instantiation used for Go SSA.
type Tracker = alias.Tracker[ssa.Value, ssa.Instruction]

// BuildFunction walks fun's instructions in order and returns the resulting
// tracker. Only pointer-like values participate; see PointerLike.
func BuildFunction(fun *ssa.Function) *Tracker {
	log.Debugf("building alias graph for %s", fun)

	t := alias.New[ssa.Value, ssa.Instruction]()

	// Parameters and free variables arrive from the caller with unknown
	// provenance.
	for _, param := range fun.Params {
		if PointerLike(param.Type()) {
			t.SetWildcard(param)
		}
	}
	for _, fv := range fun.FreeVars {
		if PointerLike(fv.Type()) {
			t.SetWildcard(fv)
		}
	}

	for _, block := range fun.Blocks {
		for _, insn := range block.Instrs {
			visit(t, insn)
		}
	}
	return t
}

func visit(t *Tracker, insn ssa.Instruction) {
	switch in := insn.(type) {
	case *ssa.Alloc:
		fresh(t, in)
	case *ssa.MakeChan:
		fresh(t, in)
	case *ssa.MakeMap:
		fresh(t, in)
	case *ssa.MakeSlice:
		fresh(t, in)
	case *ssa.MakeClosure:
		fresh(t, in)
	case *ssa.MakeInterface:
		fresh(t, in)

	case *ssa.Phi:
		if PointerLike(in.Type()) {
			// A join may alias the incoming value of every predecessor.
			for _, edge := range in.Edges {
				link(t, in, edge)
			}
		}

	case *ssa.UnOp:
		switch {
		case in.Op == token.MUL && PointerLike(in.Type()):
			// A load aliases the contents of its source.
			link(t, in, in.X)
		case in.Op == token.ARROW && PointerLike(in.Type()):
			// Received values have unknown provenance.
			t.SetWildcard(in)
		}

	case *ssa.FieldAddr:
		link(t, in, in.X)
	case *ssa.IndexAddr:
		link(t, in, in.X)
	case *ssa.Slice:
		link(t, in, in.X)
	case *ssa.SliceToArrayPointer:
		link(t, in, in.X)
	case *ssa.ChangeType:
		if PointerLike(in.Type()) {
			link(t, in, in.X)
		}
	case *ssa.ChangeInterface:
		link(t, in, in.X)
	case *ssa.Convert:
		if PointerLike(in.Type()) {
			if PointerLike(in.X.Type()) {
				link(t, in, in.X)
			} else {
				// Conversion from a non-pointer (e.g. unsafe.Pointer
				// arithmetic result) acts like a new allocation.
				fresh(t, in)
			}
		}
	case *ssa.Lookup:
		if PointerLike(in.Type()) {
			link(t, in, in.X)
		}

	case *ssa.Store:
		registerWrite(t, in.Addr, in)
	case *ssa.Send:
		registerWrite(t, in.Chan, in)
	case *ssa.MapUpdate:
		registerWrite(t, in.Map, in)

	case ssa.CallInstruction:
		common := in.Common()
		// Anything passed to an opaque call escapes, and the callee may
		// write through it.
		for _, arg := range common.Args {
			if PointerLike(arg.Type()) {
				t.SetWildcard(arg)
				t.RegisterWrite(arg, insn)
			}
		}
		if v := in.Value(); v != nil && PointerLike(v.Type()) {
			t.SetWildcard(v)
		}

	default:
		if v, ok := insn.(ssa.Value); ok && PointerLike(v.Type()) &&
			!t.Contains(v) && !t.IsWildcard(v) {
			log.Debugf("treating %s = %v as wildcard", v.Name(), v)
			t.SetWildcard(v)
		}
	}
}

// fresh gives v an element unless one already exists. A phi on a loop head
// can name a value defined later in visit order; link then creates the
// element ahead of the defining instruction, and re-associating here would
// sever that edge and under-report aliasing. SSA values are defined once,
// so an existing element can only be such a forward reference.
func fresh(t *Tracker, v ssa.Value) {
	if !t.Contains(v) {
		t.MakeFreshValue(v)
	}
}

// link records a pointer edge from v to the value it is derived from.
// Derivations of a wildcard are wildcards themselves; they never enter the
// graph.
func link(t *Tracker, v, to ssa.Value) {
	if t.IsWildcard(to) {
		t.SetWildcard(v)
		return
	}
	t.MakePointerTo(v, to)
}

// registerWrite tracks v on first use. Write targets can be values the
// driver never modelled (globals, in particular).
func registerWrite(t *Tracker, v ssa.Value, n ssa.Instruction) {
	if !t.IsWildcard(v) && !t.Contains(v) {
		t.MakeFreshValue(v)
	}
	t.RegisterWrite(v, n)
}
