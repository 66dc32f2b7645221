package ssadriver

import "go/types"

// PointerLike reports whether values of type t can denote or reach heap
// storage. Only pointer-like values get elements in the tracker.
func PointerLike(t types.Type) bool {
	switch t := t.(type) {
	case *types.Pointer,
		*types.Map,
		*types.Chan,
		*types.Slice,
		*types.Interface,
		*types.Signature:
		return true
	case *types.Named:
		return PointerLike(t.Underlying())
	default:
		return false
	}
}
