package projections

// Delta is a single named mutation against the view data. Handlers return
// a delta set instead of mutating views directly; the projector applies
// the whole set under one lock so a multi-view change (for example a
// comment deletion touching the comment view, the parent post and the
// author) can never be observed half-applied. Delta apply functions must
// not fail: all validation happens in the handler before any delta is
// emitted.
type Delta struct {
	op    string
	apply func(d *viewData)
}

// Op returns the delta's operation label, used for logging.
func (d Delta) Op() string {
	return d.op
}

func newDelta(op string, apply func(d *viewData)) Delta {
	return Delta{op: op, apply: apply}
}

// removeID drops the first occurrence of id from list, preserving order.
func removeID(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// containsID reports whether list holds id.
func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
