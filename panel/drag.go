package panel

// DragSession tracks one pointer drag on the divider between panel Index and
// Index+1. Moves are applied as deltas since the last committed event, so a
// run of small moves accumulates into the same total transfer as one large
// move.
type DragSession struct {
	layout  *Layout
	index   int
	lastX   float64
	active  bool
	onBegin func()
	onEnd   func()
}

// DragHooks carry the global UI affordances toggled for the duration of a
// drag (resize cursor, text-selection suppression). Either hook may be nil.
type DragHooks struct {
	OnBegin func()
	OnEnd   func()
}

// BeginDrag starts a drag session on the divider between panel index and
// index+1, anchored at the pointer's current x position.
func (l *Layout) BeginDrag(index int, startX float64, hooks DragHooks) *DragSession {
	session := &DragSession{
		layout:  l,
		index:   index,
		lastX:   startX,
		active:  true,
		onBegin: hooks.OnBegin,
		onEnd:   hooks.OnEnd,
	}
	if session.onBegin != nil {
		session.onBegin()
	}
	return session
}

// Move feeds the pointer's current x position into the session. The delta
// since the last committed event is proposed to the layout; a rejected
// proposal keeps the anchor so the outstanding delta carries into the next
// move instead of being lost.
func (d *DragSession) Move(x float64) {
	if !d.active {
		return
	}
	delta := x - d.lastX
	if delta == 0 {
		return
	}
	if d.layout.Resize(d.index, delta) {
		d.lastX = x
	}
}

// End finishes the session and restores the UI affordances. It is safe to
// call more than once and regardless of where the pointer-up landed.
func (d *DragSession) End() {
	if !d.active {
		return
	}
	d.active = false
	if d.onEnd != nil {
		d.onEnd()
	}
}

// Active reports whether the session is still receiving moves.
func (d *DragSession) Active() bool {
	return d.active
}
