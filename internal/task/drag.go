package task

import (
	"strconv"
	"sync"
)

// DropEffectMove is the affordance signalled while dragging over a valid
// drop zone.
const DropEffectMove = "move"

// DragSession holds the single "currently picked up" slot of the drag
// reclassification gesture. Picking up a second task replaces the first.
type DragSession struct {
	mu     sync.Mutex
	store  *Store
	picked int64
	active bool
}

func NewDragSession(store *Store) *DragSession {
	return &DragSession{store: store}
}

// PickUp records the task as picked up and returns the payload handed to
// the drag transport (the decimal id).
func (d *DragSession) PickUp(id int64) string {
	d.mu.Lock()
	d.picked = id
	d.active = true
	d.mu.Unlock()
	return strconv.FormatInt(id, 10)
}

// Picked returns the currently picked-up task id, if any.
func (d *DragSession) Picked() (int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.picked, d.active
}

// DragOver reports the affordance for hovering a drop zone. No state
// changes until Drop.
func (d *DragSession) DragOver() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return ""
	}
	return DropEffectMove
}

// Drop reclassifies the picked-up task to the target zone's completion
// state. The picked-up slot is cleared unconditionally, including when
// nothing was picked up or the state already matches.
func (d *DragSession) Drop(targetCompleted bool) {
	d.mu.Lock()
	id, ok := d.picked, d.active
	d.picked = 0
	d.active = false
	d.mu.Unlock()

	if !ok {
		return
	}
	d.store.MoveViaDrag(id, targetCompleted)
}
