package font_catalog

import (
	"slices"
)

type DragState int

const (
	DragIdle DragState = iota
	DragActive
)

func (s DragState) String() string {
	if s == DragActive {
		return "dragging"
	}
	return "idle"
}

// DragController tracks one reorder gesture over the favorites list. While a
// drag is active the list is rendered from the snapshot taken at StartDrag;
// Drop always reorders the persisted order it is given.
type DragController struct {
	state   DragState
	dragged string
	over    string
	frozen  []GroupedFamily
}

func (d *DragController) State() DragState { return d.state }
func (d *DragController) Dragged() string  { return d.dragged }
func (d *DragController) Hover() string    { return d.over }

func (d *DragController) StartDrag(family string, resolved []GroupedFamily) {
	d.state = DragActive
	d.dragged = family
	d.over = ""
	d.frozen = slices.Clone(resolved)
}

// DragOver records the hover target. Hovering the dragged family itself, or
// the current target again, changes nothing.
func (d *DragController) DragOver(family string) {
	if d.state != DragActive {
		return
	}
	if family != d.over && family != d.dragged {
		d.over = family
	}
}

// DragLeave clears the hover target unless the pointer only moved into a
// child of the drop surface.
func (d *DragController) DragLeave(intoChild bool) {
	if d.state != DragActive || intoChild {
		return
	}
	d.over = ""
}

// Drop moves the dragged family to the hover target's position in order. It
// reports false, and returns order untouched, when the drop is not valid.
func (d *DragController) Drop(order []string) ([]string, bool) {
	defer d.EndDrag()

	if d.state != DragActive || d.over == "" || d.over == d.dragged {
		return order, false
	}

	draggedIndex := slices.Index(order, d.dragged)
	targetIndex := slices.Index(order, d.over)
	if draggedIndex == -1 || targetIndex == -1 {
		return order, false
	}

	reordered := slices.Delete(slices.Clone(order), draggedIndex, draggedIndex+1)
	insertIndex := targetIndex
	if targetIndex > draggedIndex {
		insertIndex = targetIndex - 1
	}
	reordered = slices.Insert(reordered, insertIndex, d.dragged)

	return reordered, true
}

func (d *DragController) EndDrag() {
	d.state = DragIdle
	d.dragged = ""
	d.over = ""
	d.frozen = nil
}

// Display returns the order to render: the frozen snapshot during a drag,
// live otherwise.
func (d *DragController) Display(live []GroupedFamily) []GroupedFamily {
	if d.state == DragActive {
		return d.frozen
	}
	return live
}
