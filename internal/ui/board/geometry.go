package board

import "github.com/riordanpawley/laneboard/internal/drag"

// Board layout, in terminal cells. Each column is a header row followed by a
// bordered body. Inside the body every card is preceded by a one-row gap,
// which is where the drop marker is drawn, so cards never shift while a drag
// is hovering.
const (
	headerHeight = 1
	bodyTop      = headerHeight + 1 // header plus the body's top border
	cardHeight   = 4                // border, title, badges, border
	cardStride   = cardHeight + 1   // gap row plus card
	cardInset    = 2                // body border plus padding
)

// columnLayout is the measured position of one column.
type columnLayout struct {
	header drag.Rect
	body   drag.Rect
	slot   drag.Rect // where an appended card would land
	cards  []drag.Rect
	hidden int // tasks that did not fit
}

// Geometry is the measured layout of a board. It only depends on the columns
// and the board size, so it is stable while a drag hovers.
type Geometry struct {
	columns []Column
	layouts []columnLayout
	width   int
}

// Measure computes the layout Render draws for columns at the given size.
func Measure(columns []Column, width, height int) Geometry {
	g := Geometry{columns: columns}
	if len(columns) == 0 || width <= 0 || height <= 0 {
		return g
	}

	colWidth := width / len(columns)
	g.width = colWidth
	inner := max(height-bodyTop-1, 0)
	capacity := inner / cardStride
	innerWidth := max(colWidth-2*cardInset, 1)

	for i, col := range columns {
		x := i * colWidth
		l := columnLayout{
			header: drag.NewRect(x, 0, colWidth, headerHeight),
			body:   drag.NewRect(x, headerHeight, colWidth, max(height-headerHeight, 0)),
		}

		shown := len(col.Tasks)
		if shown > capacity {
			// Keep a row for the "+N more" line.
			shown = max(capacity-1, 0)
		}
		l.hidden = len(col.Tasks) - shown

		for j := 0; j < shown; j++ {
			l.cards = append(l.cards, drag.NewRect(x+cardInset, cardTop(j), innerWidth, cardHeight))
		}

		slotY := cardTop(shown)
		if bottom := height - 1; slotY+cardHeight > bottom {
			slotY = max(bottom-cardHeight, bodyTop)
		}
		l.slot = drag.NewRect(x+cardInset, slotY, innerWidth, cardHeight)

		g.layouts = append(g.layouts, l)
	}
	return g
}

// cardTop is the row of card j's top border.
func cardTop(j int) int {
	return bodyTop + j*cardStride + 1
}

// ColumnWidth is the width of every column
func (g Geometry) ColumnWidth() int {
	return g.width
}

// Hit maps a point to the draggable under it: a card, or a column via its
// header. Empty body space hits nothing.
func (g Geometry) Hit(p drag.Point) (drag.ID, drag.Rect, bool) {
	for i, l := range g.layouts {
		if l.header.Contains(p) {
			return drag.LaneID(g.columns[i].Lane), l.header, true
		}
		for j, r := range l.cards {
			if r.Contains(p) {
				return drag.TaskID(g.columns[i].Tasks[j].ID), r, true
			}
		}
	}
	return "", drag.Rect{}, false
}

// ColumnAt returns the index of the column containing p.
func (g Geometry) ColumnAt(p drag.Point) (int, bool) {
	for i, l := range g.layouts {
		if l.header.Contains(p) || l.body.Contains(p) {
			return i, true
		}
	}
	return 0, false
}

// Droppables lists the drop candidates for a drag of the given kind. Column
// drags target headers; task drags target cards and each column's append
// slot.
func (g Geometry) Droppables(kind drag.Kind) []drag.Droppable {
	var out []drag.Droppable
	for i, l := range g.layouts {
		lane := g.columns[i].Lane
		switch kind {
		case drag.KindColumn:
			out = append(out, drag.Droppable{ID: drag.LaneID(lane), Rect: l.header})
		case drag.KindTask:
			for j, r := range l.cards {
				out = append(out, drag.Droppable{ID: drag.TaskID(g.columns[i].Tasks[j].ID), Rect: r})
			}
			out = append(out, drag.Droppable{ID: drag.LaneID(lane), Rect: l.slot})
		}
	}
	return out
}
