// Package layout holds the two persisted board view preferences: the order
// of the lane columns and which of them are visible. The two are independent;
// hiding a column never changes the relative order of the others.
package layout

import (
	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/prefs"
)

// Preference keys
const (
	KeyColumnOrder    = "board.columnOrder"
	KeyVisibleColumns = "board.visibleColumns"
)

// Columns is the column order and visibility state for one board.
type Columns struct {
	order   []domain.Lane
	visible map[domain.Lane]bool
	store   prefs.Store
	logger  logrus.FieldLogger
}

// Load reads both preferences from store. Missing or unreadable values fall
// back to the defaults (declaration order, everything visible).
func Load(store prefs.Store, logger logrus.FieldLogger) *Columns {
	c := &Columns{
		order:   domain.AllLanes(),
		visible: allVisible(),
		store:   store,
		logger:  logger,
	}

	if raw, ok := c.read(KeyColumnOrder); ok {
		if order, ok := decodeOrder(raw); ok {
			c.order = order
		} else {
			c.logger.WithField("key", KeyColumnOrder).Warn("ignoring corrupted column order")
		}
	}

	if raw, ok := c.read(KeyVisibleColumns); ok {
		if visible, ok := decodeVisible(raw); ok {
			c.visible = visible
		} else {
			c.logger.WithField("key", KeyVisibleColumns).Warn("ignoring corrupted column visibility")
		}
	}

	return c
}

// Order returns a copy of the full column order (always a permutation of
// every lane).
func (c *Columns) Order() []domain.Lane {
	out := make([]domain.Lane, len(c.order))
	copy(out, c.order)
	return out
}

// Visible reports whether lane is shown
func (c *Columns) Visible(lane domain.Lane) bool {
	return c.visible[lane]
}

// VisibleCount returns the number of shown lanes
func (c *Columns) VisibleCount() int {
	return len(c.visible)
}

// VisibleOrder is the column order filtered to visible lanes. It is what the
// board renders.
func (c *Columns) VisibleOrder() []domain.Lane {
	out := make([]domain.Lane, 0, len(c.visible))
	for _, lane := range c.order {
		if c.visible[lane] {
			out = append(out, lane)
		}
	}
	return out
}

// Toggle flips the visibility of lane. Hiding the last visible lane is a
// no-op. Returns whether anything changed.
func (c *Columns) Toggle(lane domain.Lane) bool {
	if !lane.Valid() {
		return false
	}
	if c.visible[lane] {
		if len(c.visible) == 1 {
			return false
		}
		delete(c.visible, lane)
	} else {
		c.visible[lane] = true
	}
	c.write(KeyVisibleColumns, encodeVisible(c.order, c.visible))
	return true
}

// Reorder moves from to the index currently held by to. Lanes in between
// shift by one; this is a move, not a swap. Returns whether the order changed.
func (c *Columns) Reorder(from, to domain.Lane) bool {
	next, ok := Move(c.order, from, to)
	if !ok {
		return false
	}
	c.order = next
	c.write(KeyColumnOrder, encodeOrder(c.order))
	return true
}

// ResetOrder restores declaration order and forgets the stored override.
func (c *Columns) ResetOrder() {
	c.order = domain.AllLanes()
	c.remove(KeyColumnOrder)
}

// ResetVisibility shows every lane again and forgets the stored override.
func (c *Columns) ResetVisibility() {
	c.visible = allVisible()
	c.remove(KeyVisibleColumns)
}

// Move returns order with from removed and re-inserted at the index to held.
// ok is false when either lane is missing or both share an index.
func Move(order []domain.Lane, from, to domain.Lane) ([]domain.Lane, bool) {
	oldIndex, newIndex := -1, -1
	for i, lane := range order {
		if lane == from {
			oldIndex = i
		}
		if lane == to {
			newIndex = i
		}
	}
	if oldIndex < 0 || newIndex < 0 || oldIndex == newIndex {
		return order, false
	}

	next := make([]domain.Lane, 0, len(order))
	next = append(next, order[:oldIndex]...)
	next = append(next, order[oldIndex+1:]...)

	tail := append([]domain.Lane{from}, next[newIndex:]...)
	next = append(next[:newIndex], tail...)
	return next, true
}

// read returns the stored value. Store failures are logged and read as
// absent so the board still opens with defaults.
func (c *Columns) read(key string) (string, bool) {
	v, ok, err := c.store.Get(key)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("failed to read board preference")
		return "", false
	}
	return v, ok
}

// write persists value. Failures leave the in-memory state authoritative for
// this session.
func (c *Columns) write(key, value string) {
	if err := c.store.Set(key, value); err != nil {
		c.logger.WithError(err).WithField("key", key).Error("failed to persist board preference")
	}
}

func (c *Columns) remove(key string) {
	if err := c.store.Remove(key); err != nil {
		c.logger.WithError(err).WithField("key", key).Error("failed to clear board preference")
	}
}

func allVisible() map[domain.Lane]bool {
	visible := make(map[domain.Lane]bool)
	for _, lane := range domain.AllLanes() {
		visible[lane] = true
	}
	return visible
}

func encodeOrder(order []domain.Lane) string {
	b, _ := sonic.ConfigStd.Marshal(order)
	return string(b)
}

// encodeVisible writes the visible set in column order so the stored value is
// stable for a given state.
func encodeVisible(order []domain.Lane, visible map[domain.Lane]bool) string {
	out := make([]domain.Lane, 0, len(visible))
	for _, lane := range order {
		if visible[lane] {
			out = append(out, lane)
		}
	}
	b, _ := sonic.ConfigStd.Marshal(out)
	return string(b)
}

// decodeOrder parses a stored order and repairs it into a permutation:
// unknown and duplicate lanes are dropped, lanes added since the value was
// written are appended in declaration order.
func decodeOrder(raw string) ([]domain.Lane, bool) {
	var stored []string
	if err := sonic.ConfigStd.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, false
	}

	seen := make(map[domain.Lane]bool)
	order := make([]domain.Lane, 0, len(domain.AllLanes()))
	for _, s := range stored {
		lane, ok := domain.ParseLane(s)
		if !ok || seen[lane] {
			continue
		}
		seen[lane] = true
		order = append(order, lane)
	}
	for _, lane := range domain.AllLanes() {
		if !seen[lane] {
			order = append(order, lane)
		}
	}
	return order, true
}

// decodeVisible parses a stored visible set. A set with no known lane is
// treated as corrupted: at least one column is always shown.
func decodeVisible(raw string) (map[domain.Lane]bool, bool) {
	var stored []string
	if err := sonic.ConfigStd.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, false
	}

	visible := make(map[domain.Lane]bool)
	for _, s := range stored {
		if lane, ok := domain.ParseLane(s); ok {
			visible[lane] = true
		}
	}
	if len(visible) == 0 {
		return nil, false
	}
	return visible, true
}
