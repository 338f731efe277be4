// Package optimistic overlays provisional lanes on top of the authoritative
// task list while status changes are in flight.
package optimistic

import "github.com/riordanpawley/laneboard/internal/domain"

// Ticket identifies one provisional move. It is handed back to Settle when
// the remote call for it resolves.
type Ticket struct {
	TaskID string
	Lane   domain.Lane
	Seq    uint64
}

type pendingMove struct {
	seq  uint64
	lane domain.Lane
}

type entry struct {
	// base is the authoritative lane captured when the first move was applied.
	base      domain.Lane
	pending   []pendingMove // in issue order
	confirmed domain.Lane   // lane of the last successful response to resolve
	settledAt uint64
}

// rendered is the lane the board shows for the task: the newest in-flight
// move, else the last confirmed response, else the snapshot.
func (e *entry) rendered() domain.Lane {
	if n := len(e.pending); n > 0 {
		return e.pending[n-1].lane
	}
	if e.confirmed != "" {
		return e.confirmed
	}
	return e.base
}

// Patch maps task ids to provisional lanes. It is not safe for concurrent
// use; all calls happen on the UI goroutine.
type Patch struct {
	clock   uint64
	entries map[string]*entry
}

// New creates an empty patch
func New() *Patch {
	return &Patch{entries: make(map[string]*entry)}
}

func (p *Patch) tick() uint64 {
	p.clock++
	return p.clock
}

// Apply overlays lane on taskID. authoritative is the task's lane in the
// store's data; it is only captured when no overlay exists for the task yet.
func (p *Patch) Apply(taskID string, authoritative, lane domain.Lane) Ticket {
	e, ok := p.entries[taskID]
	if !ok {
		e = &entry{base: authoritative}
		p.entries[taskID] = e
	}
	seq := p.tick()
	e.pending = append(e.pending, pendingMove{seq: seq, lane: lane})
	return Ticket{TaskID: taskID, Lane: lane, Seq: seq}
}

// Settle records the outcome of a ticket's remote call and returns the lane
// the task renders in afterwards.
//
// Responses are applied in the order they resolve, so the last response to
// arrive decides the confirmed lane even when its request was issued first.
// A failed response only withdraws its own move; once nothing is pending and
// nothing was confirmed the entry is dropped, which restores the snapshot.
func (p *Patch) Settle(t Ticket, ok bool) (domain.Lane, bool) {
	e, exists := p.entries[t.TaskID]
	if !exists {
		return "", false
	}

	found := false
	for i, m := range e.pending {
		if m.seq == t.Seq {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return e.rendered(), true
	}

	if ok {
		e.confirmed = t.Lane
	}
	e.settledAt = p.tick()

	lane := e.rendered()
	if len(e.pending) == 0 && e.confirmed == "" {
		delete(p.entries, t.TaskID)
	}
	return lane, true
}

// Lane returns the provisional lane for taskID
func (p *Patch) Lane(taskID string) (domain.Lane, bool) {
	e, ok := p.entries[taskID]
	if !ok {
		return "", false
	}
	return e.rendered(), true
}

// Pending returns how many moves for taskID are still in flight
func (p *Patch) Pending(taskID string) int {
	if e, ok := p.entries[taskID]; ok {
		return len(e.pending)
	}
	return 0
}

// Len returns the number of overlaid tasks
func (p *Patch) Len() int {
	return len(p.entries)
}

// Mark stamps the moment a refetch is issued. Pass the mark to Reconcile
// together with the refetch's result.
func (p *Patch) Mark() uint64 {
	return p.tick()
}

// Reconcile drops overlays the refetched data already reflects: entries with
// nothing in flight whose last response resolved before the refetch was
// issued. Entries with moves in flight keep their snapshot untouched.
func (p *Patch) Reconcile(tasks []domain.Task, mark uint64) {
	present := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
	}

	for id, e := range p.entries {
		if len(e.pending) > 0 {
			continue
		}
		if e.settledAt < mark || !present[id] {
			delete(p.entries, id)
		}
	}
}

// Overlay returns a copy of tasks with provisional lanes applied. The input
// is never modified.
func (p *Patch) Overlay(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	if len(p.entries) == 0 {
		return out
	}
	for i := range out {
		if e, ok := p.entries[out[i].ID]; ok {
			out[i].Status = e.rendered()
		}
	}
	return out
}
