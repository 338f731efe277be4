package drag

import "github.com/riordanpawley/laneboard/internal/domain"

// Kind tags which variant a Session is
type Kind int

const (
	KindColumn Kind = iota + 1
	KindTask
)

func (k Kind) String() string {
	switch k {
	case KindColumn:
		return "column"
	case KindTask:
		return "task"
	default:
		return "none"
	}
}

// Session is the record of an in-progress gesture. For KindColumn only Lane
// is set; for KindTask TaskID and SourceLane are set. Over is the current
// candidate drop target and may be empty.
type Session struct {
	Kind       Kind
	Lane       domain.Lane
	TaskID     string
	SourceLane domain.Lane
	Over       ID
}

// Active returns the element id being dragged
func (s Session) Active() ID {
	if s.Kind == KindColumn {
		return LaneID(s.Lane)
	}
	return TaskID(s.TaskID)
}

// Catalog answers which ids exist on the board right now.
type Catalog interface {
	HasLane(lane domain.Lane) bool
	// TaskLane returns the lane the task is currently rendered in.
	TaskLane(taskID string) (domain.Lane, bool)
}

// Controller owns the current drag session. The zero value is ready to use
// and has no session.
type Controller struct {
	session *Session
}

// Begin starts a session for id. It fails when a session is already running
// or id names nothing on the board.
func (c *Controller) Begin(id ID, catalog Catalog) bool {
	if c.session != nil {
		return false
	}

	if lane, ok := id.Lane(); ok {
		if !catalog.HasLane(lane) {
			return false
		}
		c.session = &Session{Kind: KindColumn, Lane: lane}
		return true
	}

	if taskID, ok := id.Task(); ok {
		lane, ok := catalog.TaskLane(taskID)
		if !ok {
			return false
		}
		c.session = &Session{Kind: KindTask, TaskID: taskID, SourceLane: lane}
		return true
	}

	return false
}

// UpdateTarget records the candidate drop target. It has no other effect.
func (c *Controller) UpdateTarget(over ID) {
	if c.session == nil {
		return
	}
	c.session.Over = over
}

// End clears the session and returns what it was. ok is false when no
// session was running.
func (c *Controller) End() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	s := *c.session
	c.session = nil
	return s, true
}

// Current returns the running session, if any
func (c *Controller) Current() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Active reports whether a session is running
func (c *Controller) Active() bool {
	return c.session != nil
}
