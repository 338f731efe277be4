package domain

// Lane is a fixed status category. It is both the identity of a board column
// and the key tasks are grouped by.
type Lane string

const (
	LaneBacklog    Lane = "backlog"
	LaneTodo       Lane = "todo"
	LaneInProgress Lane = "in_progress"
	LanePaused     Lane = "paused"
	LaneInReview   Lane = "in_review"
	LaneDone       Lane = "done"
	LaneCancelled  Lane = "cancelled"
)

// lanes is the declaration order, which is also the default column order.
var lanes = []Lane{
	LaneBacklog,
	LaneTodo,
	LaneInProgress,
	LanePaused,
	LaneInReview,
	LaneDone,
	LaneCancelled,
}

var laneLabels = map[Lane]string{
	LaneBacklog:    "Backlog",
	LaneTodo:       "To Do",
	LaneInProgress: "In Progress",
	LanePaused:     "Paused",
	LaneInReview:   "In Review",
	LaneDone:       "Done",
	LaneCancelled:  "Cancelled",
}

// AllLanes returns every lane in declaration order. The returned slice is a
// fresh copy.
func AllLanes() []Lane {
	out := make([]Lane, len(lanes))
	copy(out, lanes)
	return out
}

// ParseLane returns the lane named by s.
func ParseLane(s string) (Lane, bool) {
	l := Lane(s)
	if _, ok := laneLabels[l]; ok {
		return l, true
	}
	return "", false
}

// Valid reports whether l is one of the declared lanes.
func (l Lane) Valid() bool {
	_, ok := laneLabels[l]
	return ok
}

// Label returns the display label for the lane
func (l Lane) Label() string {
	if label, ok := laneLabels[l]; ok {
		return label
	}
	return string(l)
}

// Index returns the lane's position in declaration order, or -1.
func (l Lane) Index() int {
	for i, candidate := range lanes {
		if candidate == l {
			return i
		}
	}
	return -1
}

// String returns the display string
func (l Lane) String() string {
	return string(l)
}

// IndexIn returns the lane's position in order, or -1.
func (l Lane) IndexIn(order []Lane) int {
	for i, candidate := range order {
		if candidate == l {
			return i
		}
	}
	return -1
}
