package model

// TimeStatus marks whether a timeline node is in the past.
type TimeStatus string

const (
	TimeStatusInactive TimeStatus = "inactive"
	TimeStatusActive   TimeStatus = "active"
)

// NodeOrientation is the side of the timeline a node is drawn on.
type NodeOrientation string

const (
	OrientationLeft  NodeOrientation = "left"
	OrientationRight NodeOrientation = "right"
)

// TimelineEntry is one meeting placed on the upcoming-events timeline.
type TimelineEntry struct {
	Meeting         Meeting         `json:"meeting"`
	TimeStatus      TimeStatus      `json:"time_status"`
	NodeOrientation NodeOrientation `json:"node_orientation"`
}
