package model

import "time"

// StatSample is one time-bucketed statistics record for an entity. Sum is
// the cumulative meter reading at the bucket; Change is the per-bucket
// increment. Either field may be absent depending on what the host records.
type StatSample struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Sum    *float64  `json:"sum,omitempty"`
	Change *float64  `json:"change,omitempty"`
}

// EntityValues maps an entity id to its aggregated net change over the
// active window. Recomputed from scratch on every refresh; the window
// itself defines validity, so values are never cached across windows.
type EntityValues map[string]float64

// EntityStates maps an entity id to its current state string, used for
// rate entities whose state is a price per unit.
type EntityStates map[string]string
