package domain

import "time"

// Rank is a label a viewer earns by accruing watch time. A user qualifies
// for every rank whose requirement is at or below their watch time; the
// qualifying rank with the highest sorting is the one shown.
type Rank struct {
	ID          int32         `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Sorting     int32         `db:"sorting" json:"sorting"`
	Requirement time.Duration `db:"-" json:"-"`
}

func (r *Rank) RequirementSeconds() int64 {
	return int64(r.Requirement / time.Second)
}

func (r *Rank) RequirementNanos() int32 {
	return int32(r.Requirement % time.Second)
}

func (r *Rank) SetRequirement(seconds int64, nanos int32) {
	r.Requirement = time.Duration(seconds)*time.Second + time.Duration(nanos)
}
