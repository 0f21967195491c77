package domain

import "time"

// TimeEntry is one completed, immutable work interval. Timestamps are
// milliseconds since the Unix epoch, matching the tracker wire format.
type TimeEntry struct {
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Note  string `json:"note"`
}

// Seconds returns the entry duration in seconds.
func (e TimeEntry) Seconds() float64 {
	return float64(e.End-e.Start) / 1000
}

// EndTime returns the entry end as wall-clock time.
func (e TimeEntry) EndTime() time.Time {
	return time.UnixMilli(e.End)
}

// Project is a trackable unit of billable (or free) work. TotalSeconds
// reflects committed entries only; a running interval is derived from
// StartTime on demand and never written back until the timer stops.
type Project struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	TotalSeconds float64     `json:"totalSeconds"`
	IsActive     bool        `json:"isActive"`
	IsFree       bool        `json:"isFree"`
	StartTime    *int64      `json:"startTime"`
	CreatedAt    time.Time   `json:"createdAt"`
	TimeEntries  []TimeEntry `json:"timeEntries"`
}

// Running reports whether a timer is currently running on the project.
func (p *Project) Running() bool { return p.StartTime != nil }

// EntrySeconds sums the duration of all committed entries.
func (p *Project) EntrySeconds() float64 {
	var total float64
	for _, e := range p.TimeEntries {
		total += e.Seconds()
	}
	return total
}

// DisplaySeconds returns TotalSeconds plus the elapsed part of a running
// interval. Display only; TotalSeconds stays the source of truth.
func (p *Project) DisplaySeconds(now time.Time) float64 {
	if p.StartTime == nil {
		return p.TotalSeconds
	}
	elapsed := float64(now.UnixMilli()-*p.StartTime) / 1000
	if elapsed < 0 {
		elapsed = 0
	}
	return p.TotalSeconds + elapsed
}

// Cost converts the accumulated time into currency at the given hourly rate.
func (p *Project) Cost(hourlyRate float64) float64 {
	return p.TotalSeconds / 3600 * hourlyRate
}
