package task

import "math"

type Stats struct {
	Total            int `json:"total"`
	NotStarted       int `json:"notStarted"`
	InProgress       int `json:"inProgress"`
	Completed        int `json:"completed"`
	CompletedPercent int `json:"completedPercent"`
}

// ComputeStats counts tasks per status; CompletedPercent is rounded and 0 for an empty list.
func ComputeStats(tasks []Task) Stats {
	var st Stats
	for _, t := range tasks {
		st.Total++
		switch t.Status {
		case StatusNotStarted:
			st.NotStarted++
		case StatusInProgress:
			st.InProgress++
		case StatusCompleted:
			st.Completed++
		}
	}
	if st.Total > 0 {
		st.CompletedPercent = int(math.Round(float64(st.Completed) * 100 / float64(st.Total)))
	}
	return st
}
