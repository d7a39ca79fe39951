package dashboard

// CountsResponse is the headline numbers on the HR dashboard
type CountsResponse struct {
	Employees       int64 `json:"employees"`
	HRs             int64 `json:"hrs"`
	PendingLeave    int64 `json:"pending_leave_requests"`
	CheckedInToday  int64 `json:"checked_in_today"`
	Departments     int64 `json:"departments"`
	ContractsEnding int64 `json:"contracts_ending_30_days"`
}

// GroupCount is one bar of a grouped summary
type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type GenderSummaryResponse struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
}

type DepartmentSummaryResponse struct {
	Departments []GroupCount `json:"departments"`
}
