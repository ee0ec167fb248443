package report

// Filter narrows the leave history export. Zero values mean "no constraint";
// Month selects every request whose period overlaps that calendar month.
type Filter struct {
	EmployeeID string
	Status     string
	Month      string // YYYY-MM
}

// Row is one denormalized line of the export, names resolved at query time.
type Row struct {
	ID             string `json:"id"`
	EmployeeName   string `json:"employee_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	LeaveType      string `json:"leave_type"`
	Status         string `json:"status"`
	ManagerName    string `json:"manager_name"`
	ManagerComment string `json:"manager_comment"`
}

// Summary backs the admin dashboard tiles.
type Summary struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	TotalRequests int64 `json:"total_requests"`
	Pending       int64 `json:"pending"`
	Approved      int64 `json:"approved"`
	Rejected      int64 `json:"rejected"`
	Cancelled     int64 `json:"cancelled"`
}
