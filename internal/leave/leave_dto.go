package leave

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=SICK CASUAL EARNED"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type EditLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=SICK CASUAL EARNED"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type DecideLeaveRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comment  string `json:"comment"`
}

type LeaveResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	LeaveType      string  `json:"leave_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalDays      int     `json:"total_days"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	ManagerID      *string `json:"manager_id,omitempty"`
	ManagerComment *string `json:"manager_comment,omitempty"`
	DecidedAt      *string `json:"decided_at,omitempty"`
}
