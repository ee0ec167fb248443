package report

import (
	"context"
	"time"

	"go-elms/internal/leave"
	"go-elms/internal/user"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	FindRows(ctx context.Context, f Filter) ([]Row, error)
	CountSummary(ctx context.Context) (Summary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type rowScan struct {
	ID             string
	EmployeeName   string
	StartDate      time.Time
	EndDate        time.Time
	LeaveType      string
	Status         string
	ManagerName    string
	ManagerComment string
}

func (r *repository) FindRows(ctx context.Context, f Filter) ([]Row, error) {
	q := r.db.WithContext(ctx).
		Table("leave_requests AS l").
		Select(`l.id::text AS id,
			e.name AS employee_name,
			l.start_date,
			l.end_date,
			l.leave_type,
			l.status,
			COALESCE(m.name, '') AS manager_name,
			COALESCE(l.manager_comment, '') AS manager_comment`).
		Joins("JOIN users e ON e.id = l.employee_id").
		Joins("LEFT JOIN users m ON m.id = l.manager_id").
		Order("l.start_date DESC")

	if f.EmployeeID != "" {
		q = q.Where("l.employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		q = q.Where("l.status = ?", f.Status)
	}
	if f.Month != "" {
		monthStart, err := time.Parse("2006-01", f.Month)
		if err != nil {
			return nil, err
		}
		monthEnd := monthStart.AddDate(0, 1, -1)
		q = q.Where("NOT (l.end_date < ? OR l.start_date > ?)", monthStart, monthEnd)
	}

	var scans []rowScan
	if err := q.Scan(&scans).Error; err != nil {
		return nil, err
	}

	rows := make([]Row, len(scans))
	for i, s := range scans {
		rows[i] = Row{
			ID:             s.ID,
			EmployeeName:   s.EmployeeName,
			StartDate:      s.StartDate.Format(dateLayout),
			EndDate:        s.EndDate.Format(dateLayout),
			LeaveType:      s.LeaveType,
			Status:         s.Status,
			ManagerName:    s.ManagerName,
			ManagerComment: s.ManagerComment,
		}
	}
	return rows, nil
}

func (r *repository) CountSummary(ctx context.Context) (Summary, error) {
	var s Summary
	db := r.db.WithContext(ctx)

	if err := db.Model(&user.User{}).Count(&s.TotalUsers).Error; err != nil {
		return Summary{}, err
	}
	if err := db.Model(&user.User{}).Where("is_active = ?", true).Count(&s.ActiveUsers).Error; err != nil {
		return Summary{}, err
	}
	if err := db.Model(&leave.LeaveRequest{}).Count(&s.TotalRequests).Error; err != nil {
		return Summary{}, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := db.Model(&leave.LeaveRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return Summary{}, err
	}

	for _, c := range counts {
		switch c.Status {
		case leave.StatusPending:
			s.Pending = c.Count
		case leave.StatusApproved:
			s.Approved = c.Count
		case leave.StatusRejected:
			s.Rejected = c.Count
		case leave.StatusCancelled:
			s.Cancelled = c.Count
		}
	}
	return s, nil
}
