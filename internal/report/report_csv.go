package report

import (
	"bytes"
	"encoding/csv"
)

var csvHeader = []string{"ID", "Employee", "Start Date", "End Date", "Type", "Status", "Manager", "Manager Comment"}

func renderCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.ID,
			r.EmployeeName,
			r.StartDate,
			r.EndDate,
			r.LeaveType,
			r.Status,
			r.ManagerName,
			r.ManagerComment,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
