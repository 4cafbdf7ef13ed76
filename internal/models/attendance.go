package models

// AttendanceRecord holds the headcounts captured for a single service date.
// service_date is unique: one record per calendar date.
type AttendanceRecord struct {
	ID             int64  `json:"id"`
	ServiceDate    string `json:"service_date"`
	Men            int    `json:"men"`
	Women          int    `json:"women"`
	YouthBoys      int    `json:"youth_boys"`
	YouthGirls     int    `json:"youth_girls"`
	ChildrenBoys   int    `json:"children_boys"`
	ChildrenGirls  int    `json:"children_girls"`
	NewConverts    int    `json:"new_converts"`
	Youtube        int    `json:"youtube"`
	TotalHeadcount int    `json:"total_headcount"`
}
