package models

// Project is a fundraising project. CurrentAmount accumulates outside this
// backend; no endpoint here mutates it.
type Project struct {
	ID            int64  `json:"id"`
	ProjectName   string `json:"project_name"`
	TargetAmount  int64  `json:"target_amount"`
	StartDate     string `json:"start_date"`
	CurrentAmount int64  `json:"current_amount"`
	Status        string `json:"status"`
}
