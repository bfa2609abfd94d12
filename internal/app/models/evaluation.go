package models

// EvaluationReport is a supervisor's weekly task evaluation for a staff member
type EvaluationReport struct {
	StaffEmail          string `json:"staffEmail"`
	SupervisorName      string `json:"supervisorName"`
	SupervisorComment   string `json:"supervisorComment"`
	WeekEndingDate      string `json:"weekEndingDate"`
	WeekNumber          string `json:"weekNumber"`
	TaskDescription     string `json:"taskDescription"`
	TaskStartDate       string `json:"taskStartDate"`
	TaskStartTime       string `json:"taskStartTime"`
	TaskEndDate         string `json:"taskEndDate"`
	TaskEndTime         string `json:"taskEndTime"`
	IsCompleted         string `json:"isCompleted" example:"Y"` // "Y" or "N"
	MethodUsed          string `json:"methodUsed"`
	ProblemsEncountered string `json:"problemsEncountered"`
	Suggestion          string `json:"suggestion"`
}

// Completed reports whether the task was marked as done
func (r *EvaluationReport) Completed() bool {
	return r.IsCompleted == "Y"
}
