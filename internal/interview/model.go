package interview

import "time"

// Interview types.
const (
	TypeNew = 1
)

// Interview statuses.
const (
	StatusNew        = 1
	StatusInProgress = 2
	StatusCompleted  = 3
)

// Interview is a request for a mock interview. EventDate is free text as
// entered by the submitter, e.g. "30.02.2024".
type Interview struct {
	ID          int       `json:"id"`
	Type        int       `json:"type"`
	Status      int       `json:"status"`
	SubmitterID int       `json:"submitterId"`
	CategoryID  int       `json:"categoryId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Contact     string    `json:"contact"`
	EventDate   string    `json:"eventDate"`
	CreatedDate time.Time `json:"createdDate"`
}
