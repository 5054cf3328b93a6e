package models

// PaymentStatus is computed server-side from the payment period.
type PaymentStatus string

const (
	PaymentStatusActive  PaymentStatus = "Active"
	PaymentStatusExpired PaymentStatus = "Expired"
)

// Payment is the client view of a student's payment period. DaysRemaining and
// Status are derived by the API; the client edits the date range only.
type Payment struct {
	ID            int64         `json:"id"`
	StudentID     int64         `json:"student_id"`
	StudentName   string        `json:"student_name"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	DaysRemaining int           `json:"days_remaining"`
	Status        PaymentStatus `json:"status"`
}

// PaymentFilter encapsulates the search parameters for listing payments.
type PaymentFilter struct {
	Search   string
	Status   PaymentStatus
	Page     int
	PageSize int
}

// PaymentStats carries the aggregate counters shown on the payments screen.
type PaymentStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
}
