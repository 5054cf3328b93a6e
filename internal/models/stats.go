package models

// DashboardStats carries the aggregate counters for the dashboard stat cards.
type DashboardStats struct {
	Students    int `json:"students"`
	NewStudents int `json:"new_students"`
	Teachers    int `json:"teachers"`
	Groups      int `json:"groups"`
}

// Pagination describes list paging metadata returned by the API.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
