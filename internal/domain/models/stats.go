package models

type SalaryGroup struct {
	SalaryRange string `json:"salary_range"`
	Count       int    `json:"count"`
}
