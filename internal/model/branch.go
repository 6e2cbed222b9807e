// internal/model/branch.go
package model

// Branch is a franchise location. Branches are seeded at startup and never change.
type Branch struct {
	ID       int    `json:"branch_id"`
	Code     string `json:"branch_code"`
	Name     string `json:"branch_name"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Country  string `json:"country"`
	Province string `json:"province"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Contact  string `json:"contact"`
}

type Skill struct {
	ID   int    `json:"skill_id"`
	Name string `json:"skill_name"`
}
