// internal/model/teacher.go
package model

import (
	"slices"
	"time"
)

type Teacher struct {
	ID        int      `json:"teacher_id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Birthday  string   `json:"birthday"`
	Age       int      `json:"age"`
	TaxID     string   `json:"tax_id"`
	Gender    string   `json:"gender"`
	Country   string   `json:"country"`
	Province  string   `json:"province"`
	City      string   `json:"city"`
	Address   string   `json:"address"`
	Languages []string `json:"languages"`
	Skills    []int    `json:"skills"`
	Branches  []int    `json:"branches"`

	// Administrative fields
	EnrolledBy string    `json:"enrolled_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// ServesBranch reports whether the teacher is attached to the given branch.
func (t *Teacher) ServesBranch(branchID int) bool {
	return slices.Contains(t.Branches, branchID)
}

// Clone returns a deep copy so callers never share slices with the store.
func (t *Teacher) Clone() *Teacher {
	c := *t
	c.Languages = slices.Clone(t.Languages)
	c.Skills = slices.Clone(t.Skills)
	c.Branches = slices.Clone(t.Branches)
	return &c
}
