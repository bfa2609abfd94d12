package models

import (
	"time"

	"github.com/google/uuid"
)

// CourseStatus is the availability of a course
type CourseStatus string

const (
	CourseActive   CourseStatus = "Active"
	CourseInactive CourseStatus = "Inactive"
	CourseUpcoming CourseStatus = "Upcoming"
)

// Valid reports whether s is a known status
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseActive, CourseInactive, CourseUpcoming:
		return true
	}
	return false
}

// Course represents a course offered by the institute
type Course struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	Name       string       `json:"name" db:"name" example:"Data Analysis"`
	Instructor string       `json:"instructor" db:"instructor" example:"Tunde Bello"`
	Duration   string       `json:"duration" db:"duration" example:"12 weeks"`
	Status     CourseStatus `json:"status" db:"status" example:"Active"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time    `json:"updatedAt" db:"updated_at"`
}
