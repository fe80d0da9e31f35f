package models

import (
	"time"

	"github.com/tigerroots/collective/internal/roles"
)

// User is a member record. RecruiterID is set once at registration and never
// reassigned; an empty string means the user has no recruiter.
type User struct {
	UID            string
	Name           string
	Role           roles.Role
	RecruiterID    string
	Recruits       int
	TotalTrees     int
	ServiceHours   float64
	TreesInitiated int
	CreatedAt      time.Time
}
