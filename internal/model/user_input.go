package model

import (
	"strings"
	"time"
)

// NewUser is the payload accepted when adding a user.
type NewUser struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	EmailID        string `json:"email_id" validate:"required"`
	AdmissionYear  int    `json:"admission_year" validate:"required"`
	PhoneNumber    string `json:"phone_number"`
	AlternatePhone string `json:"alternate_phone"`
	Bio            string `json:"bio"`
	Dob            string `json:"dob"`
	Gender         string `json:"gender"`
	ProgrammeID    *uint  `json:"programme_id"`
	BranchID       *uint  `json:"branch_id"`
	ExamPrep       string `json:"exam_prep"`
}

// WithDefaults builds the row to insert. Optional strings stay empty, an
// absent or unparseable dob is stored as null, and an empty exam_prep is
// stored as null so listings can show the "N/A" default.
func (n NewUser) WithDefaults() *User {
	u := &User{
		FirstName:      n.FirstName,
		LastName:       n.LastName,
		EmailID:        n.EmailID,
		PhoneNumber:    n.PhoneNumber,
		AlternatePhone: n.AlternatePhone,
		Bio:            n.Bio,
		Dob:            ParseDate(n.Dob),
		Gender:         n.Gender,
		AdmissionYear:  n.AdmissionYear,
		ProgrammeID:    n.ProgrammeID,
		BranchID:       n.BranchID,
	}
	if v := strings.TrimSpace(n.ExamPrep); v != "" {
		u.ExamPrep = &v
	}
	return u
}

// UserUpdate is the payload of a full profile save. Any field left out is
// written as empty (or null for dob); there is no partial update.
type UserUpdate struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	EmailID        string `json:"email_id"`
	PhoneNumber    string `json:"phone_number"`
	AlternatePhone string `json:"alternate_phone"`
	Bio            string `json:"bio"`
	Dob            string `json:"dob"`
	Gender         string `json:"gender"`
}

// WithDefaults builds the column values for EditableUserColumns.
func (u UserUpdate) WithDefaults() *User {
	return &User{
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		EmailID:        u.EmailID,
		PhoneNumber:    u.PhoneNumber,
		AlternatePhone: u.AlternatePhone,
		Bio:            u.Bio,
		Dob:            ParseDate(u.Dob),
		Gender:         u.Gender,
	}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns nil for
// anything else, including the empty string.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}
