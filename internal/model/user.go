package model

import "time"

// User is the directory's primary entity. One row per student or alumnus.
type User struct {
	UserID         uint       `json:"user_id" gorm:"column:user_id;primaryKey;autoIncrement"`
	FirstName      string     `json:"first_name" gorm:"size:100;not null"`
	LastName       string     `json:"last_name" gorm:"size:100;not null"`
	EmailID        string     `json:"email_id" gorm:"column:email_id;size:150;not null;index"`
	PhoneNumber    string     `json:"phone_number" gorm:"size:20"`
	AlternatePhone string     `json:"alternate_phone" gorm:"size:20"`
	Bio            string     `json:"bio" gorm:"size:500"`
	Dob            *time.Time `json:"dob" gorm:"type:date"`
	Gender         string     `json:"gender" gorm:"size:20"`
	AdmissionYear  int        `json:"admission_year" gorm:"not null;index"`
	ProgrammeID    *uint      `json:"programme_id"`
	BranchID       *uint      `json:"branch_id"`
	ExamPrep       *string    `json:"exam_prep" gorm:"size:100"`

	// Relations
	Programme *Programme `json:"-" gorm:"foreignKey:ProgrammeID;references:ProgrammeID;constraint:OnDelete:SET NULL"`
	Branch    *Branch    `json:"-" gorm:"foreignKey:BranchID;references:BranchID;constraint:OnDelete:SET NULL"`
}

// TableName pins the table name so raw joins can reference it.
func (User) TableName() string { return "users" }

// EditableUserColumns are overwritten on every update. admission_year is
// deliberately absent: it keeps the value written at creation.
var EditableUserColumns = []string{
	"first_name",
	"last_name",
	"email_id",
	"phone_number",
	"alternate_phone",
	"bio",
	"dob",
	"gender",
}
