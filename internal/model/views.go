package model

// ExamPrepDefault is shown in directory listings when exam_prep is null.
const ExamPrepDefault = "N/A"

// UserSummary is one row of the plain user listing.
type UserSummary struct {
	UserID        uint   `json:"user_id" gorm:"column:user_id"`
	FirstName     string `json:"first_name" gorm:"column:first_name"`
	LastName      string `json:"last_name" gorm:"column:last_name"`
	EmailID       string `json:"email_id" gorm:"column:email_id"`
	PhoneNumber   string `json:"phone_number" gorm:"column:phone_number"`
	Gender        string `json:"gender" gorm:"column:gender"`
	AdmissionYear int    `json:"admission_year" gorm:"column:admission_year"`
}

// DirectoryEntry is one row of the joined directory listing. Lookup names
// are nil when the user has no programme or branch, or the id dangles.
type DirectoryEntry struct {
	UserID        uint    `json:"user_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	AdmissionYear int     `json:"admission_year"`
	ExamPrep      string  `json:"exam_prep"`
	ProgrammeName *string `json:"programme_name"`
	BranchName    *string `json:"branch_name"`
}

// Profile is the composite document served for a single user. The user
// fields are flattened to the top level; the child collections are never nil.
type Profile struct {
	User
	ProgrammeName *string      `json:"programme_name"`
	BranchName    *string      `json:"branch_name"`
	Internships   []Internship `json:"internships"`
	Projects      []Project    `json:"projects"`
}

// JoinedProgrammeName returns the joined programme name, or nil when the left
// join found nothing.
func (u *User) JoinedProgrammeName() *string {
	if u.Programme == nil || u.Programme.ProgrammeID == 0 {
		return nil
	}
	name := u.Programme.ProgrammeName
	return &name
}

// JoinedBranchName returns the joined branch name, or nil when the left join
// found nothing.
func (u *User) JoinedBranchName() *string {
	if u.Branch == nil || u.Branch.BranchID == 0 {
		return nil
	}
	name := u.Branch.BranchName
	return &name
}

// DirectoryEntry projects a user loaded with its lookups onto a listing row.
func (u *User) DirectoryEntry() DirectoryEntry {
	examPrep := ExamPrepDefault
	if u.ExamPrep != nil {
		examPrep = *u.ExamPrep
	}
	return DirectoryEntry{
		UserID:        u.UserID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		AdmissionYear: u.AdmissionYear,
		ExamPrep:      examPrep,
		ProgrammeName: u.JoinedProgrammeName(),
		BranchName:    u.JoinedBranchName(),
	}
}
