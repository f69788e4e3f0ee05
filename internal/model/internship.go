package model

// Internship is owned by exactly one User and goes away with it.
type Internship struct {
	InternshipID uint   `json:"internship_id" gorm:"column:internship_id;primaryKey;autoIncrement"`
	UserID       uint   `json:"user_id" gorm:"column:user_id;not null;index"`
	CompanyName  string `json:"company_name" gorm:"size:150"`
	Role         string `json:"role" gorm:"size:100"`
	Duration     string `json:"duration" gorm:"size:50"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (Internship) TableName() string { return "internships" }
