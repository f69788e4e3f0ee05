package model

// Project is owned by exactly one User and goes away with it.
type Project struct {
	ProjectID      uint   `json:"project_id" gorm:"column:project_id;primaryKey;autoIncrement"`
	UserID         uint   `json:"user_id" gorm:"column:user_id;not null;index"`
	ProjectName    string `json:"project_name" gorm:"size:150"`
	Description    string `json:"description" gorm:"type:text"`
	TechnologyUsed string `json:"technology_used" gorm:"size:255"`
	GithubLink     string `json:"github_link" gorm:"size:255"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (Project) TableName() string { return "projects" }
