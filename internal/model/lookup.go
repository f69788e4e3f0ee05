package model

// Programme is a read-only lookup row (B.Tech, M.Sc, ...).
type Programme struct {
	ProgrammeID   uint   `json:"programme_id" gorm:"column:programme_id;primaryKey;autoIncrement"`
	ProgrammeName string `json:"programme_name" gorm:"size:150;not null;uniqueIndex"`
}

func (Programme) TableName() string { return "programmes" }

// Branch is a read-only lookup row (Computer Science, Civil, ...).
type Branch struct {
	BranchID   uint   `json:"branch_id" gorm:"column:branch_id;primaryKey;autoIncrement"`
	BranchName string `json:"branch_name" gorm:"size:150;not null;uniqueIndex"`
}

func (Branch) TableName() string { return "branches" }
