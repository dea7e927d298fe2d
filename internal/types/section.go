package types

// Section is an ordered sub-unit of a course-type Resource. Number is
// user-supplied ordering and may collide or skip.
type Section struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CertID     uint   `gorm:"column:cert_id;index" json:"cert_id"`
	ResourceID uint   `gorm:"column:resource_id;index" json:"resource_id"`
	Number     int    `gorm:"column:number;not null" json:"number"`
	Title      string `gorm:"column:title;size:255;not null" json:"title"`
	CardsMade  bool   `gorm:"column:cards_made" json:"cards_made"`
	Complete   bool   `gorm:"column:complete" json:"complete"`
	Created    string `gorm:"column:created;size:64" json:"created"`
	Updated    string `gorm:"column:updated;size:64" json:"updated"`
}

func (Section) TableName() string { return "sections" }
