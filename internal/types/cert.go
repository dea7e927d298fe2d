package types

// Cert is a certification the user is tracking. Name and code are
// unique; the workflow layer checks both before insert so it can name
// the offending field instead of surfacing a driver error.
//
// ExamDate and Created are display-format strings (dd/mm/yyyy), not
// instants. The reminder flag mirrors "an entry exists in the
// reminder store for this cert".
type Cert struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"column:name;size:255;not null;unique" json:"name"`
	Code     string  `gorm:"column:code;size:255;not null;unique" json:"code"`
	HeadImg  string  `gorm:"column:head_img;size:255;not null" json:"head_img"`
	BadgeImg string  `gorm:"column:badge_img;size:255;not null" json:"badge_img"`
	ExamDate string  `gorm:"column:exam_date;size:64" json:"exam_date"`
	Complete bool    `gorm:"column:complete" json:"complete"`
	Reminder bool    `gorm:"column:reminder" json:"reminder"`
	Cost     float64 `gorm:"column:cost" json:"cost"`
	Tags     string  `gorm:"column:tags;type:text" json:"tags"`
	Created  string  `gorm:"column:created;size:64;not null" json:"created"`
}

func (Cert) TableName() string { return "certs" }
