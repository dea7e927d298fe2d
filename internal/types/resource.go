package types

// Resource types accepted by the workflow layer. Complete is only
// meaningful for ResourceTypeCourse.
const (
	ResourceTypeCourse        = "course"
	ResourceTypeVideo         = "video"
	ResourceTypeArticle       = "article"
	ResourceTypeDocumentation = "documentation"
)

// Resource is a learning asset attached to exactly one Cert. Title and
// URL are unique per cert, checked by the workflow layer before insert.
type Resource struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CertID       uint   `gorm:"column:cert_id;index" json:"cert_id"`
	ResourceType string `gorm:"column:resource_type;size:64;not null" json:"resource_type"`
	URL          string `gorm:"column:url;type:text;not null" json:"url"`
	Title        string `gorm:"column:title;size:255;not null" json:"title"`
	Image        string `gorm:"column:image;size:255;not null" json:"image"`
	Description  string `gorm:"column:description;type:text;not null" json:"description"`
	SiteLogo     string `gorm:"column:site_logo;size:255;not null" json:"site_logo"`
	SiteName     string `gorm:"column:site_name;size:255;not null" json:"site_name"`
	HasOGData    bool   `gorm:"column:has_og_data" json:"has_og_data"`
	Complete     bool   `gorm:"column:complete" json:"complete"`
	Created      string `gorm:"column:created;size:64" json:"created"`
	Updated      string `gorm:"column:updated;size:64" json:"updated"`
}

func (Resource) TableName() string { return "resources" }
