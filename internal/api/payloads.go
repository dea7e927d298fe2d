package api

// Envelope is the two-field result every mutating API operation
// returns. Status mirrors the HTTP status (200 success, 404 not
// found); callers branch on it rather than on the transport code.
type Envelope struct {
  Message string `json:"message"`
  Status  int    `json:"status"`
}

type CertCreate struct {
  Name     string `json:"name"`
  Code     string `json:"code"`
  HeadImg  string `json:"head_img"`
  BadgeImg string `json:"badge_img"`
  ExamDate string `json:"exam_date"`
  Tags     string `json:"tags"`
}

// CertUpdate carries the full representation of a cert. Reminder is a
// pointer so form-driven updates that never mention the flag leave the
// stored value alone.
type CertUpdate struct {
  Name     string `json:"name"`
  Code     string `json:"code"`
  HeadImg  string `json:"head_img"`
  BadgeImg string `json:"badge_img"`
  ExamDate string `json:"exam_date"`
  Tags     string `json:"tags"`
  Reminder *bool  `json:"reminder,omitempty"`
}

type ResourceCreate struct {
  CertID       uint   `json:"cert_id"`
  ResourceType string `json:"resource_type"`
  URL          string `json:"url"`
  Title        string `json:"title"`
  Image        string `json:"image"`
  Description  string `json:"description"`
  SiteLogo     string `json:"site_logo"`
  SiteName     string `json:"site_name"`
  HasOGData    bool   `json:"has_og_data"`
  Complete     bool   `json:"complete"`
}

type ResourceUpdate struct {
  ResourceType string `json:"resource_type"`
  URL          string `json:"url"`
  Title        string `json:"title"`
  Image        string `json:"image"`
  Description  string `json:"description"`
  SiteLogo     string `json:"site_logo"`
  SiteName     string `json:"site_name"`
  Complete     bool   `json:"complete"`
}

type SectionCreate struct {
  CertID     uint   `json:"cert_id"`
  ResourceID uint   `json:"resource_id"`
  Number     int    `json:"number"`
  Title      string `json:"title"`
}

type SectionUpdate struct {
  Number    int    `json:"number"`
  Title     string `json:"title"`
  CardsMade bool   `json:"cards_made"`
  Complete  bool   `json:"complete"`
}
