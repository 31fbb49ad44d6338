package model

import (
	"strings"
	"time"
)

// Certificate is a known certificate record. ID is the admin-table row id;
// CertificateID is the identifier printed on the document.
type Certificate struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	CertificateID string  `gorm:"type:varchar(64);uniqueIndex;not null" json:"certificate_id"`
	StudentName   string  `gorm:"type:varchar(128);not null;index" json:"student_name"`
	RollNumber    *string `gorm:"type:varchar(64)" json:"roll_number"`
	Course        string  `gorm:"type:text;not null" json:"course"`
	Institution   string  `gorm:"type:text;not null" json:"institution"`
	College       *string `gorm:"type:text" json:"college,omitempty"`
	YearOfPassing int     `gorm:"not null" json:"year_of_passing"`
	Grade         string  `gorm:"type:varchar(128);not null" json:"grade"`
	Type          string  `gorm:"type:varchar(64)" json:"type"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// MatchesQuery reports whether query is a case-insensitive substring of the
// student name, certificate id or institution.
func (c *Certificate) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.StudentName), q) ||
		strings.Contains(strings.ToLower(c.CertificateID), q) ||
		strings.Contains(strings.ToLower(c.Institution), q)
}

// ExtractedData is what the (simulated) OCR step read off an uploaded document.
// It has the shape of a Certificate but is not trusted.
type ExtractedData struct {
	StudentName   string  `json:"student_name" binding:"required"`
	CertificateID string  `json:"certificate_id" binding:"required"`
	Institution   string  `json:"institution"`
	Course        string  `json:"course"`
	YearOfPassing string  `json:"year_of_passing"`
	Grade         string  `json:"grade"`
	RollNumber    *string `json:"roll_number"`
}

// Clone returns a deep copy so templates handed out never alias each other.
func (e ExtractedData) Clone() *ExtractedData {
	c := e
	if e.RollNumber != nil {
		roll := *e.RollNumber
		c.RollNumber = &roll
	}
	return &c
}

// StringPtr is a convenience for optional text fields.
func StringPtr(s string) *string {
	return &s
}
