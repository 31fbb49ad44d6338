package model

import "strings"

// Tab names one of the four views.
type Tab string

const (
	TabDashboard  Tab = "dashboard"
	TabVerify     Tab = "verify"
	TabAdmin      Tab = "admin"
	TabBlockchain Tab = "blockchain"
)

// Tabs lists the views in navigation order.
var Tabs = []Tab{TabDashboard, TabVerify, TabAdmin, TabBlockchain}

// Label capitalises the tab name for display.
func (t Tab) Label() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Document is an uploaded file as seen by the upload pipeline.
type Document struct {
	Filename    string
	ContentType string
	Size        int64
	Body        []byte
}

// Progress mirrors the progress bar of the verify view.
type Progress struct {
	Visible bool   `json:"visible"`
	Percent int    `json:"percent"`
	Caption string `json:"caption"`
}

// UploadState is a snapshot of the upload pipeline.
type UploadState struct {
	Busy      bool                `json:"busy"`
	SessionID string              `json:"session_id,omitempty"`
	Progress  Progress            `json:"progress"`
	Result    *VerificationResult `json:"result,omitempty"`
}
