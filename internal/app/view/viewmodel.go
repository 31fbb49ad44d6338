package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/app/service"
)

// displayTimeLayout matches the browser's en-US locale string.
const displayTimeLayout = "1/2/2006, 3:04:05 PM"

// Field is one labelled value of a panel or modal.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type StatCards struct {
	TotalVerifications string `json:"total_verifications"`
	SuccessRate        string `json:"success_rate"`
	FraudDetected      string `json:"fraud_detected"`
	FraudRate          string `json:"fraud_rate"`
}

type RecentItem struct {
	StudentName   string `json:"student_name"`
	CertificateID string `json:"certificate_id"`
	Institution   string `json:"institution"`
	Timestamp     string `json:"timestamp"`
	StatusClass   string `json:"status_class"`
	StatusLabel   string `json:"status_label"`
}

type DashboardView struct {
	Stats  StatCards    `json:"stats"`
	Recent []RecentItem `json:"recent"`
	Trend  Trend        `json:"trend"`
}

// BuildDashboard renders the statistics cards and the recent verification list.
func BuildDashboard(stats *model.VerificationStats, recent []model.RecentVerification) DashboardView {
	v := DashboardView{Recent: make([]RecentItem, 0, len(recent)), Trend: TrendSeries()}
	if stats != nil {
		v.Stats = StatCards{
			TotalVerifications: groupThousands(stats.TotalVerifications),
			SuccessRate:        formatPercent(stats.SuccessRate),
			FraudDetected:      strconv.FormatInt(stats.FraudDetected, 10),
			FraudRate:          formatPercent(stats.FraudRate),
		}
	}
	for _, r := range recent {
		v.Recent = append(v.Recent, RecentItem{
			StudentName:   r.StudentName,
			CertificateID: r.CertificateID,
			Institution:   r.Institution,
			Timestamp:     r.Timestamp.Format(displayTimeLayout),
			StatusClass:   r.Status,
			StatusLabel:   strings.ToUpper(strings.Replace(r.Status, "_", " ", 1)),
		})
	}
	return v
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

type AdminRow struct {
	ID            uint   `json:"id"`
	StudentName   string `json:"student_name"`
	CertificateID string `json:"certificate_id"`
	Institution   string `json:"institution"`
	Course        string `json:"course"`
	YearOfPassing int    `json:"year_of_passing"`
	Grade         string `json:"grade"`
}

type AdminTable struct {
	Query string     `json:"query,omitempty"`
	Count int        `json:"count"`
	Rows  []AdminRow `json:"rows"`
}

// BuildAdminTable renders every given certificate as a table row.
func BuildAdminTable(certs []model.Certificate) AdminTable {
	rows := make([]AdminRow, 0, len(certs))
	for _, c := range certs {
		rows = append(rows, AdminRow{
			ID:            c.ID,
			StudentName:   c.StudentName,
			CertificateID: c.CertificateID,
			Institution:   c.Institution,
			Course:        c.Course,
			YearOfPassing: c.YearOfPassing,
			Grade:         c.Grade,
		})
	}
	return AdminTable{Count: len(rows), Rows: rows}
}

// FilterCertificates keeps certificates whose name, certificate id or
// institution contains query, ignoring case. certs is not modified.
func FilterCertificates(certs []model.Certificate, query string) []model.Certificate {
	filtered := make([]model.Certificate, 0, len(certs))
	for i := range certs {
		if certs[i].MatchesQuery(query) {
			filtered = append(filtered, certs[i])
		}
	}
	return filtered
}

type ResultCard struct {
	Class         string `json:"class"`
	Icon          string `json:"icon"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	Confidence    string `json:"confidence,omitempty"`
	DatabaseMatch string `json:"database_match,omitempty"`
}

// BuildResultCard renders the headline of a verification result.
func BuildResultCard(result *model.VerificationResult) ResultCard {
	status := string(result.Status)
	card := ResultCard{
		Class:   "result-" + strings.ReplaceAll(strings.ToLower(status), "_", "-"),
		Title:   "Certificate " + strings.ReplaceAll(status, "_", " "),
		Message: result.Message,
	}
	switch result.Status {
	case model.StatusVerified:
		card.Icon = "✅"
	case model.StatusForged:
		card.Icon = "🚨"
	default:
		card.Icon = "❓"
	}
	if result.Confidence > 0 {
		card.Confidence = fmt.Sprintf("%.1f%%", result.Confidence)
	}
	if result.Certificate != nil {
		card.DatabaseMatch = result.Certificate.StudentName
	}
	return card
}

type ExtractedPanel struct {
	CertificateID string  `json:"certificate_id"`
	Fields        []Field `json:"fields"`
}

// BuildExtractedPanel lists the fields read off the document.
func BuildExtractedPanel(extracted *model.ExtractedData) ExtractedPanel {
	p := ExtractedPanel{CertificateID: extracted.CertificateID}
	p.Fields = []Field{
		{"Student Name", extracted.StudentName},
		{"Certificate ID", extracted.CertificateID},
		{"Institution", extracted.Institution},
		{"Course", extracted.Course},
		{"Year of Passing", extracted.YearOfPassing},
		{"Grade", extracted.Grade},
	}
	if extracted.RollNumber != nil && *extracted.RollNumber != "" {
		p.Fields = append(p.Fields, Field{"Roll Number", *extracted.RollNumber})
	}
	return p
}

// ResultView is everything the verify tab shows after processing.
type ResultView struct {
	Card      ResultCard     `json:"card"`
	Extracted ExtractedPanel `json:"extracted"`
}

func BuildResultView(result *model.VerificationResult) *ResultView {
	if result == nil || result.Extracted == nil {
		return nil
	}
	return &ResultView{Card: BuildResultCard(result), Extracted: BuildExtractedPanel(result.Extracted)}
}

type VerifyView struct {
	Upload model.UploadState `json:"upload"`
	Result *ResultView       `json:"result,omitempty"`
}

func BuildVerifyView(state model.UploadState) VerifyView {
	return VerifyView{Upload: state, Result: BuildResultView(state.Result)}
}

type DetailModal struct {
	Title      string  `json:"title"`
	Fields     []Field `json:"fields"`
	Blockchain []Field `json:"blockchain"`
}

// BuildDetailModal renders a stored certificate with its placeholder ledger data.
func BuildDetailModal(details *service.CertificateDetails) DetailModal {
	c := details.Certificate
	m := DetailModal{
		Title: "Certificate Details",
		Fields: []Field{
			{"Student Name", c.StudentName},
			{"Certificate ID", c.CertificateID},
			{"Institution", c.Institution},
			{"Course", c.Course},
			{"Year", strconv.Itoa(c.YearOfPassing)},
			{"Grade", c.Grade},
		},
		Blockchain: []Field{
			{"Block Hash", details.BlockHash},
			{"Transaction ID", details.TransactionID},
			{"Timestamp", details.Timestamp.Format(displayTimeLayout)},
		},
	}
	if c.RollNumber != nil && *c.RollNumber != "" {
		m.Fields = append(m.Fields, Field{"Roll Number", *c.RollNumber})
	}
	return m
}

type BlockchainStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type BlockchainInfo struct {
	Title    string           `json:"title"`
	Summary  string           `json:"summary"`
	Steps    []BlockchainStep `json:"steps"`
	Features []string         `json:"features"`
}

// BuildBlockchainInfo is the static content of the blockchain tab.
func BuildBlockchainInfo() BlockchainInfo {
	return BlockchainInfo{
		Title:   "🔗 Blockchain-Secured Verification",
		Summary: "Every issued certificate is anchored by a hash so that tampering can be detected.",
		Steps: []BlockchainStep{
			{"Issue", "The institution records the certificate and its hash is written to a block."},
			{"Upload", "A verifier uploads a scanned copy of the certificate."},
			{"Extract", "OCR reads the student name and certificate id from the document."},
			{"Compare", "The extracted data is matched against the stored record."},
		},
		Features: []string{
			"Immutable record of issued certificates",
			"Instant detection of forged names on real certificate ids",
			"Shareable verification links via QR code",
		},
	}
}

// Trend is the fixed monthly verification series shown on the dashboard.
type Trend struct {
	Labels   []string  `json:"labels"`
	Verified []float64 `json:"verified"`
	Forged   []float64 `json:"forged"`
}

func TrendSeries() Trend {
	return Trend{
		Labels:   []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep"},
		Verified: []float64{120, 140, 160, 180, 170, 190, 200, 220, 210},
		Forged:   []float64{5, 8, 12, 6, 9, 4, 7, 8, 5},
	}
}

// PageView is the full server-rendered page.
type PageView struct {
	Current    model.Tab
	Tabs       []TabLink
	Dashboard  DashboardView
	Verify     VerifyView
	Admin      AdminTable
	Blockchain BlockchainInfo
	Toasts     []model.Toast
	Generated  time.Time
}

type TabLink struct {
	Tab    model.Tab
	Label  string
	Active bool
}

func BuildTabLinks(current model.Tab) []TabLink {
	links := make([]TabLink, 0, len(model.Tabs))
	for _, t := range model.Tabs {
		links = append(links, TabLink{Tab: t, Label: t.Label(), Active: t == current})
	}
	return links
}
