package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"github.com/ikkim/certificate-validator/pkg/util"
)

// Extractor turns an uploaded document into structured certificate data.
type Extractor interface {
	Extract(ctx context.Context, doc model.Document) (*model.ExtractedData, error)
}

type keywordTemplate struct {
	keyword string
	data    model.ExtractedData
}

// extraction templates, matched against the filename in this order
var keywordTemplates = []keywordTemplate{
	{"shreyas", model.ExtractedData{
		StudentName:   "SHREYAS K",
		CertificateID: "1BG19C5098",
		Institution:   "VISVESVARAYA TECHNOLOGICAL UNIVERSITY",
		Course:        "B.E. Computer Science & Engineering",
		YearOfPassing: "2021",
		Grade:         "CGPA: 9.00",
		RollNumber:    model.StringPtr("1BG19C5098"),
	}},
	{"kathleen", model.ExtractedData{
		StudentName:   "KATHLEEN WHITE",
		CertificateID: "94052827560",
		Institution:   "Indiana State University Faculty of Journalism",
		Course:        "Journalism",
		YearOfPassing: "2024",
		Grade:         "Outstanding Achievement",
	}},
	{"oracle", model.ExtractedData{
		StudentName:   "ASEEM BAJAJ",
		CertificateID: "321734998OCI25AICFA",
		Institution:   "Oracle University",
		Course:        "Oracle Cloud Infrastructure 2025 Certified AI Foundations Associate",
		YearOfPassing: "2025",
		Grade:         "Certified",
	}},
	{"michael", model.ExtractedData{
		StudentName:   "MICHAEL BROWN",
		CertificateID: "SU2023EE012",
		Institution:   "Springfield University",
		Course:        "Bachelor of Electrical Engineering",
		YearOfPassing: "2023",
		Grade:         "Completed",
		RollNumber:    model.StringPtr("2023-EE-012"),
	}},
	{"avery", model.ExtractedData{
		StudentName:   "AVERY DAVIS",
		CertificateID: "BA2026001",
		Institution:   "Borcelle Academy",
		Course:        "Academic Performance Recognition",
		YearOfPassing: "2026",
		Grade:         "Outstanding",
	}},
}

// forgedTemplate reuses a real certificate id under the wrong name.
var forgedTemplate = model.ExtractedData{
	StudentName:   "FAKE NAME",
	CertificateID: "1BG19C5098",
	Institution:   "VISVESVARAYA TECHNOLOGICAL UNIVERSITY",
	Course:        "B.E. Computer Science & Engineering",
	YearOfPassing: "2021",
	Grade:         "CGPA: 9.00",
	RollNumber:    model.StringPtr("1BG19C5098"),
}

// KeywordExtractor simulates OCR. A filename containing a known keyword
// yields that template; anything else yields a random pick that may be
// genuine, forged or unknown.
type KeywordExtractor struct {
	rand util.Rand
}

func NewKeywordExtractor(r util.Rand) *KeywordExtractor {
	if r == nil {
		r = util.DefaultRand()
	}
	return &KeywordExtractor{rand: r}
}

func (e *KeywordExtractor) Extract(ctx context.Context, doc model.Document) (*model.ExtractedData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.ToLower(doc.Filename)
	for _, tpl := range keywordTemplates {
		if strings.Contains(name, tpl.keyword) {
			logger.Debug("Extraction template matched", map[string]interface{}{
				"filename": doc.Filename,
				"keyword":  tpl.keyword,
			})
			return tpl.data.Clone(), nil
		}
	}

	pool := len(keywordTemplates) + 2
	pick := e.rand.Intn(pool)
	var extracted *model.ExtractedData
	switch {
	case pick < len(keywordTemplates):
		extracted = keywordTemplates[pick].data.Clone()
	case pick == len(keywordTemplates):
		extracted = forgedTemplate.Clone()
	default:
		extracted = &model.ExtractedData{
			StudentName:   "UNKNOWN PERSON",
			CertificateID: fmt.Sprintf("FAKE%d", e.rand.Intn(10000)),
			Institution:   "Unknown University",
			Course:        "Unknown Course",
			YearOfPassing: "2024",
			Grade:         "Unknown",
		}
	}

	logger.Debug("Extraction picked at random", map[string]interface{}{
		"filename":       doc.Filename,
		"certificate_id": extracted.CertificateID,
	})
	return extracted, nil
}
