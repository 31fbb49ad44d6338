package db

import (
	"time"

	"github.com/ikkim/certificate-validator/internal/app/model"
)

// SeedCertificates returns the demo certificate dataset in admin-table order.
func SeedCertificates() []model.Certificate {
	return []model.Certificate{
		{StudentName: "MARCELINE ANDERSON", Course: "High School Program", Institution: "High School", YearOfPassing: 2024, Grade: "Excellence", CertificateID: "HS2024MA", Type: "Graduation"},
		{StudentName: "KATHLEEN WHITE", Course: "Journalism", Institution: "Indiana State University Faculty of Journalism", YearOfPassing: 2024, Grade: "Outstanding Achievement", CertificateID: "94052827560", Type: "Academic Certificate"},
		{StudentName: "JOSEPH SPENCER", Course: "Master's Degree in Environmental Engineering", Institution: "University of Wisconsin Environmental Studies", YearOfPassing: 2024, Grade: "Completed", CertificateID: "46820485834", Type: "Graduation"},
		{StudentName: "JULIANA SILVA", Course: "Graduation", Institution: "Class Of 2025", YearOfPassing: 2025, Grade: "Graduated", CertificateID: "GRAD2025JS", Type: "Graduation"},
		{StudentName: "MICHAEL BROWN", RollNumber: model.StringPtr("2023-EE-012"), Course: "Bachelor of Electrical Engineering", Institution: "Springfield University", YearOfPassing: 2023, Grade: "Completed", CertificateID: "SU2023EE012", Type: "Graduation"},
		{StudentName: "SOPHIA SMITH", Course: "Academic Performance Recognition", Institution: "Borcelle Academy", YearOfPassing: 2026, Grade: "Outstanding", CertificateID: "BA2026SS", Type: "Recognition"},
		{StudentName: "GRETA MAE EVANS", Course: "Bachelor of Arts in English Literature", Institution: "University of Borcelle", YearOfPassing: 2024, Grade: "Completed", CertificateID: "UOB2024GME", Type: "Graduation"},
		{StudentName: "SAMUEL GRAY", Course: "Bachelor of Science in Human Biology", Institution: "Michigan State University College of Human Medicine", YearOfPassing: 2024, Grade: "Completed", CertificateID: "3859374948", Type: "Graduation"},
		{StudentName: "KORINA VILLANUEVA", Course: "Junior High School Graduation", Institution: "Rimberio Junior High School", YearOfPassing: 2024, Grade: "Excellence", CertificateID: "RJHS2024KV", Type: "Graduation"},
		{StudentName: "SHREYAS K", RollNumber: model.StringPtr("1BG19C5098"), Course: "B.E. Computer Science & Engineering", Institution: "VISVESVARAYA TECHNOLOGICAL UNIVERSITY", College: model.StringPtr("B.N.M. INSTITUTE OF TECHNOLOGY, BANGALORE"), YearOfPassing: 2021, Grade: "CGPA: 9.00", CertificateID: "1BG19C5098", Type: "Grade Card"},
		{StudentName: "ASEEM BAJAJ", Course: "Bharatiya Antariksh Hackathon 2025", Institution: "ISRO - Indian Space Research Organisation", YearOfPassing: 2025, Grade: "Participant", CertificateID: "2025H2S06BAH25-P07254", Type: "Hackathon Certificate"},
		{StudentName: "ASEEM BAJAJ", Course: "Oracle Cloud Infrastructure 2025 Certified AI Foundations Associate", Institution: "Oracle University", YearOfPassing: 2025, Grade: "Certified", CertificateID: "321734998OCI25AICFA", Type: "Professional Certification"},
		{StudentName: "ASEEM BAJAJ", Course: "Oracle Cloud Infrastructure 2025 Certified Generative AI Professional", Institution: "Oracle University", YearOfPassing: 2025, Grade: "Certified", CertificateID: "321734998OCI25GAIOCP", Type: "Professional Certification"},
		{StudentName: "AVERY DAVIS", Course: "Academic Performance Recognition", Institution: "Borcelle Academy", YearOfPassing: 2026, Grade: "Outstanding", CertificateID: "BA2026001", Type: "Recognition"},
	}
}

// SeedStats returns the starting counters. The buckets add up to the total.
func SeedStats() model.VerificationStats {
	stats := model.VerificationStats{
		ID:                      model.StatsRowID,
		TotalVerifications:      1547,
		SuccessfulVerifications: 1405,
		FailedVerifications:     124,
		FraudDetected:           18,
	}
	stats.Recompute()
	return stats
}

// SeedRecentVerifications returns the demo log, most recent first.
func SeedRecentVerifications() []model.RecentVerification {
	at := func(s string) time.Time {
		t, err := time.Parse("2006-01-02 15:04:05", s)
		if err != nil {
			panic(err)
		}
		return t
	}
	return []model.RecentVerification{
		{StudentName: "KATHLEEN WHITE", CertificateID: "94052827560", Status: "verified", Timestamp: at("2025-09-21 14:30:25"), Institution: "Indiana State University"},
		{StudentName: "MICHAEL BROWN", CertificateID: "SU2023EE012", Status: "verified", Timestamp: at("2025-09-21 14:15:18"), Institution: "Springfield University"},
		{StudentName: "UNKNOWN", CertificateID: "FAKE123", Status: "not_found", Timestamp: at("2025-09-21 14:08:45"), Institution: "Unknown"},
		{StudentName: "JOHN DOE", CertificateID: "FORGE001", Status: "forged", Timestamp: at("2025-09-21 13:55:32"), Institution: "Fake Institution"},
		{StudentName: "SHREYAS K", CertificateID: "1BG19C5098", Status: "verified", Timestamp: at("2025-09-21 13:45:12"), Institution: "VTU"},
		{StudentName: "ASEEM BAJAJ", CertificateID: "321734998OCI25AICFA", Status: "verified", Timestamp: at("2025-09-21 13:30:45"), Institution: "Oracle University"},
	}
}
