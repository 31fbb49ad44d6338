package service

import (
	"sync"
	"testing"
	"time"

	"github.com/ikkim/certificate-validator/internal/app/repository"
	"github.com/ikkim/certificate-validator/internal/db"
	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testStart = time.Date(2025, 9, 21, 14, 30, 0, 0, time.UTC)

type publishedEvent struct {
	Type string
	Data interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Data: data})
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

func (p *recordingPublisher) Count(eventType string) int {
	n := 0
	for _, t := range p.Types() {
		if t == eventType {
			n++
		}
	}
	return n
}

func newTestNotifications(pub EventPublisher) (NotificationService, *clock.Fake) {
	fc := clock.NewFake(testStart)
	return NewNotificationService(DefaultNotificationOptions(), fc, pub), fc
}

func toastMessages(n NotificationService) []string {
	var messages []string
	for _, t := range n.Visible() {
		messages = append(messages, t.Message)
	}
	return messages
}

type testRepos struct {
	db           *gorm.DB
	certificates repository.CertificateRepository
	verification repository.VerificationRepository
}

func setupSeededRepos(t *testing.T) testRepos {
	testDB, err := db.SetupSeededTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testRepos{
		db:           testDB,
		certificates: repository.NewCertificateRepository(testDB),
		verification: repository.NewVerificationRepository(testDB),
	}
}
