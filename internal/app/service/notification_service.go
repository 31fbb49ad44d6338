package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/websocket"
	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/ikkim/certificate-validator/pkg/logger"
)

// NotificationService 토스트 알림 센터
type NotificationService interface {
	// Notify shows a toast. It returns false when the message is suppressed
	// because an identical toast is already visible.
	Notify(message string, severity model.Severity) (*model.Toast, bool)
	Visible() []model.Toast
	Dismiss(id string) bool
}

type NotificationOptions struct {
	MaxVisible    int
	EntranceDelay time.Duration
	DismissAfter  time.Duration
	ExitDuration  time.Duration
}

// DefaultNotificationOptions 기본 토스트 설정
func DefaultNotificationOptions() NotificationOptions {
	return NotificationOptions{
		MaxVisible:    3,
		EntranceDelay: 100 * time.Millisecond,
		DismissAfter:  4 * time.Second,
		ExitDuration:  300 * time.Millisecond,
	}
}

type activeToast struct {
	toast  model.Toast
	timers []clock.Timer
}

type notificationService struct {
	opts      NotificationOptions
	clock     clock.Clock
	publisher EventPublisher

	mu     sync.Mutex
	toasts []*activeToast // oldest first
}

// NewNotificationService 알림 서비스 생성자
func NewNotificationService(opts NotificationOptions, clk clock.Clock, publisher EventPublisher) NotificationService {
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = DefaultNotificationOptions().MaxVisible
	}
	if clk == nil {
		clk = clock.New()
	}
	return &notificationService{
		opts:      opts,
		clock:     clk,
		publisher: publisherOrNoop(publisher),
	}
}

func (s *notificationService) Notify(message string, severity model.Severity) (*model.Toast, bool) {
	if message == "" {
		return nil, false
	}
	if !severity.Valid() {
		severity = model.SeveritySuccess
	}

	s.mu.Lock()
	for _, active := range s.toasts {
		if active.toast.Message == message {
			existing := active.toast
			s.mu.Unlock()
			return &existing, false
		}
	}

	var evicted []model.Toast
	for len(s.toasts) >= s.opts.MaxVisible {
		oldest := s.toasts[0]
		s.toasts = s.toasts[1:]
		for _, t := range oldest.timers {
			t.Stop()
		}
		evicted = append(evicted, oldest.toast)
	}

	active := &activeToast{toast: model.Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		Title:     severity.Title(),
		CreatedAt: s.clock.Now(),
	}}
	id := active.toast.ID
	active.timers = append(active.timers,
		s.clock.AfterFunc(s.opts.EntranceDelay, func() { s.markShown(id) }),
		s.clock.AfterFunc(s.opts.DismissAfter+s.opts.ExitDuration, func() { s.Dismiss(id) }),
	)
	s.toasts = append(s.toasts, active)
	toast := active.toast
	s.mu.Unlock()

	for _, old := range evicted {
		s.publisher.Publish(websocket.EventToastRemoved, old)
	}
	s.publisher.Publish(websocket.EventToastAdded, toast)

	logger.Debug("Toast shown", map[string]interface{}{
		"severity": severity,
		"message":  message,
	})
	return &toast, true
}

func (s *notificationService) markShown(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, active := range s.toasts {
		if active.toast.ID == id {
			active.toast.Shown = true
			return
		}
	}
}

// Dismiss removes a toast before its timer fires.
func (s *notificationService) Dismiss(id string) bool {
	s.mu.Lock()
	var removed *activeToast
	for i, active := range s.toasts {
		if active.toast.ID == id {
			removed = active
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if removed == nil {
		return false
	}
	for _, t := range removed.timers {
		t.Stop()
	}
	s.publisher.Publish(websocket.EventToastRemoved, removed.toast)
	return true
}

func (s *notificationService) Visible() []model.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	toasts := make([]model.Toast, 0, len(s.toasts))
	for _, active := range s.toasts {
		toasts = append(toasts, active.toast)
	}
	return toasts
}
