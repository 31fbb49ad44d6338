package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/websocket"
	"github.com/ikkim/certificate-validator/pkg/logger"
)

var (
	ErrTabNotFound = errors.New("tab not found")
)

// TabSetup prepares a tab's content each time it is activated.
type TabSetup func(ctx context.Context) (interface{}, error)

// TabView is the activated tab and whatever its setup produced.
type TabView struct {
	Tab      model.Tab   `json:"tab"`
	Label    string      `json:"label"`
	Switched bool        `json:"switched"`
	Data     interface{} `json:"data"`
}

type TabService interface {
	// Activate switches to tab, or refreshes it when it is already current.
	Activate(ctx context.Context, tab string) (*TabView, error)
	Current() model.Tab
}

type tabService struct {
	setups        map[model.Tab]TabSetup
	notifications NotificationService
	publisher     EventPublisher

	mu      sync.Mutex
	current model.Tab
}

// NewTabService starts on the dashboard. A tab missing from setups cannot be
// activated.
func NewTabService(setups map[model.Tab]TabSetup, notifications NotificationService, publisher EventPublisher) TabService {
	return &tabService{
		setups:        setups,
		notifications: notifications,
		publisher:     publisherOrNoop(publisher),
		current:       model.TabDashboard,
	}
}

func (s *tabService) Activate(ctx context.Context, name string) (*TabView, error) {
	tab, setup, ok := s.lookup(name)
	if !ok {
		logger.Error("Tab content not found", ErrTabNotFound, map[string]interface{}{
			"tab": name,
		})
		return nil, fmt.Errorf("%w: %q", ErrTabNotFound, name)
	}

	s.mu.Lock()
	previous := s.current
	s.current = tab
	s.mu.Unlock()
	switched := previous != tab

	if switched {
		logger.Info("Tab switched", map[string]interface{}{
			"from": previous,
			"to":   tab,
		})
	} else {
		logger.Debug("Same tab activated, refreshing content", map[string]interface{}{
			"tab": tab,
		})
	}

	data, err := setup(ctx)
	if err != nil {
		logger.Error("Tab setup failed", err, map[string]interface{}{
			"tab": tab,
		})
		return nil, fmt.Errorf("failed to set up %s tab: %w", tab, err)
	}

	view := &TabView{Tab: tab, Label: tab.Label(), Switched: switched, Data: data}
	s.publisher.Publish(websocket.EventTabActivated, view)
	if switched {
		s.notifications.Notify(fmt.Sprintf("Switched to %s 📋", tab.Label()), model.SeveritySuccess)
	}
	return view, nil
}

func (s *tabService) lookup(name string) (model.Tab, TabSetup, bool) {
	for _, tab := range model.Tabs {
		if string(tab) == name {
			setup, ok := s.setups[tab]
			return tab, setup, ok && setup != nil
		}
	}
	return "", nil, false
}

func (s *tabService) Current() model.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
