package service

import (
	"testing"
	"time"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Notify(t *testing.T) {
	pub := &recordingPublisher{}
	notifications, fc := newTestNotifications(pub)

	toast, shown := notifications.Notify("Switched to Admin 📋", model.SeveritySuccess)
	require.True(t, shown)
	assert.Equal(t, "✅ Success", toast.Title)
	assert.False(t, toast.Shown)
	assert.Equal(t, []string{websocket.EventToastAdded}, pub.Types())

	fc.Advance(100 * time.Millisecond)
	visible := notifications.Visible()
	require.Len(t, visible, 1)
	assert.True(t, visible[0].Shown)
}

func TestNotificationService_UnknownSeverityDefaultsToSuccess(t *testing.T) {
	notifications, _ := newTestNotifications(nil)

	toast, shown := notifications.Notify("hello", model.Severity("loud"))
	require.True(t, shown)
	assert.Equal(t, model.SeveritySuccess, toast.Severity)
}

func TestNotificationService_SuppressesDuplicates(t *testing.T) {
	pub := &recordingPublisher{}
	notifications, _ := newTestNotifications(pub)

	_, shown := notifications.Notify("Please wait, file is being processed...", model.SeverityWarning)
	require.True(t, shown)
	_, shown = notifications.Notify("Please wait, file is being processed...", model.SeverityWarning)
	assert.False(t, shown)

	assert.Len(t, notifications.Visible(), 1)
	assert.Equal(t, 1, pub.Count(websocket.EventToastAdded))
}

func TestNotificationService_EvictsOldestBeyondLimit(t *testing.T) {
	pub := &recordingPublisher{}
	notifications, _ := newTestNotifications(pub)

	for _, msg := range []string{"one", "two", "three", "four"} {
		notifications.Notify(msg, model.SeverityInfo)
	}

	assert.Equal(t, []string{"two", "three", "four"}, toastMessages(notifications))
	assert.Equal(t, 1, pub.Count(websocket.EventToastRemoved))
}

func TestNotificationService_AutoDismiss(t *testing.T) {
	pub := &recordingPublisher{}
	notifications, fc := newTestNotifications(pub)

	notifications.Notify("first", model.SeverityInfo)
	fc.Advance(2 * time.Second)
	notifications.Notify("second", model.SeverityInfo)

	// first: 4s display + 300ms exit
	fc.Advance(2300 * time.Millisecond)
	assert.Equal(t, []string{"second"}, toastMessages(notifications))

	fc.Advance(2 * time.Second)
	assert.Empty(t, notifications.Visible())
	assert.Equal(t, 2, pub.Count(websocket.EventToastRemoved))
	assert.Equal(t, 0, fc.Pending())
}

func TestNotificationService_MessageCanReappearAfterDismiss(t *testing.T) {
	notifications, fc := newTestNotifications(nil)

	notifications.Notify("📊 Database exported successfully!", model.SeveritySuccess)
	fc.Advance(5 * time.Second)

	_, shown := notifications.Notify("📊 Database exported successfully!", model.SeveritySuccess)
	assert.True(t, shown)
}

func TestNotificationService_Dismiss(t *testing.T) {
	notifications, fc := newTestNotifications(nil)

	toast, _ := notifications.Notify("bye", model.SeverityError)
	assert.True(t, notifications.Dismiss(toast.ID))
	assert.False(t, notifications.Dismiss(toast.ID))
	assert.Equal(t, 0, fc.Pending())
}
