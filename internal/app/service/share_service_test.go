package service

import (
	"strings"
	"testing"
	"time"

	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/ikkim/certificate-validator/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupShareServiceTest(t *testing.T, expiry time.Duration) (ShareService, NotificationService) {
	repos := setupSeededRepos(t)
	notifications, _ := newTestNotifications(nil)
	certs := NewCertificateService(repos.certificates, notifications, util.NewRand(1), clock.NewFake(testStart), nil)
	opts := ShareOptions{Secret: "share-secret", Expiry: expiry, BaseURL: "http://localhost:8080/"}
	return NewShareService(opts, repos.certificates, certs, notifications), notifications
}

func TestShareService_CreateAndResolve(t *testing.T) {
	svc, notifications := setupShareServiceTest(t, time.Hour)

	link, err := svc.CreateLink("321734998OCI25AICFA")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link.URL, "http://localhost:8080/api/v1/share/"))
	assert.Equal(t, []string{MessageQRGenerated}, toastMessages(notifications))

	details, err := svc.Resolve(link.Token)
	require.NoError(t, err)
	assert.Equal(t, "ASEEM BAJAJ", details.Certificate.StudentName)
	assert.Equal(t, "Oracle University", details.Certificate.Institution)
}

func TestShareService_UnknownCertificate(t *testing.T) {
	svc, notifications := setupShareServiceTest(t, time.Hour)

	_, err := svc.CreateLink("FAKE123")
	assert.ErrorIs(t, err, ErrCertificateNotFound)
	assert.Equal(t, []string{MessageCertificateNotFound}, toastMessages(notifications))
}

func TestShareService_RejectsBadTokens(t *testing.T) {
	svc, _ := setupShareServiceTest(t, time.Hour)

	_, err := svc.Resolve("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidShareToken)

	expired, _, err := util.GenerateShareToken("BA2026001", "share-secret", -time.Minute)
	require.NoError(t, err)
	_, err = svc.Resolve(expired)
	assert.ErrorIs(t, err, ErrInvalidShareToken)

	forged, _, err := util.GenerateShareToken("BA2026001", "other-secret", time.Hour)
	require.NoError(t, err)
	_, err = svc.Resolve(forged)
	assert.ErrorIs(t, err, ErrInvalidShareToken)
}
