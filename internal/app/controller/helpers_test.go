package controller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/certificate-validator/internal/app/repository"
	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/ikkim/certificate-validator/internal/app/view"
	"github.com/ikkim/certificate-validator/internal/db"
	"github.com/ikkim/certificate-validator/internal/websocket"
	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/ikkim/certificate-validator/pkg/util"
	"github.com/stretchr/testify/require"
)

const testShareSecret = "test-share-secret"

var testStart = time.Date(2025, 9, 21, 14, 30, 0, 0, time.UTC)

// testEnv wires every controller over a seeded in-memory database. Uploads
// run synchronously without stage delays.
type testEnv struct {
	router        *gin.Engine
	clock         *clock.Fake
	hub           *websocket.Hub
	notifications service.NotificationService
	certificates  service.CertificateService
	verification  service.VerificationService
	uploads       service.UploadService
	tabs          service.TabService
}

func setupControllerTest(t *testing.T) *testEnv {
	testDB, err := db.SetupSeededTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	fc := clock.NewFake(testStart)
	r := util.NewRand(42)
	hub := websocket.NewHub()

	certRepo := repository.NewCertificateRepository(testDB)
	verificationRepo := repository.NewVerificationRepository(testDB)

	notifications := service.NewNotificationService(service.DefaultNotificationOptions(), fc, hub)
	verification := service.NewVerificationService(certRepo, verificationRepo, r, fc, hub)
	certificates := service.NewCertificateService(certRepo, notifications, r, fc, hub)
	share := service.NewShareService(service.ShareOptions{
		Secret:  testShareSecret,
		Expiry:  time.Hour,
		BaseURL: "http://example.test",
	}, certRepo, certificates, notifications)
	exports := service.NewExportService(certRepo, verificationRepo, notifications, nil, fc)
	uploads := service.NewUploadService(service.UploadOptions{
		StageDelay: func() time.Duration { return 0 },
		Spawn:      func(f func()) { f() },
		Rand:       r,
	}, service.NewKeywordExtractor(r), verification, notifications, nil, nil, fc, hub)
	tabs := service.NewTabService(TabSetups(verification, uploads, certificates), notifications, hub)

	templates, err := view.Templates()
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(templates)

	pages := NewPageController(tabs, verification, uploads, certificates, notifications, fc)
	router.GET("/", pages.Index)
	router.GET("/tabs/:tab", pages.ShowTab)

	tabCtrl := NewTabController(tabs)
	router.GET("/tabs-api/current", tabCtrl.Current)
	router.POST("/tabs-api/:tab", tabCtrl.Activate)

	dashboard := NewDashboardController(verification)
	router.GET("/dashboard", dashboard.GetDashboard)
	router.GET("/dashboard/chart.png", dashboard.Chart(view.ChartPNG))
	router.GET("/dashboard/chart.svg", dashboard.Chart(view.ChartSVG))

	uploadCtrl := NewUploadController(uploads, service.DefaultMaxUploadBytes)
	router.POST("/uploads", uploadCtrl.Submit)
	router.GET("/uploads/current", uploadCtrl.Current)
	router.DELETE("/uploads/current", uploadCtrl.Reset)

	verificationCtrl := NewVerificationController(verification)
	router.POST("/verifications", verificationCtrl.Verify)
	router.GET("/verifications/recent", verificationCtrl.GetRecent)
	router.GET("/verifications/stats", verificationCtrl.GetStats)

	certCtrl := NewCertificateController(certificates, share)
	router.GET("/certificates", certCtrl.ListCertificates)
	router.POST("/certificates", certCtrl.CreateCertificate)
	router.PUT("/certificates/:id", certCtrl.UpdateCertificate)
	router.DELETE("/certificates/:id", certCtrl.DeleteCertificate)
	router.GET("/certificates/:id/details", certCtrl.GetDetails)
	router.POST("/certificates/:id/qr", certCtrl.GenerateQR)
	router.GET("/share/:token", certCtrl.ResolveShare)

	exportCtrl := NewExportController(exports)
	router.GET("/admin/export", exportCtrl.ExportJSON)
	router.GET("/admin/export.xlsx", exportCtrl.ExportXLSX)
	router.POST("/admin/backup", exportCtrl.Backup)

	notificationCtrl := NewNotificationController(notifications, hub)
	router.GET("/notifications", notificationCtrl.GetNotifications)
	router.DELETE("/notifications/:id", notificationCtrl.DismissNotification)

	return &testEnv{
		router:        router,
		clock:         fc,
		hub:           hub,
		notifications: notifications,
		certificates:  certificates,
		verification:  verification,
		uploads:       uploads,
		tabs:          tabs,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) upload(t *testing.T, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	return e.uploadTo(t, "/uploads", filename, contentType, content)
}

func (e *testEnv) uploadTo(t *testing.T, path, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (e *testEnv) toastMessages() []string {
	var messages []string
	for _, t := range e.notifications.Visible() {
		messages = append(messages, t.Message)
	}
	return messages
}
