package controller

import (
	"net/http"
	"testing"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func TestPageController_Index(t *testing.T) {
	env := setupControllerTest(t)

	w := env.do(t, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `<section id="dashboard" class="tab-content active">`)
	assert.Contains(t, body, "1,547")
	assert.Contains(t, body, "91%")
	assert.Empty(t, env.notifications.Visible())
}

func TestPageController_ShowTab(t *testing.T) {
	env := setupControllerTest(t)

	w := env.do(t, http.MethodGet, "/tabs/admin", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<section id="admin" class="tab-content active">`)
	assert.Contains(t, w.Body.String(), "MARCELINE ANDERSON")
	assert.Equal(t, model.TabAdmin, env.tabs.Current())
	assert.Equal(t, []string{"Switched to Admin 📋"}, env.toastMessages())
}

func TestPageController_ShowTab_Search(t *testing.T) {
	env := setupControllerTest(t)

	w := env.do(t, http.MethodGet, "/tabs/admin?q=oracle", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "321734998OCI25AICFA")
	assert.Contains(t, body, "321734998OCI25GAIOCP")
	assert.NotContains(t, body, "HS2024MA")
	assert.Contains(t, env.toastMessages(), "Found 2 certificates 🔍")
}

func TestPageController_ShowTab_Unknown(t *testing.T) {
	env := setupControllerTest(t)

	w := env.do(t, http.MethodGet, "/tabs/settings", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `<section id="dashboard" class="tab-content active">`)
	assert.Equal(t, model.TabDashboard, env.tabs.Current())
	assert.Empty(t, env.notifications.Visible())
}
