package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/ikkim/certificate-validator/internal/app/view"
	apperrors "github.com/ikkim/certificate-validator/internal/errors"
	"github.com/ikkim/certificate-validator/internal/middleware"
	"github.com/ikkim/certificate-validator/pkg/clock"
)

// PageController serves the server-rendered single page.
type PageController struct {
	tabs          service.TabService
	verification  service.VerificationService
	uploads       service.UploadService
	certificates  service.CertificateService
	notifications service.NotificationService
	clock         clock.Clock
}

func NewPageController(
	tabs service.TabService,
	verification service.VerificationService,
	uploads service.UploadService,
	certificates service.CertificateService,
	notifications service.NotificationService,
	clk clock.Clock,
) *PageController {
	if clk == nil {
		clk = clock.New()
	}
	return &PageController{
		tabs:          tabs,
		verification:  verification,
		uploads:       uploads,
		certificates:  certificates,
		notifications: notifications,
		clock:         clk,
	}
}

// Index renders the current tab without re-running its setup
// GET /
func (ctrl *PageController) Index(c *gin.Context) {
	ctrl.render(c, http.StatusOK, "")
}

// ShowTab activates a tab and renders the page
// GET /tabs/:tab
func (ctrl *PageController) ShowTab(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := http.StatusOK
	if _, err := ctrl.tabs.Activate(c.Request.Context(), c.Param("tab")); err != nil {
		// 없는 탭이면 현재 화면을 그대로 보여줌
		if errors.Is(err, service.ErrTabNotFound) {
			status = http.StatusNotFound
		} else {
			log.Error("Failed to activate tab", err, map[string]interface{}{
				"tab": c.Param("tab"),
			})
			status = http.StatusInternalServerError
		}
	}

	ctrl.render(c, status, strings.TrimSpace(c.Query("q")))
}

func (ctrl *PageController) render(c *gin.Context, status int, query string) {
	log := middleware.GetLoggerFromContext(c)

	page, err := ctrl.buildPage(query)
	if err != nil {
		log.Error("Failed to build page", err, nil)
		apperrors.InternalError(c, "")
		return
	}
	c.HTML(status, view.PageTemplate, page)
}

func (ctrl *PageController) buildPage(query string) (*view.PageView, error) {
	current := ctrl.tabs.Current()

	dashboard, err := dashboardView(ctrl.verification)
	if err != nil {
		return nil, err
	}

	var certs []model.Certificate
	if query != "" && current == model.TabAdmin {
		certs, err = ctrl.certificates.Search(query)
	} else {
		certs, err = ctrl.certificates.List()
	}
	if err != nil {
		return nil, err
	}
	admin := view.BuildAdminTable(certs)
	admin.Query = query

	return &view.PageView{
		Current:    current,
		Tabs:       view.BuildTabLinks(current),
		Dashboard:  *dashboard,
		Verify:     view.BuildVerifyView(ctrl.uploads.State()),
		Admin:      admin,
		Blockchain: view.BuildBlockchainInfo(),
		Toasts:     ctrl.notifications.Visible(),
		Generated:  ctrl.clock.Now(),
	}, nil
}
