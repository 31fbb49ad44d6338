package controller

import (
	"context"

	"github.com/ikkim/certificate-validator/internal/app/model"
	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/ikkim/certificate-validator/internal/app/view"
)

// TabSetups builds each tab's content when it is activated. Activating the
// verify tab clears the previous upload.
func TabSetups(
	verification service.VerificationService,
	uploads service.UploadService,
	certificates service.CertificateService,
) map[model.Tab]service.TabSetup {
	return map[model.Tab]service.TabSetup{
		model.TabDashboard: func(context.Context) (interface{}, error) {
			return dashboardView(verification)
		},
		model.TabVerify: func(context.Context) (interface{}, error) {
			uploads.Reset()
			return view.BuildVerifyView(uploads.State()), nil
		},
		model.TabAdmin: func(context.Context) (interface{}, error) {
			certs, err := certificates.List()
			if err != nil {
				return nil, err
			}
			return view.BuildAdminTable(certs), nil
		},
		model.TabBlockchain: func(context.Context) (interface{}, error) {
			return view.BuildBlockchainInfo(), nil
		},
	}
}

func dashboardView(verification service.VerificationService) (*view.DashboardView, error) {
	stats, err := verification.GetStats()
	if err != nil {
		return nil, err
	}
	recent, err := verification.ListRecent()
	if err != nil {
		return nil, err
	}
	v := view.BuildDashboard(stats, recent)
	return &v, nil
}
