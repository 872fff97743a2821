package export

import (
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/config"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/features/reports"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	Controller *ExportController
	Config     *config.Config
}

func NewExportApi(controller *ExportController, cfg *config.Config) *ExportApi {
	return &ExportApi{Controller: controller, Config: cfg}
}

func (api *ExportApi) Setup(app *fiber.App) {
	cfg := reports.PurchaseReportDetails

	app.Get("/v1/purchaseReportDetails/export",
		middleware.AuthMiddleware(api.Config.SkipAuth),
		middleware.RequireRoles(api.Config.SkipAuth, cfg.Roles...),
		api.Controller.Export(cfg),
	)

	// Generated workbooks are served straight off disk.
	app.Static(api.Config.FSURL, api.Config.FSPath)
}
