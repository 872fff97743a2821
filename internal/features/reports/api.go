package reports

import (
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/config"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	Controller *ReportController
	Config     *config.Config
}

func NewReportApi(controller *ReportController, cfg *config.Config) *ReportApi {
	return &ReportApi{Controller: controller, Config: cfg}
}

func (api *ReportApi) Setup(app *fiber.App) {
	for _, cfg := range All() {
		app.Get("/v1/"+cfg.Name,
			middleware.AuthMiddleware(api.Config.SkipAuth),
			middleware.RequireRoles(api.Config.SkipAuth, cfg.Roles...),
			api.Controller.RetrieveAll(cfg),
		)
	}
}
