package export

import (
	"errors"

	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/common/models"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/query"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/report"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	ExportService ExportService
}

func NewExportController(exportService ExportService) *ExportController {
	return &ExportController{ExportService: exportService}
}

type ExportResponse struct {
	DownloadLink string `json:"downloadLink"`
}

// Export accepts the same filter and search keys as the report itself, so a
// filtered view exports exactly what the screen shows.
func (c *ExportController) Export(cfg *report.Config) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		desc, err := query.Parse(ctx.Queries(), cfg.FilterKeys(), cfg.SearchKeys())
		if err != nil {
			var ve *query.ValidationError
			if errors.As(err, &ve) {
				return ctx.Status(fiber.StatusBadRequest).JSON(models.ErrBadRequest(ve.Error()))
			}
			return ctx.Status(fiber.StatusBadRequest).JSON(models.ErrBadRequest(err.Error()))
		}

		link, err := c.ExportService.Export(ctx.Context(), cfg, desc)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return ctx.JSON(ExportResponse{DownloadLink: link})
	}
}
