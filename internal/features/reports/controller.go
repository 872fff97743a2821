package reports

import (
	"errors"

	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/common/models"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/query"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/report"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	Assembler *report.Assembler
}

func NewReportController(assembler *report.Assembler) *ReportController {
	return &ReportController{Assembler: assembler}
}

// RetrieveAll builds the handler for one report variant. Every variant shares
// the same flow: parse the query string, run the assembler, wrap the rows
// under the report name next to the pagination block.
func (c *ReportController) RetrieveAll(cfg *report.Config) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		desc, err := query.Parse(ctx.Queries(), cfg.FilterKeys(), cfg.SearchKeys())
		if err != nil {
			var ve *query.ValidationError
			if errors.As(err, &ve) {
				return ctx.Status(fiber.StatusBadRequest).JSON(models.ErrBadRequest(ve.Error()))
			}
			return ctx.Status(fiber.StatusBadRequest).JSON(models.ErrBadRequest(err.Error()))
		}

		result, err := c.Assembler.RetrieveAll(ctx.Context(), cfg, desc)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return ctx.JSON(fiber.Map{
			cfg.Name:     result.Rows,
			"pagination": result.Pagination,
		})
	}
}
