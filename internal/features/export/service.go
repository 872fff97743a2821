// Package export renders a report variant into a downloadable spreadsheet.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/config"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/query"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/report"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// exportTTL is how long a generated file stays on disk before the cleanup
// job removes it.
const exportTTL = 24 * time.Hour

// exportPageSize is large enough to pull every matching row in one page.
const exportPageSize = 1000000

type ExportService interface {
	Export(ctx context.Context, cfg *report.Config, desc *query.Descriptor) (string, error)
}

type ExportServiceImpl struct {
	Assembler *report.Assembler
	Config    *config.Config
	Logger    *zap.Logger
	cron      *cron.Cron
}

func NewExportService(lc fx.Lifecycle, assembler *report.Assembler, cfg *config.Config, logger *zap.Logger) ExportService {
	svc := &ExportServiceImpl{
		Assembler: assembler,
		Config:    cfg,
		Logger:    logger,
		cron:      cron.New(),
	}

	svc.cron.AddFunc("@hourly", svc.cleanup)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			svc.cron.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			svc.cron.Stop()
			return nil
		},
	})

	return svc
}

// Export runs the full report (pagination widened to cover every row),
// writes it as an xlsx file under the configured export directory, and
// returns the public download link.
func (s *ExportServiceImpl) Export(ctx context.Context, cfg *report.Config, desc *query.Descriptor) (string, error) {
	full := *desc
	full.Page = 1
	full.PageSize = exportPageSize

	result, err := s.Assembler.RetrieveAll(ctx, cfg, &full)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Config.FSPath, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s.xlsx", cfg.Name, uuid.NewString())
	path := filepath.Join(s.Config.FSPath, name)

	if err := writeWorkbook(path, cfg, result.Rows); err != nil {
		return "", err
	}

	s.Logger.Info("report exported",
		zap.String("report", cfg.Name),
		zap.Int("rows", len(result.Rows)),
		zap.String("file", name))

	return s.Config.FSURL + "/" + name, nil
}

// columnOrder lists the output columns of a report in a stable order:
// primary fields, then relation fields, then computed values.
func columnOrder(cfg *report.Config) []string {
	columns := make([]string, 0, len(cfg.Fields))
	columns = append(columns, cfg.Fields...)
	for _, rel := range cfg.Relations {
		if rel.Nested {
			continue
		}
		columns = append(columns, rel.Fields...)
	}
	for _, cf := range cfg.Computed {
		columns = append(columns, cf.Name)
	}
	return columns
}

func writeWorkbook(path string, cfg *report.Config, rows []bson.M) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	columns := columnOrder(cfg)

	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, column); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for i, column := range columns {
			value, ok := row[column]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

// cleanup removes export files older than the TTL.
func (s *ExportServiceImpl) cleanup() {
	entries, err := os.ReadDir(s.Config.FSPath)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-exportTTL)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.Config.FSPath, entry.Name())
			if err := os.Remove(path); err != nil {
				s.Logger.Warn("failed to remove expired export", zap.String("file", entry.Name()), zap.Error(err))
			}
		}
	}
}
