package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/fittrack/internal/config"
	"github.com/mamadbah2/fittrack/internal/domain/models"
)

// Exporter appends daily summaries to an external report.
type Exporter interface {
	AppendSummary(ctx context.Context, summary models.DailyNutritionSummary) error
}

// GoogleSheetExporter appends one row per summary using the Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Range == "" {
		return nil, fmt.Errorf("sheet range must not be empty")
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.Range,
		logger:        logger,
	}, nil
}

// AppendSummary appends the summary as a new row of the configured range.
func (e *GoogleSheetExporter) AppendSummary(ctx context.Context, summary models.DailyNutritionSummary) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{SummaryRow(summary)}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append summary row into range %s: %w", e.sheetRange, err)
	}

	e.logger.Debug("summary row appended",
		zap.String("range", e.sheetRange),
		zap.Int64("user_id", summary.UserID),
		zap.String("date", models.FormatDate(summary.Date)))
	return nil
}

// SummaryRow lays a summary out as: date, user, calories, proteins, carbs,
// fats, meals, water ml, updated at.
func SummaryRow(summary models.DailyNutritionSummary) []interface{} {
	return []interface{}{
		models.FormatDate(summary.Date),
		summary.UserID,
		round2(summary.TotalCalories),
		round2(summary.TotalProteins),
		round2(summary.TotalCarbohydrates),
		round2(summary.TotalFats),
		summary.MealsConsumed,
		summary.WaterIntakeMl,
		summary.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
