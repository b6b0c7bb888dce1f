// Package sheets exports event registrations to a Google spreadsheet.
// The export is best effort: any failure is logged and never surfaces
// to the user flow that triggered it.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/avlodventures/eventbot/internal/config"
	"github.com/avlodventures/eventbot/internal/logger"
)

// Row is a single attendee line appended to an event worksheet.
type Row struct {
	FullName string
	Phone    string
}

// Exporter appends registration rows to per-event worksheets inside a
// single configured spreadsheet. A nil Exporter is valid and does nothing.
type Exporter struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New builds an Exporter from config. Returns (nil, nil) when the
// integration is not configured, so callers can treat export as optional.
func New(ctx context.Context, cfg config.SheetsConfig) (*Exporter, error) {
	if strings.TrimSpace(cfg.CredentialsFile) == "" || strings.TrimSpace(cfg.SpreadsheetID) == "" {
		logger.Info(ctx, "sheets", "export.disabled")
		return nil, nil
	}
	if _, err := os.Stat(cfg.CredentialsFile); err != nil {
		return nil, fmt.Errorf("sheets credentials file: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	logger.Info(ctx, "sheets", "export.enabled",
		slog.String("spreadsheet_id", cfg.SpreadsheetID),
	)
	return &Exporter{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// Enabled reports whether exporting is active.
func (e *Exporter) Enabled() bool { return e != nil && e.svc != nil }

// Append adds a row to the worksheet named after the event, creating the
// worksheet with a header on first use.
func (e *Exporter) Append(ctx context.Context, eventTitle string, row Row) error {
	if !e.Enabled() {
		return nil
	}
	start := time.Now()

	sheetTitle := worksheetTitle(eventTitle)
	if err := e.ensureWorksheet(ctx, sheetTitle); err != nil {
		return err
	}

	values := &sheetsapi.ValueRange{
		Values: [][]any{{row.FullName, row.Phone}},
	}
	_, err := e.svc.Spreadsheets.Values.
		Append(e.spreadsheetID, sheetTitle+"!A:B", values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}

	logger.Debug(ctx, "sheets", "row.appended",
		slog.String("sheet", sheetTitle),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}

func (e *Exporter) ensureWorksheet(ctx context.Context, title string) error {
	doc, err := e.svc.Spreadsheets.Get(e.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets get: %w", err)
	}
	for _, s := range doc.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			return nil
		}
	}

	_, err = e.svc.Spreadsheets.BatchUpdate(e.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets add worksheet: %w", err)
	}

	header := &sheetsapi.ValueRange{Values: [][]any{{"Name", "Phone"}}}
	_, err = e.svc.Spreadsheets.Values.
		Append(e.spreadsheetID, title+"!A:B", header).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets header: %w", err)
	}
	return nil
}

// worksheetTitle derives a worksheet name from an event title. Sheet
// titles are capped at 100 characters and must not contain certain
// symbols; the cap counts runes so a Cyrillic title is not cut
// mid-character.
func worksheetTitle(eventTitle string) string {
	t := strings.TrimSpace(eventTitle)
	if t == "" {
		t = "Event"
	}
	replacer := strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")
	t = replacer.Replace(t)
	if r := []rune(t); len(r) > 100 {
		t = string(r[:100])
	}
	return t
}
