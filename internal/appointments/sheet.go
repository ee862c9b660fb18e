package appointments

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/lumiere-clinic/booking-assistant/pkg/logging"
)

// SheetSource reads appointment rows from the Google Sheet the
// automation maintains. The first row of the range is the header.
type SheetSource struct {
	svc           *gsheets.Service
	spreadsheetID string
	readRange     string
	logger        *logging.Logger
}

// NewSheetSource builds a read-only sheet client from a service-account
// credentials file.
func NewSheetSource(ctx context.Context, credentialsPath, spreadsheetID, readRange string, logger *logging.Logger) (*SheetSource, error) {
	if logger == nil {
		logger = logging.Default()
	}
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(gsheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("appointments: create sheets service: %w", err)
	}
	return &SheetSource{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		logger:        logger.Component("sheet"),
	}, nil
}

// Records fetches the worksheet and maps every data row onto its header
// fields. Short rows read as blank in the missing columns.
func (s *SheetSource) Records(ctx context.Context) ([]Record, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("appointments: read sheet %s: %w", s.readRange, err)
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}

	header := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		header = append(header, strings.TrimSpace(fmt.Sprint(cell)))
	}

	records := make([]Record, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = fmt.Sprint(row[i])
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	s.logger.Debug("sheet rows loaded", "rows", len(records))
	return records, nil
}
