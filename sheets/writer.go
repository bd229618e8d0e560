package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"quotes-scraper/csvwriter"
	"quotes-scraper/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// maxSheetNameLen is the longest tab title Google Sheets accepts
const maxSheetNameLen = 100

// Writer handles writing quotes to Google Sheets
type Writer struct {
	service       *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
}

// NewWriter creates a new Google Sheets writer
func NewWriter(ctx context.Context, spreadsheetID string, credentialsPath string, logger *slog.Logger) (*Writer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	credsJSON, err := loadCredentials(credentialsPath, logger)
	if err != nil {
		return nil, err
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// loadCredentials reads service account JSON from a file or from
// GOOGLE_SHEETS_CREDENTIALS
func loadCredentials(credentialsPath string, logger *slog.Logger) ([]byte, error) {
	var credsJSON []byte

	if credentialsPath != "" {
		data, err := os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		credsJSON = data
	} else {
		credsEnv := strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_CREDENTIALS"))
		if credsEnv == "" {
			return nil, fmt.Errorf("credentials not found: GOOGLE_SHEETS_CREDENTIALS environment variable is empty or not set")
		}
		logger.Debug("reading credentials from environment", slog.Int("bytes", len(credsEnv)))
		credsJSON = []byte(credsEnv)
	}

	var creds map[string]interface{}
	if err := json.Unmarshal(credsJSON, &creds); err != nil {
		return nil, fmt.Errorf("invalid credentials JSON: %w", err)
	}
	if creds["type"] != "service_account" {
		return nil, fmt.Errorf("credentials must be a service account JSON file (type: service_account), got type: %v", creds["type"])
	}

	return credsJSON, nil
}

// CreateSheetAndWriteQuotes creates a new sheet at the front of the
// spreadsheet and writes quotes to it.
// Returns the sheet name and sheet ID (gid) that was created
func (w *Writer) CreateSheetAndWriteQuotes(ctx context.Context, sheetName string, quotes []models.Quote, sourceURL string) (string, int64, error) {
	sheetName = sanitizeSheetName(sheetName)

	values, err := buildValues(quotes, sourceURL)
	if err != nil {
		return "", 0, err
	}

	batchUpdateRequest := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: sheetName,
						Index: 0,
					},
				},
			},
		},
	}

	batchUpdateResp, err := w.service.Spreadsheets.BatchUpdate(w.spreadsheetID, batchUpdateRequest).Context(ctx).Do()
	if err != nil {
		return "", 0, fmt.Errorf("failed to create sheet: %w", err)
	}

	var sheetID int64
	if len(batchUpdateResp.Replies) > 0 && batchUpdateResp.Replies[0].AddSheet != nil {
		sheetID = batchUpdateResp.Replies[0].AddSheet.Properties.SheetId
	}

	w.logger.Debug("created sheet", slog.String("sheet", sheetName), slog.Int64("sheet_id", sheetID))

	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err = w.service.Spreadsheets.Values.Update(w.spreadsheetID, fmt.Sprintf("%s!A1", sheetName), valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return "", 0, fmt.Errorf("failed to write to sheet: %w", err)
	}

	w.logger.Info("wrote quotes to Google Sheets",
		slog.String("sheet", sheetName),
		slog.Int("quotes", len(quotes)),
	)
	return sheetName, sheetID, nil
}

// buildValues lays out the metadata row, the header and one row per quote
func buildValues(quotes []models.Quote, sourceURL string) ([][]interface{}, error) {
	values := make([][]interface{}, 0, len(quotes)+2)

	if sourceURL != "" {
		values = append(values, []interface{}{"URL", sourceURL, "Quotes", len(quotes)})
	}

	header := make([]interface{}, len(csvwriter.Header))
	for i, name := range csvwriter.Header {
		header[i] = name
	}
	values = append(values, header)

	for i, quote := range quotes {
		tags, err := csvwriter.EncodeTags(quote.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode tags of quote %d: %w", i, err)
		}
		values = append(values, []interface{}{quote.Text, quote.Author, tags})
	}

	return values, nil
}

// sanitizeSheetName removes invalid characters from sheet name
func sanitizeSheetName(name string) string {
	// Google Sheets sheet names cannot contain: / \ ? * [ ]
	invalidChars := []string{"/", "\\", "?", "*", "[", "]"}
	result := name
	for _, char := range invalidChars {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	if result == "" {
		result = "Sheet1"
	}
	if runes := []rune(result); len(runes) > maxSheetNameLen {
		result = string(runes[:maxSheetNameLen])
	}
	return result
}

// ExtractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL
func ExtractSpreadsheetID(url string) string {
	// https://docs.google.com/spreadsheets/d/SPREADSHEET_ID/edit?usp=sharing
	parts := strings.Split(url, "/d/")
	if len(parts) < 2 {
		return ""
	}

	idPart := parts[1]
	if idx := strings.Index(idPart, "/"); idx != -1 {
		idPart = idPart[:idx]
	}
	if idx := strings.Index(idPart, "?"); idx != -1 {
		idPart = idPart[:idx]
	}

	return strings.TrimSpace(idPart)
}
