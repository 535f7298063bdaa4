package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	// spreadsheetIDPattern matches a bare spreadsheet ID.
	spreadsheetIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// columnLetterPattern matches an A1-style column reference.
	columnLetterPattern = regexp.MustCompile(`^[A-Z]{1,2}$`)
)

// SheetsSource reads terms from a column of a Google Sheet, authenticating
// with the OAuth installed-app flow. The user token is cached on disk so the
// browser round trip only happens once.
type SheetsSource struct {
	spreadsheetID   string
	sheetName       string
	credentialsPath string
	tokenPath       string

	svc *sheets.Service
}

// NewSheetsSource validates the spreadsheet reference and returns a
// SheetsSource. ref may be a full docs.google.com URL or a bare spreadsheet
// ID; sheetName may be empty to use the first tab.
func NewSheetsSource(ref, sheetName, credentialsPath, tokenPath string) (*SheetsSource, error) {
	id, err := ExtractSpreadsheetID(ref)
	if err != nil {
		return nil, err
	}

	return &SheetsSource{
		spreadsheetID:   id,
		sheetName:       sheetName,
		credentialsPath: credentialsPath,
		tokenPath:       tokenPath,
	}, nil
}

// ExtractSpreadsheetID pulls the spreadsheet ID out of a Google Sheets URL,
// or validates ref as a bare ID.
func ExtractSpreadsheetID(ref string) (string, error) {
	if !strings.HasPrefix(ref, "http") {
		if !spreadsheetIDPattern.MatchString(ref) {
			return "", fmt.Errorf("%w: %q is not a valid spreadsheet ID", ErrInvalidSheetRef, ref)
		}
		return ref, nil
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSheetRef, err)
	}

	if parsed.Host != "docs.google.com" && parsed.Host != "sheets.google.com" {
		return "", fmt.Errorf("%w: unexpected host %q", ErrInvalidSheetRef, parsed.Host)
	}

	const marker = "/spreadsheets/d/"
	idx := strings.Index(parsed.Path, marker)
	if idx < 0 {
		return "", fmt.Errorf("%w: URL does not contain %s", ErrInvalidSheetRef, marker)
	}

	id := parsed.Path[idx+len(marker):]
	if end := strings.IndexByte(id, '/'); end >= 0 {
		id = id[:end]
	}
	if id == "" {
		return "", fmt.Errorf("%w: empty spreadsheet ID", ErrInvalidSheetRef)
	}

	return id, nil
}

// ReadColumn extracts the named column's values in sheet order. The column
// may be a header name or a bare column letter; blank cells are skipped.
func (s *SheetsSource) ReadColumn(ctx context.Context, column string) ([]string, error) {
	svc, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	sheetTitle, err := s.resolveSheetTitle(ctx, svc)
	if err != nil {
		return nil, err
	}

	headers, err := s.readHeaders(ctx, svc, sheetTitle)
	if err != nil {
		return nil, err
	}

	colLetter := ""
	for i, h := range headers {
		if h == column {
			colLetter = columnLetter(i)
			break
		}
	}
	if colLetter == "" {
		// Fall back to treating the column as a letter reference (A, B, ...).
		upper := strings.ToUpper(column)
		if !columnLetterPattern.MatchString(upper) {
			return nil, fmt.Errorf("%w: %q (available columns: %s)",
				ErrColumnNotFound, column, strings.Join(headers, ", "))
		}
		colLetter = upper
	}

	rangeRef := fmt.Sprintf("'%s'!%s:%s", sheetTitle, colLetter, colLetter)
	resp, err := svc.Spreadsheets.Values.Get(s.spreadsheetID, rangeRef).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet column %s: %w", rangeRef, err)
	}

	var values []string
	rows := resp.Values
	if len(headers) > 0 && len(rows) > 0 {
		rows = rows[1:] // skip the header row
	}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if v := strings.TrimSpace(fmt.Sprint(row[0])); v != "" {
			values = append(values, v)
		}
	}

	return values, nil
}

// Info returns the spreadsheet title plus every tab and its headers.
func (s *SheetsSource) Info(ctx context.Context) (*Info, error) {
	svc, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}

	info := &Info{Title: meta.Properties.Title}
	for _, sheet := range meta.Sheets {
		headers, err := s.readHeaders(ctx, svc, sheet.Properties.Title)
		if err != nil {
			return nil, err
		}
		info.Sheets = append(info.Sheets, SheetInfo{
			Name:    sheet.Properties.Title,
			Headers: headers,
		})
	}

	return info, nil
}

// resolveSheetTitle returns the configured tab's title, or the first tab
// when none was requested.
func (s *SheetsSource) resolveSheetTitle(ctx context.Context, svc *sheets.Service) (string, error) {
	meta, err := svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}

	if len(meta.Sheets) == 0 {
		return "", ErrNoSheets
	}

	if s.sheetName == "" {
		return meta.Sheets[0].Properties.Title, nil
	}

	available := make([]string, 0, len(meta.Sheets))
	for _, sheet := range meta.Sheets {
		if sheet.Properties.Title == s.sheetName {
			return s.sheetName, nil
		}
		available = append(available, sheet.Properties.Title)
	}

	return "", fmt.Errorf("%w: %q (available sheets: %s)",
		ErrSheetNotFound, s.sheetName, strings.Join(available, ", "))
}

// readHeaders returns the first row of the given tab.
func (s *SheetsSource) readHeaders(ctx context.Context, svc *sheets.Service, sheetTitle string) ([]string, error) {
	rangeRef := fmt.Sprintf("'%s'!1:1", sheetTitle)
	resp, err := svc.Spreadsheets.Values.Get(s.spreadsheetID, rangeRef).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet headers: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}

	headers := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		headers = append(headers, fmt.Sprint(cell))
	}
	return headers, nil
}

// service lazily authenticates and builds the Sheets API client.
func (s *SheetsSource) service(ctx context.Context) (*sheets.Service, error) {
	if s.svc != nil {
		return s.svc, nil
	}

	b, err := os.ReadFile(s.credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("Google credentials file not found: %s: %w", s.credentialsPath, err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	token, err := s.loadToken()
	if err != nil {
		token, err = s.tokenFromWeb(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
		if err := s.saveToken(token); err != nil {
			return nil, err
		}
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	s.svc = svc
	return svc, nil
}

// loadToken reads a cached OAuth token from the token file.
func (s *SheetsSource) loadToken() (*oauth2.Token, error) {
	f, err := os.Open(s.tokenPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode cached token: %w", err)
	}
	return token, nil
}

// tokenFromWeb runs the manual authorization round trip: print the consent
// URL, read the authorization code from stdin, exchange it for a token.
func (s *SheetsSource) tokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// saveToken caches the OAuth token for future runs.
func (s *SheetsSource) saveToken(token *oauth2.Token) error {
	f, err := os.OpenFile(s.tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to cache OAuth token: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode OAuth token: %w", err)
	}
	return nil
}

// columnLetter converts a zero-based column index to its A1 letter form
// (0 -> A, 25 -> Z, 26 -> AA).
func columnLetter(index int) string {
	letter := ""
	for index >= 0 {
		letter = string(rune('A'+index%26)) + letter
		index = index/26 - 1
	}
	return letter
}
