package referralbundle

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tealeg/xlsx"
)

// SheetStore is the append-only waiting list workbook. One store per
// deployment; the mutex stands in for the single-writer guarantee the old
// hosted sheet got from its platform. Rows are never edited or removed here,
// cleanup is an administrative action on the file itself.
type SheetStore struct {
	path  string
	loc   *time.Location
	mutex sync.Mutex
}

func NewSheetStore(path string, timezone string) (*SheetStore, error) {
	if path == "" {
		path = Default_WorkbookPath
	}
	if timezone == "" {
		timezone = Default_Timezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return &SheetStore{path: path, loc: loc}, nil
}

// Append writes one waiting list row and returns its sequence number along
// with the submitted-at timestamp that went into the row. The sequence is
// always the count of data rows already present plus one, so the first row
// is #1 no matter what. The header row is created only when the sheet does
// not exist yet and is never touched again.
func (s *SheetStore) Append(record *ReferralRecord) (uint, string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := s.load()
	if err != nil {
		return 0, "", &StoreUnavailable{Err: err}
	}

	sheet, err := ensureSheet(f, SheetName_WaitingList, WaitingListHeader)
	if err != nil {
		return 0, "", &StoreUnavailable{Err: err}
	}

	sequence := uint(len(sheet.Rows)) // data rows + 1, header row included in len
	submittedAt := s.now()

	row := sheet.AddRow()
	row.AddCell().SetInt(int(sequence))
	for _, value := range record.columnValues() {
		row.AddCell().SetString(value)
	}
	row.AddCell().SetString(submittedAt)

	if err := f.Save(s.path); err != nil {
		return 0, "", &StoreUnavailable{Err: err}
	}

	return sequence, submittedAt, nil
}

// MaybeAddMailingListEntry adds the submitter to the mailing list sheet when
// the submission opted in and an email resolves. The sheet is created with
// its header on first use. Returns whether a row was written and the
// date-added timestamp.
func (s *SheetStore) MaybeAddMailingListEntry(record *ReferralRecord) (bool, string, error) {
	if !record.EmailOptIn {
		return false, "", nil
	}

	name, email, phone := record.ResolveMailingContact()
	if email == "" {
		return false, "", nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := s.load()
	if err != nil {
		return false, "", err
	}

	sheet, err := ensureSheet(f, SheetName_MailingList, MailingListHeader)
	if err != nil {
		return false, "", err
	}

	dateAdded := s.now()
	row := sheet.AddRow()
	row.AddCell().SetString(name)
	row.AddCell().SetString(email)
	row.AddCell().SetString(phone)
	row.AddCell().SetString(dateAdded)

	if err := f.Save(s.path); err != nil {
		return false, "", err
	}

	return true, dateAdded, nil
}

// Export returns the whole workbook as xlsx bytes, the snapshot that gets
// attached to every notification mail.
func (s *SheetStore) Export() ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, err
	}
	if len(f.Sheets) == 0 {
		if _, err := ensureSheet(f, SheetName_WaitingList, WaitingListHeader); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RowCount returns the number of data rows on the waiting list sheet
func (s *SheetStore) RowCount() (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := s.load()
	if err != nil {
		return 0, err
	}
	sheet := f.Sheet[SheetName_WaitingList]
	if sheet == nil || len(sheet.Rows) == 0 {
		return 0, nil
	}
	return len(sheet.Rows) - 1, nil
}

func (s *SheetStore) Path() string {
	return s.path
}

func (s *SheetStore) load() (*xlsx.File, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return xlsx.NewFile(), nil
		}
		return nil, err
	}
	return xlsx.OpenFile(s.path)
}

// ensureSheet returns the named sheet, creating it with its header row when
// it does not exist yet. An existing sheet is left untouched.
func ensureSheet(f *xlsx.File, name string, header []string) (*xlsx.Sheet, error) {
	if sheet := f.Sheet[name]; sheet != nil {
		return sheet, nil
	}
	sheet, err := f.AddSheet(name)
	if err != nil {
		return nil, err
	}
	headerRow := sheet.AddRow()
	for _, value := range header {
		headerRow.AddCell().SetString(value)
	}
	return sheet, nil
}

func (s *SheetStore) now() string {
	return time.Now().In(s.loc).Format("1/2/2006, 3:04:05 PM")
}
