package referralbundle

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hopehouse_backend/app/core"
)

type sentMail struct {
	From    string
	To      []string
	Subject string
	Body    string
	Files   []string
}

func newTestController(t *testing.T) (*ReferralController, *[]sentMail) {
	t.Helper()

	tmpDir := t.TempDir()
	core.Config = core.Configuration{}
	core.Config.Server.TmpPath = filepath.Join(tmpDir, "tmp")

	db, err := gorm.Open("sqlite3", filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.Empty(t, db.AutoMigrate(&Referral{}, &MailingListEntry{}).GetErrors())

	store, err := NewSheetStore(filepath.Join(tmpDir, "waiting_list.xlsx"), "")
	require.NoError(t, err)

	hc := NewReferralController(db, store)

	mails := &[]sentMail{}
	hc.sendMail = func(from string, to []string, cc []string, bcc []string, subject string, body string, files []string) error {
		*mails = append(*mails, sentMail{From: from, To: to, Subject: subject, Body: body, Files: files})
		return nil
	}

	return hc, mails
}

func postJSON(t *testing.T, hc *ReferralController, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/referrals", strings.NewReader(string(body)))
	w := httptest.NewRecorder()
	hc.SubmitReferralHandler(w, r)
	return w
}

func TestSubmitReferralWithOptIn(t *testing.T) {
	hc, mails := newTestController(t)

	w := postJSON(t, hc, map[string]interface{}{
		"clientName":  "Jane Doe",
		"clientEmail": "jane@x.com",
		"emailOptIn":  true,
	})

	assert.Equal(t, "<html><body>OK</body></html>", w.Body.String())

	referrals := Referrals{}
	hc.ormDB.Find(&referrals)
	require.Len(t, referrals, 1)
	assert.Equal(t, uint(1), referrals[0].SequenceNumber)
	assert.Equal(t, "Jane Doe", referrals[0].ParticipantName)
	assert.NotEmpty(t, referrals[0].SubmittedAt)

	entries := MailingListEntries{}
	hc.ormDB.Find(&entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "jane@x.com", entries[0].Email)

	require.Len(t, *mails, 1)
	mail := (*mails)[0]
	assert.Equal(t, []string{Default_RecipientEmail}, mail.To)
	assert.Contains(t, mail.Subject, "#1 — Jane Doe")
	require.Len(t, mail.Files, 1)
	assert.True(t, strings.HasSuffix(mail.Files[0], ".xlsx"))
	assert.Contains(t, mail.Body, "Jane Doe")
}

func TestSubmitReferralWithoutOptIn(t *testing.T) {
	hc, mails := newTestController(t)

	w := postJSON(t, hc, map[string]interface{}{
		"clientName":  "Jane Doe",
		"clientEmail": "jane@x.com",
		"emailOptIn":  false,
	})

	assert.Equal(t, "<html><body>OK</body></html>", w.Body.String())

	referrals := Referrals{}
	hc.ormDB.Find(&referrals)
	assert.Len(t, referrals, 1)

	entries := MailingListEntries{}
	hc.ormDB.Find(&entries)
	assert.Len(t, entries, 0)

	assert.Len(t, *mails, 1)
}

func TestSubmitReferralUnparseableBody(t *testing.T) {
	hc, mails := newTestController(t)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/referrals", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	hc.SubmitReferralHandler(w, r)

	assert.Contains(t, w.Body.String(), "Error:")

	count, err := hc.store.RowCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	referrals := Referrals{}
	hc.ormDB.Find(&referrals)
	assert.Len(t, referrals, 0)
	assert.Len(t, *mails, 0)
}

func TestSubmitReferralSequenceOrder(t *testing.T) {
	hc, mails := newTestController(t)

	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		w := postJSON(t, hc, map[string]interface{}{"clientName": name})
		assert.Equal(t, "<html><body>OK</body></html>", w.Body.String())
	}

	referrals := Referrals{}
	hc.ormDB.Order("sequence_number").Find(&referrals)
	require.Len(t, referrals, 3)
	for i, referral := range referrals {
		assert.Equal(t, uint(i+1), referral.SequenceNumber)
		assert.Equal(t, names[i], referral.ParticipantName)
	}

	require.Len(t, *mails, 3)
	assert.Contains(t, (*mails)[2].Subject, "#3 — Third")
}

func TestSubmitReferralFormPayload(t *testing.T) {
	hc, mails := newTestController(t)

	form := url.Values{}
	form.Set("payload", `{"clientName":"Jane Doe"}`)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/referrals", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	hc.SubmitReferralHandler(w, r)

	assert.Equal(t, "<html><body>OK</body></html>", w.Body.String())

	referrals := Referrals{}
	hc.ormDB.Find(&referrals)
	require.Len(t, referrals, 1)
	assert.Equal(t, "Jane Doe", referrals[0].ParticipantName)
	assert.Len(t, *mails, 1)
}

func TestSubmitReferralEmptySubmission(t *testing.T) {
	hc, mails := newTestController(t)

	w := postJSON(t, hc, map[string]interface{}{})
	assert.Equal(t, "<html><body>OK</body></html>", w.Body.String())

	referrals := Referrals{}
	hc.ormDB.Find(&referrals)
	require.Len(t, referrals, 1)
	assert.Equal(t, uint(1), referrals[0].SequenceNumber)
	assert.Equal(t, "", referrals[0].ParticipantName)

	require.Len(t, *mails, 1)
	assert.Equal(t, "Hope House — New Participant Referral — #1", (*mails)[0].Subject)
}

func TestSubmitReferralNotificationFailure(t *testing.T) {
	hc, _ := newTestController(t)
	hc.sendMail = func(from string, to []string, cc []string, bcc []string, subject string, body string, files []string) error {
		return errors.New("smtp down")
	}

	w := postJSON(t, hc, map[string]interface{}{"clientName": "Jane Doe"})
	assert.Contains(t, w.Body.String(), "Error:")
	assert.Contains(t, w.Body.String(), "smtp down")

	// the row stays recorded even though the caller sees a failure
	count, err := hc.store.RowCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInfoHandler(t *testing.T) {
	hc, _ := newTestController(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/referrals", nil)
	w := httptest.NewRecorder()
	hc.InfoHandler(w, r)

	assert.Equal(t, "<html><body>This endpoint accepts POST requests only.</body></html>", w.Body.String())
}

func TestGetReferralsHandler(t *testing.T) {
	hc, _ := newTestController(t)

	postJSON(t, hc, map[string]interface{}{"clientName": "Jane Doe"})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/referrals/list", nil)
	w := httptest.NewRecorder()
	hc.GetReferralsHandler(w, r)

	response := core.ResponseData{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Status)

	rows, ok := response.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestGetMailingListHandler(t *testing.T) {
	hc, _ := newTestController(t)

	postJSON(t, hc, map[string]interface{}{
		"clientName":  "Jane Doe",
		"clientEmail": "jane@x.com",
		"emailOptIn":  true,
	})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/mailinglist", nil)
	w := httptest.NewRecorder()
	hc.GetMailingListHandler(w, r)

	response := core.ResponseData{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Status)

	rows, ok := response.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)
}
