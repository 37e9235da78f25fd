package referralbundle

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/jinzhu/copier"
	"github.com/jinzhu/gorm"

	"hopehouse_backend/app/core"
)

type MailSendFunc func(from string, to []string, cc []string, bcc []string, subject string, body string, files []string) error

type ReferralController struct {
	core.Controller
	ormDB    *gorm.DB
	store    *SheetStore
	sendMail MailSendFunc
}

func NewReferralController(ormDB *gorm.DB, store *SheetStore) *ReferralController {
	return &ReferralController{
		ormDB:    ormDB,
		store:    store,
		sendMail: core.SendMail,
	}
}

// submitReferral swagger:route POST /referrals referrals submitReferral
//
// accepts one referral form submission, either a raw JSON body or a form
// field named payload carrying a JSON string
//
// Responses:
//    default: HandleErrorData
//		  200: html fragment, OK or Error: <message>
func (c *ReferralController) SubmitReferralHandler(w http.ResponseWriter, r *http.Request) {

	data, err := c.readSubmission(r)
	if err != nil {
		c.SendHTML(w, "Error: "+err.Error(), http.StatusOK)
		return
	}

	record := NormalizeSubmission(data)

	sequence, submittedAt, err := c.store.Append(&record)
	if err != nil {
		log.Println(err)
		c.SendHTML(w, "Error: "+err.Error(), http.StatusOK)
		return
	}

	c.mirrorReferral(&record, sequence, submittedAt)
	c.addToMailingList(&record)

	if err := c.notifyReferral(&record, sequence); err != nil {
		log.Println(err)
		c.SendHTML(w, "Error: "+err.Error(), http.StatusOK)
		return
	}

	c.SendHTML(w, "OK", http.StatusOK)
}

func (c *ReferralController) InfoHandler(w http.ResponseWriter, r *http.Request) {
	c.SendHTML(w, "This endpoint accepts POST requests only.", http.StatusOK)
}

// getReferrals swagger:route GET /referrals/list referrals getReferrals
//
// retrieves the mirrored waiting list rows
//
// Responses:
//    default: HandleErrorData
//		  200:
//			data: []Referral
func (c *ReferralController) GetReferralsHandler(w http.ResponseWriter, r *http.Request) {
	referrals := Referrals{}
	c.ormDB.Order("sequence_number").Find(&referrals)
	c.SendJSON(w, &referrals, http.StatusOK)
}

// getMailingList swagger:route GET /mailinglist referrals getMailingList
//
// retrieves the mirrored mailing list entries
//
// Responses:
//    default: HandleErrorData
//		  200:
//			data: []MailingListEntry
func (c *ReferralController) GetMailingListHandler(w http.ResponseWriter, r *http.Request) {
	entries := MailingListEntries{}
	c.ormDB.Order("id").Find(&entries)
	c.SendJSON(w, &entries, http.StatusOK)
}

// exportReferrals swagger:route GET /referrals/export referrals exportReferrals
//
// downloads the current waiting list workbook
func (c *ReferralController) ExportReferralsHandler(w http.ResponseWriter, r *http.Request) {
	exportBytes, err := c.store.Export()
	if c.HandleError(err, w) {
		return
	}

	attachmentName := core.Config.Referral.AttachmentName
	if attachmentName == "" {
		attachmentName = Default_AttachmentName
	}

	exportFile := c.GetTmpUploadPath() + attachmentName
	if c.HandleError(ioutil.WriteFile(exportFile, exportBytes, 0644), w) {
		return
	}
	c.SendFileWithName(w, r, exportFile, attachmentName)
}

// readSubmission takes the payload form field when the form posted one,
// otherwise the raw request body, and decodes the JSON into a loose map so
// missing and mistyped fields survive until normalization.
func (c *ReferralController) readSubmission(r *http.Request) (map[string]interface{}, error) {

	data := map[string]interface{}{}

	if payload := r.FormValue("payload"); payload != "" {
		if err := json.Unmarshal([]byte(payload), &data); err != nil {
			return nil, &ParseError{Err: err}
		}
		return data, nil
	}

	if err := c.GetContent(&data, r); err != nil {
		return nil, &ParseError{Err: err}
	}
	return data, nil
}

// mirrorReferral copies the stored row into the database for the list
// endpoints. The workbook is authoritative, so a failed insert is only
// logged and the submission still counts as recorded.
func (c *ReferralController) mirrorReferral(record *ReferralRecord, sequence uint, submittedAt string) {
	referral := Referral{}
	if err := copier.Copy(&referral, record); err != nil {
		log.Println(err)
		return
	}
	referral.SequenceNumber = sequence
	referral.SubmittedAt = submittedAt

	if errs := c.ormDB.Create(&referral).GetErrors(); len(errs) > 0 {
		log.Println(errs)
	}
}

// addToMailingList is best effort, a failure here never fails the request
// because the waiting list row is already durable.
func (c *ReferralController) addToMailingList(record *ReferralRecord) {
	added, dateAdded, err := c.store.MaybeAddMailingListEntry(record)
	if err != nil {
		log.Println(err)
		return
	}
	if !added {
		return
	}

	name, email, phone := record.ResolveMailingContact()
	entry := MailingListEntry{
		Name:      name,
		Email:     email,
		Phone:     phone,
		DateAdded: dateAdded,
	}
	if errs := c.ormDB.Create(&entry).GetErrors(); len(errs) > 0 {
		log.Println(errs)
	}
}
