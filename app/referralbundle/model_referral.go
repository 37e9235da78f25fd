package referralbundle

import (
	"hopehouse_backend/app/core"
)

const (
	SheetName_WaitingList = "Waiting List"
	SheetName_MailingList = "Mailing List"
)

const (
	Default_RecipientEmail = "SFhope@usw.salvationarmy.org"
	Default_SubjectPrefix  = "Hope House — New Participant Referral"
	Default_AttachmentName = "Hope House Waiting List.xlsx"
	Default_WorkbookPath   = "data/hope_house_waiting_list.xlsx"
	Default_Timezone       = "America/Los_Angeles"
)

// WaitingListHeader is written once, before the first data row
var WaitingListHeader = []string{
	"#",
	"Referral Date",
	"Participant Date of Birth",
	"Participant Name",
	"Participant Phone",
	"Participant Email",
	"Referring Agency",
	"Partner Name",
	"Partner Phone",
	"Partner Email",
	"Submitted At",
}

var MailingListHeader = []string{"Name", "Email", "Phone", "Date Added"}

// ReferralRecord is a submission after default-filling. Every field is present
// as a string, empty when the submission did not carry it. The OptIn* fields
// hold the participant-specific contact keys and are only consulted when
// resolving the mailing list contact.
type ReferralRecord struct {
	ReferralDate     string `json:"referral_date"`
	ParticipantDob   string `json:"participant_dob"`
	ParticipantName  string `json:"participant_name"`
	ParticipantPhone string `json:"participant_phone"`
	ParticipantEmail string `json:"participant_email"`
	ReferringAgency  string `json:"referring_agency"`
	PartnerName      string `json:"partner_name"`
	PartnerPhone     string `json:"partner_phone"`
	PartnerEmail     string `json:"partner_email"`

	OptInName  string `json:"-"`
	OptInEmail string `json:"-"`
	OptInPhone string `json:"-"`

	EmailOptIn bool `json:"email_opt_in"`
}

// Referral mirrors a waiting list row into the database
// swagger:model
type Referral struct {
	core.Model
	SequenceNumber   uint   `json:"sequence_number"`
	ReferralDate     string `json:"referral_date"`
	ParticipantDob   string `json:"participant_dob"`
	ParticipantName  string `json:"participant_name"`
	ParticipantPhone string `json:"participant_phone"`
	ParticipantEmail string `json:"participant_email"`
	ReferringAgency  string `json:"referring_agency"`
	PartnerName      string `json:"partner_name"`
	PartnerPhone     string `json:"partner_phone"`
	PartnerEmail     string `json:"partner_email"`
	SubmittedAt      string `json:"submitted_at"`
}

func (Referral) TableName() string {
	return "referrals"
}

type Referrals []Referral

// MailingListEntry mirrors a mailing list row into the database
// swagger:model
type MailingListEntry struct {
	core.Model
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	DateAdded string `json:"date_added"`
}

func (MailingListEntry) TableName() string {
	return "mailing_list_entries"
}

type MailingListEntries []MailingListEntry

// ParseError means the submission body could not be decoded
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "invalid submission: " + e.Err.Error()
}

// StoreUnavailable means the waiting list append did not complete, the
// submission must not be treated as recorded
type StoreUnavailable struct {
	Err error
}

func (e *StoreUnavailable) Error() string {
	return "waiting list unavailable: " + e.Err.Error()
}

// NotificationFailed means the row is stored but the export or the mail
// dispatch failed
type NotificationFailed struct {
	Err error
}

func (e *NotificationFailed) Error() string {
	return "notification failed: " + e.Err.Error()
}
