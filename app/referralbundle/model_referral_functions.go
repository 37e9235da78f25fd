package referralbundle

import (
	"fmt"
)

// NormalizeSubmission turns an arbitrary submission payload into a
// ReferralRecord. It never fails, unknown keys are ignored and missing or
// falsy values become the empty string, matching what the referral form
// has always sent.
func NormalizeSubmission(data map[string]interface{}) ReferralRecord {
	record := ReferralRecord{
		ReferralDate:     stringField(data, "referralDate"),
		ParticipantDob:   stringField(data, "clientDob"),
		ParticipantName:  stringField(data, "clientName"),
		ParticipantPhone: stringField(data, "clientPhone"),
		ParticipantEmail: stringField(data, "clientEmail"),
		ReferringAgency:  stringField(data, "referringAgency"),
		PartnerName:      stringField(data, "partnerName"),
		PartnerPhone:     stringField(data, "partnerPhone"),
		PartnerEmail:     stringField(data, "partnerEmail"),
		OptInName:        stringField(data, "participantName"),
		OptInEmail:       stringField(data, "participantEmail"),
		OptInPhone:       stringField(data, "participantPhone"),
	}

	// opt-in only when the submission carried a literal true
	if optIn, ok := data["emailOptIn"].(bool); ok {
		record.EmailOptIn = optIn
	}

	return record
}

// stringField keeps the coercion rules of the original form handler: absent,
// null, false, 0 and "" all collapse to the empty string
func stringField(data map[string]interface{}, key string) string {
	val, ok := data[key]
	if !ok || val == nil {
		return ""
	}
	switch v := val.(type) {
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
		return "true"
	case float64:
		if v == 0 {
			return ""
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ResolveMailingContact picks the mailing list identity with the
// participant-specific fields first, then the referral fields, then the
// partner fields. An empty email means nothing gets added.
func (record *ReferralRecord) ResolveMailingContact() (name string, email string, phone string) {
	email = firstNonEmpty(record.OptInEmail, record.ParticipantEmail, record.PartnerEmail)
	name = firstNonEmpty(record.OptInName, record.ParticipantName)
	phone = firstNonEmpty(record.OptInPhone, record.ParticipantPhone)
	return name, email, phone
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// columnValues returns the canonical fields in waiting list column order,
// without the sequence number and timestamp
func (record *ReferralRecord) columnValues() []string {
	return []string{
		record.ReferralDate,
		record.ParticipantDob,
		record.ParticipantName,
		record.ParticipantPhone,
		record.ParticipantEmail,
		record.ReferringAgency,
		record.PartnerName,
		record.PartnerPhone,
		record.PartnerEmail,
	}
}
