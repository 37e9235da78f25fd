package referralbundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSubmissionEmpty(t *testing.T) {
	record := NormalizeSubmission(map[string]interface{}{})

	assert.Equal(t, "", record.ReferralDate)
	assert.Equal(t, "", record.ParticipantDob)
	assert.Equal(t, "", record.ParticipantName)
	assert.Equal(t, "", record.ParticipantPhone)
	assert.Equal(t, "", record.ParticipantEmail)
	assert.Equal(t, "", record.ReferringAgency)
	assert.Equal(t, "", record.PartnerName)
	assert.Equal(t, "", record.PartnerPhone)
	assert.Equal(t, "", record.PartnerEmail)
	assert.Equal(t, "", record.OptInName)
	assert.Equal(t, "", record.OptInEmail)
	assert.Equal(t, "", record.OptInPhone)
	assert.False(t, record.EmailOptIn)
}

func TestNormalizeSubmissionFields(t *testing.T) {
	record := NormalizeSubmission(map[string]interface{}{
		"referralDate":    "2024-01-15",
		"clientDob":       "1990-05-01",
		"clientName":      "Jane Doe",
		"clientPhone":     "555-0100",
		"clientEmail":     "jane@x.com",
		"referringAgency": "County Services",
		"partnerName":     "John Doe",
		"partnerPhone":    "555-0101",
		"partnerEmail":    "john@x.com",
		"emailOptIn":      true,
	})

	assert.Equal(t, "2024-01-15", record.ReferralDate)
	assert.Equal(t, "1990-05-01", record.ParticipantDob)
	assert.Equal(t, "Jane Doe", record.ParticipantName)
	assert.Equal(t, "555-0100", record.ParticipantPhone)
	assert.Equal(t, "jane@x.com", record.ParticipantEmail)
	assert.Equal(t, "County Services", record.ReferringAgency)
	assert.Equal(t, "John Doe", record.PartnerName)
	assert.Equal(t, "555-0101", record.PartnerPhone)
	assert.Equal(t, "john@x.com", record.PartnerEmail)
	assert.True(t, record.EmailOptIn)
}

func TestNormalizeSubmissionFalsyValues(t *testing.T) {
	record := NormalizeSubmission(map[string]interface{}{
		"clientName":      nil,
		"clientPhone":     false,
		"clientEmail":     float64(0),
		"referringAgency": "",
		"partnerName":     true,
		"partnerPhone":    float64(42),
	})

	assert.Equal(t, "", record.ParticipantName)
	assert.Equal(t, "", record.ParticipantPhone)
	assert.Equal(t, "", record.ParticipantEmail)
	assert.Equal(t, "", record.ReferringAgency)
	assert.Equal(t, "true", record.PartnerName)
	assert.Equal(t, "42", record.PartnerPhone)
}

func TestNormalizeSubmissionOptInIsStrict(t *testing.T) {
	assert.False(t, NormalizeSubmission(map[string]interface{}{"emailOptIn": "true"}).EmailOptIn)
	assert.False(t, NormalizeSubmission(map[string]interface{}{"emailOptIn": float64(1)}).EmailOptIn)
	assert.False(t, NormalizeSubmission(map[string]interface{}{"emailOptIn": false}).EmailOptIn)
	assert.False(t, NormalizeSubmission(map[string]interface{}{"emailOptIn": nil}).EmailOptIn)
	assert.True(t, NormalizeSubmission(map[string]interface{}{"emailOptIn": true}).EmailOptIn)
}

func TestResolveMailingContactFallback(t *testing.T) {
	record := NormalizeSubmission(map[string]interface{}{
		"participantEmail": "a",
		"clientEmail":      "b",
	})
	_, email, _ := record.ResolveMailingContact()
	assert.Equal(t, "a", email)

	record = NormalizeSubmission(map[string]interface{}{
		"clientEmail":  "b",
		"partnerEmail": "c",
	})
	_, email, _ = record.ResolveMailingContact()
	assert.Equal(t, "b", email)

	record = NormalizeSubmission(map[string]interface{}{
		"partnerEmail": "c",
	})
	_, email, _ = record.ResolveMailingContact()
	assert.Equal(t, "c", email)

	record = NormalizeSubmission(map[string]interface{}{
		"participantName": "Preferred",
		"clientName":      "Fallback",
		"clientPhone":     "555-0100",
	})
	name, email, phone := record.ResolveMailingContact()
	assert.Equal(t, "Preferred", name)
	assert.Equal(t, "", email)
	assert.Equal(t, "555-0100", phone)
}
