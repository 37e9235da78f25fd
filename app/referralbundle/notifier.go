package referralbundle

import (
	"fmt"
	"io/ioutil"
	"log"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"hopehouse_backend/app/core"
)

const notificationRule = "────────────────────────────────────"

// notifyReferral mails the configured recipient a summary of the submission
// with the full waiting list workbook attached. By the time this runs the
// row is stored, so a failure here is NotificationFailed, not a store error.
func (c *ReferralController) notifyReferral(record *ReferralRecord, sequence uint) error {

	exportBytes, err := c.store.Export()
	if err != nil {
		return &NotificationFailed{Err: err}
	}

	attachmentName := core.Config.Referral.AttachmentName
	if attachmentName == "" {
		attachmentName = Default_AttachmentName
	}

	tmpPath := c.GetTmpUploadPath()
	exportFile := tmpPath + attachmentName
	if err := ioutil.WriteFile(exportFile, exportBytes, 0644); err != nil {
		return &NotificationFailed{Err: err}
	}

	files := []string{exportFile}
	if core.Config.Referral.AttachPdfSummary {
		pdfFile := tmpPath + fmt.Sprintf("Referral Summary %d.pdf", sequence)
		if err := writeSummaryPdf(pdfFile, record, sequence); err != nil {
			log.Println(err)
		} else {
			files = append(files, pdfFile)
		}
	}

	recipient := core.Config.Referral.RecipientEmail
	if recipient == "" {
		recipient = Default_RecipientEmail
	}

	subject := buildSubject(record, sequence)
	body := buildNotificationBody(record, sequence)

	if err := c.sendMail("", []string{recipient}, nil, nil, subject, body, files); err != nil {
		return &NotificationFailed{Err: err}
	}

	return nil
}

func buildSubject(record *ReferralRecord, sequence uint) string {
	prefix := core.Config.Referral.SubjectPrefix
	if prefix == "" {
		prefix = Default_SubjectPrefix
	}
	subject := fmt.Sprintf("%s — #%d", prefix, sequence)
	if record.ParticipantName != "" {
		subject += " — " + record.ParticipantName
	}
	return subject
}

func buildNotificationBody(record *ReferralRecord, sequence uint) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A new participant referral (#%d) has been submitted.\n\n", sequence)
	b.WriteString(notificationRule + "\n")
	b.WriteString("SUBMISSION DETAILS\n")
	b.WriteString(notificationRule + "\n\n")

	writeBodyLine(&b, "Entry #", fmt.Sprintf("%d", sequence))
	writeBodyLine(&b, "Referral Date", record.ReferralDate)
	writeBodyLine(&b, "Participant DOB", record.ParticipantDob)
	writeBodyLine(&b, "Participant Name", record.ParticipantName)
	writeBodyLine(&b, "Participant Phone", record.ParticipantPhone)
	writeBodyLine(&b, "Participant Email", record.ParticipantEmail)
	writeBodyLine(&b, "Referring Agency", record.ReferringAgency)
	writeBodyLine(&b, "Partner Name", record.PartnerName)
	writeBodyLine(&b, "Partner Phone", record.PartnerPhone)
	writeBodyLine(&b, "Partner Email", record.PartnerEmail)

	b.WriteString("\n" + notificationRule + "\n\n")
	b.WriteString("The full waiting list is attached as an Excel file.\n")

	return b.String()
}

func writeBodyLine(b *strings.Builder, label string, value string) {
	if value == "" {
		value = "—"
	}
	fmt.Fprintf(b, "%-22s%s\n", label+":", value)
}

func writeSummaryPdf(fileName string, record *ReferralRecord, sequence uint) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	translator := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, translator(fmt.Sprintf("Participant Referral #%d", sequence)))
	pdf.Ln(14)

	lines := [][2]string{
		{"Referral Date", record.ReferralDate},
		{"Participant DOB", record.ParticipantDob},
		{"Participant Name", record.ParticipantName},
		{"Participant Phone", record.ParticipantPhone},
		{"Participant Email", record.ParticipantEmail},
		{"Referring Agency", record.ReferringAgency},
		{"Partner Name", record.PartnerName},
		{"Partner Phone", record.PartnerPhone},
		{"Partner Email", record.PartnerEmail},
	}

	for _, line := range lines {
		value := line[1]
		if value == "" {
			value = "-"
		}
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(60, 8, translator(line[0]))
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, translator(value))
		pdf.Ln(8)
	}

	return pdf.OutputFileAndClose(fileName)
}
