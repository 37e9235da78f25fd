package core

import (
	"os"
	"strconv"
)

func GetEnvironmentConfig(c *Configuration) {
	if os.Getenv("DATABASE_HOST") != "" {
		c.Database.Host = os.Getenv("DATABASE_HOST")
	}
	if os.Getenv("DATABASE_DATABASE") != "" {
		c.Database.Database = os.Getenv("DATABASE_DATABASE")
	}
	if os.Getenv("DATABASE_USER") != "" {
		c.Database.User = os.Getenv("DATABASE_USER")
	}
	if os.Getenv("DATABASE_PASSWORD") != "" {
		c.Database.Password = os.Getenv("DATABASE_PASSWORD")
	}
	if os.Getenv("DATABASE_PORT") != "" {
		c.Database.Port, _ = strconv.Atoi(os.Getenv("DATABASE_PORT"))
	}
	if os.Getenv("DATABASE_DO_AUTO_MIGRATE") != "" {
		c.Database.DoAutoMigrate, _ = strconv.ParseBool(os.Getenv("DATABASE_DO_AUTO_MIGRATE"))
	}
	if os.Getenv("DATABASE_DEBUG") != "" {
		c.Database.Debug, _ = strconv.ParseBool(os.Getenv("DATABASE_DEBUG"))
	}

	if os.Getenv("SERVER_HOSTNAME") != "" {
		c.Server.Hostname = os.Getenv("SERVER_HOSTNAME")
	}
	if os.Getenv("SERVER_INTERNAL_PORT") != "" {
		c.Server.InternalPort, _ = strconv.Atoi(os.Getenv("SERVER_INTERNAL_PORT"))
	}
	if os.Getenv("SERVER_WITH_SSL") != "" {
		c.Server.WithSSL, _ = strconv.ParseBool(os.Getenv("SERVER_WITH_SSL"))
	}
	if os.Getenv("SERVER_SSL_CERT_FILE") != "" {
		c.Server.SSLCertFile = os.Getenv("SERVER_SSL_CERT_FILE")
	}
	if os.Getenv("SERVER_SSL_KEY_FILE") != "" {
		c.Server.SSLKeyFile = os.Getenv("SERVER_SSL_KEY_FILE")
	}
	if os.Getenv("SERVER_TMP_PATH") != "" {
		c.Server.TmpPath = os.Getenv("SERVER_TMP_PATH")
	}

	if os.Getenv("MAIL_SERVER_SMTP_HOST") != "" {
		c.MailServer.SmtpHost = os.Getenv("MAIL_SERVER_SMTP_HOST")
	}
	if os.Getenv("MAIL_SERVER_SMTP_PORT") != "" {
		c.MailServer.SmtpPort, _ = strconv.Atoi(os.Getenv("MAIL_SERVER_SMTP_PORT"))
	}
	if os.Getenv("MAIL_SERVER_SMTP_USERNAME") != "" {
		c.MailServer.SmtpUsername = os.Getenv("MAIL_SERVER_SMTP_USERNAME")
	}
	if os.Getenv("MAIL_SERVER_SMTP_PASSWORD") != "" {
		c.MailServer.SmtpPassword = os.Getenv("MAIL_SERVER_SMTP_PASSWORD")
	}
	if os.Getenv("MAIL_SERVER_FROM_ADDRESS") != "" {
		c.MailServer.FromAddress = os.Getenv("MAIL_SERVER_FROM_ADDRESS")
	}

	if os.Getenv("REFERRAL_RECIPIENT_EMAIL") != "" {
		c.Referral.RecipientEmail = os.Getenv("REFERRAL_RECIPIENT_EMAIL")
	}
	if os.Getenv("REFERRAL_SUBJECT_PREFIX") != "" {
		c.Referral.SubjectPrefix = os.Getenv("REFERRAL_SUBJECT_PREFIX")
	}
	if os.Getenv("REFERRAL_WORKBOOK_PATH") != "" {
		c.Referral.WorkbookPath = os.Getenv("REFERRAL_WORKBOOK_PATH")
	}
	if os.Getenv("REFERRAL_ATTACHMENT_NAME") != "" {
		c.Referral.AttachmentName = os.Getenv("REFERRAL_ATTACHMENT_NAME")
	}
	if os.Getenv("REFERRAL_TIMEZONE") != "" {
		c.Referral.Timezone = os.Getenv("REFERRAL_TIMEZONE")
	}
	if os.Getenv("REFERRAL_ATTACH_PDF_SUMMARY") != "" {
		c.Referral.AttachPdfSummary, _ = strconv.ParseBool(os.Getenv("REFERRAL_ATTACH_PDF_SUMMARY"))
	}
}
