package core

import (
	"crypto/tls"
	"gopkg.in/gomail.v2"
	"log"
)

const (
	SMTP_HOST     = "smtp.ionos.co.uk"
	SMTP_PORT     = 587
	SMTP_USERNAME = "referrals@hopehouse.org"
	SMTP_PASSWORD = ""
)

func SendMail(from string, to []string, cc []string, bcc []string, subject string, body string, files []string) error {

	if from == "" {
		from = Config.MailServer.FromAddress
	}
	if from == "" {
		from = SMTP_USERNAME
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	if len(cc) > 0 {
		m.SetHeader("Cc", cc...)
	}
	if len(bcc) > 0 {
		m.SetHeader("Bcc", bcc...)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	for _, file := range files {
		if file != "" {
			m.Attach(file)
		}
	}

	host := SMTP_HOST
	port := SMTP_PORT
	username := SMTP_USERNAME
	password := SMTP_PASSWORD

	if Config.MailServer.SmtpPort > 0 && Config.MailServer.SmtpPassword != "" && Config.MailServer.SmtpHost != "" && Config.MailServer.SmtpUsername != "" {
		host = Config.MailServer.SmtpHost
		port = Config.MailServer.SmtpPort
		username = Config.MailServer.SmtpUsername
		password = Config.MailServer.SmtpPassword
	}

	d := gomail.NewDialer(host, port, username, password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true, ServerName: host}

	err := d.DialAndSend(m)
	if err != nil {
		log.Print(err)
	}
	return err
}
