package core

// swagger:model
type Configuration struct {
	Database   ConfigurationDatabase   `json:"database"`
	Server     ConfigurationServer     `json:"server"`
	MailServer ConfigurationMailServer `json:"mail_server"`
	Referral   ConfigurationReferral   `json:"referral"`
}

// swagger:model
type ConfigurationDatabase struct {
	Host          string `json:"host"`
	Database      string `json:"database"`
	User          string `json:"user"`
	Password      string `json:"password"`
	Port          int    `json:"port"`
	DoAutoMigrate bool   `json:"do_auto_migrate"`
	Debug         bool   `json:"debug"`
}

// swagger:model
type ConfigurationServer struct {
	Hostname     string `json:"hostname"`
	InternalPort int    `json:"internal_port"`
	WithSSL      bool   `json:"with_ssl"`
	SSLCertFile  string `json:"ssl_cert_file"`
	SSLKeyFile   string `json:"ssl_key_file"`
	TmpPath      string `json:"tmp_path"`
}

// swagger:model
type ConfigurationMailServer struct {
	SmtpHost     string `json:"smtp_host"`
	SmtpPort     int    `json:"smtp_port"`
	SmtpUsername string `json:"smtp_username"`
	SmtpPassword string `json:"smtp_password"`
	FromAddress  string `json:"from_address"`
}

// swagger:model
type ConfigurationReferral struct {
	RecipientEmail   string `json:"recipient_email"`
	SubjectPrefix    string `json:"subject_prefix"`
	WorkbookPath     string `json:"workbook_path"`
	AttachmentName   string `json:"attachment_name"`
	Timezone         string `json:"timezone"`
	AttachPdfSummary bool   `json:"attach_pdf_summary"`
}
