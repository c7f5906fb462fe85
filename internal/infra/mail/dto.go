package mail

type LeadNotificationData struct {
	Name     string
	Email    string
	Company  string
	Phone    string
	Interest string
	Message  string
	Source   string
	AdminURL string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
	AdminURL string

	dialer messageSender
}
