package mail

import "time"

type ReminderEmailData struct {
	Title       string
	Description string
	Due         time.Time
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
