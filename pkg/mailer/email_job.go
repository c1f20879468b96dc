package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// The API renders the final subject/body at enqueue time; the worker only
// delivers. HTML is optional; Text is recommended as fallback.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// OTPEmail builds the one-time-code notification sent on registration,
// resend, OTP login and password reset.
func OTPEmail(to, name, code string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Your OTP Code",
		Text:    "Dear " + name + ", your OTP code is: " + code,
		HTML:    "<div>Dear " + name + ",<br/>Your OTP code is: <b>" + code + "</b></div>",
	}
}
