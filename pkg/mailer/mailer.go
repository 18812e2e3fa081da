package mailer

// Email is one outbound message.
type Email struct {
	FromName  string
	FromEmail string
	ToName    string
	ToEmail   string
	Subject   string
	HTML      string
}

// Mailer sends an email and returns the provider message id on success.
type Mailer interface {
	Send(email Email) (string, error)
}
