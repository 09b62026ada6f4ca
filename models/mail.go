package models

// Mail is a plain-text message sent by the server.
type Mail struct {
	From    string
	To      string
	Subject string
	Body    string
}
