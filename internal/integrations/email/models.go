package email

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Message письмо одному получателю
type Message struct {
	ToEmail   string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}
