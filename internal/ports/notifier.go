package ports

// Notifier presents operation outcomes to the user (status line, toast).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
