package driven

// Notifier renders short user-facing acknowledgements.
type Notifier interface {
	// Success shows a success message.
	Success(message string)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(message string)

// Success calls f(message).
func (f NotifierFunc) Success(message string) {
	f(message)
}
