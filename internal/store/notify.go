package store

// Notifier is the toast surface mutations report to. The stores call it
// exactly once per failed mutation, and for the few destructive operations
// that warrant a success message.
type Notifier interface {
	ShowError(message string)
	ShowSuccess(message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) ShowError(string)   {}
func (NopNotifier) ShowSuccess(string) {}
