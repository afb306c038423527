package domain

// ToastType classifies a transient notification.
type ToastType string

const (
	ToastInfo    ToastType = "info"
	ToastSuccess ToastType = "success"
	ToastWarning ToastType = "warning"
	ToastError   ToastType = "error"
)

// Toast is a transient, auto-dismissing notification. At most one toast is
// live at a time; ClosingInSeconds is a live countdown owned by the toast
// scheduler.
type Toast struct {
	Type             ToastType
	Message          string
	ClosingInSeconds int
}
