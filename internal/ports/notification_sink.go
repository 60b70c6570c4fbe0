package ports

import "github.com/aalvaropc/modreg/internal/domain"

// NotificationSink shows transient status messages in a single slot.
// A zero ID allocates a new identity; a known ID updates that notice in place.
// Notify is called outside the controller's state lock, so a sink may read
// controller state. It must not start or finish a submission from inside Notify.
type NotificationSink interface {
	Notify(n domain.Notice) domain.NoticeID
}
