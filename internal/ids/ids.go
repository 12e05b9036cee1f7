package ids

import "github.com/segmentio/ksuid"

// New returns a time-prefixed unique id. KSUIDs sort by creation time,
// which keeps photo ids aligned with upload order.
func New() string {
	return ksuid.New().String()
}
