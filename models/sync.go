package models

// SyncReport summarises one outbox drain pass.
type SyncReport struct {
	// Total is the number of entries in the queue snapshot the pass worked on.
	Total int `json:"total"`

	// Synced is how many entries were created remotely without error.
	Synced int `json:"synced"`
}

// Failed returns the number of entries whose remote create failed. Those
// entries are gone regardless: the drain pass clears the whole queue.
func (r SyncReport) Failed() int {
	return r.Total - r.Synced
}
