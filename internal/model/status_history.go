package model

import "time"

// StatusHistoryEntry is one record in a document's append-only audit trail.
// Entries are written only inside the review transaction and are never
// mutated or deleted. For any document, chaining the entries' new_status
// values in changed_at order reconstructs every transition since "pending",
// and the document's current status equals the newest entry's NewStatus.
type StatusHistoryEntry struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ChangedAt  time.Time `json:"changed_at"`
}
