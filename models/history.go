package models

// HistoryEntry is a viewed food plus the moment it was viewed. Entries are
// stored most-recent-first and deduplicated by display name, not id: the
// history panel shows one row per name, so a re-view moves the row up rather
// than duplicating it.
type HistoryEntry struct {
	NormalizedFood
	ViewedAt string `json:"viewedAt"` // RFC 3339
}
