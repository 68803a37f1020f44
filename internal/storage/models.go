package storage

// Preferences is the single persisted record of the last filter the user
// applied. At most one of the two fields is non-empty.
type Preferences struct {
	LastCategory string `json:"lastCategory"`
	LastQuery    string `json:"lastQuery"`
}

// IsZero reports whether no filter was recorded.
func (p Preferences) IsZero() bool {
	return p.LastCategory == "" && p.LastQuery == ""
}
