// internal/app/features/auditlog/types.go
package auditlog

// listItem is a single audit event row.
type listItem struct {
	ID            string
	When          string
	Category      string
	EventType     string
	ActorEmail    string
	Entity        string
	EntityID      string
	IP            string
	Success       bool
	FailureReason string
}

// listData is the view model for the audit log page.
type listData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Q           string
	Category    string
	From        string
	To          string
	Items       []listItem
	CurrentPath string
	DebounceMS  int

	// Pagination
	Shown      int
	Total      int64
	Page       int
	PrevPage   int
	NextPage   int
	HasPrev    bool
	HasNext    bool
	RangeStart int
	RangeEnd   int
}
