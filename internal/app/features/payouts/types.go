// internal/app/features/payouts/types.go
package payouts

import (
	"github.com/caristo/adminhub/internal/app/system/badges"
	"github.com/caristo/adminhub/internal/app/system/formutil"
)

// listItem is a single row in the payouts list.
type listItem struct {
	ID           string
	ProviderName string
	Amount       string
	Currency     string
	Status       string
	RequestedAt  string
	Badge        badges.Badge
	CanMarkPaid  bool
}

// listData is the view model for the payouts list page.
type listData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Q           string
	Status      string
	From        string
	To          string
	Items       []listItem
	CurrentPath string
	DebounceMS  int
	LoadError   string
	ActionError string
	Cols        map[string]bool

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
	IsFetching bool
}

// viewData is the view model for the payout detail page.
type viewData struct {
	formutil.Base

	ID           string
	ProviderID   string
	ProviderName string
	Amount       string
	Currency     string
	Status       string
	RequestedAt  string
	PaidAt       string
	Badge        badges.Badge
	CanMarkPaid  bool
}
