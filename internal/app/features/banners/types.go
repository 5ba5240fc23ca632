// internal/app/features/banners/types.go
package banners

import (
	"github.com/caristo/adminhub/internal/app/system/badges"
	"github.com/caristo/adminhub/internal/app/system/formutil"
)

// listItem is a single row in the banners list.
type listItem struct {
	ID       string
	Title    string
	ImageURL string
	LinkURL  string
	Status   string
	Badge    badges.Badge
}

// listData is the view model for the banners list page.
type listData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Q           string
	Status      string
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

// formData is the view model for the new/edit banner pages.
type formData struct {
	formutil.Base

	ID       string
	BTitle   string
	LinkURL  string
	Status   string
	ImageURL string
	IsEdit   bool
}
