// internal/app/features/roles/types.go
package roles

import (
	"github.com/caristo/adminhub/internal/app/system/badges"
	"github.com/caristo/adminhub/internal/app/system/formutil"
)

// listItem is a single row in the roles list.
type listItem struct {
	ID          string
	Name        string
	Description string
	Permissions []string
	Status      string
	Badge       badges.Badge
}

// listData is the view model for the roles list page.
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

// permissionOption is one checkbox in the permission picker.
type permissionOption struct {
	Key     string
	Granted bool
}

// formData is the view model for the new/edit role pages.
type formData struct {
	formutil.Base

	ID          string
	Name        string
	Description string
	Permissions []permissionOption
	IsEdit      bool
}
