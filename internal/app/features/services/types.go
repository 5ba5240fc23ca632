// internal/app/features/services/types.go
package services

import (
	"github.com/caristo/adminhub/internal/app/system/badges"
	"github.com/caristo/adminhub/internal/app/system/formutil"
)

// listItem is a single row in the services list.
type listItem struct {
	ID       string
	SvcTitle string
	Category string
	PriceMin int
	PriceMax int
	Status   string
	Badge    badges.Badge
}

// listData is the view model for the services list page.
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

// formData is the view model for the new/edit service pages.
type formData struct {
	formutil.Base

	ID       string
	SvcTitle string
	Category string
	PriceMin string
	PriceMax string
	Status   string
	IsEdit   bool
}
