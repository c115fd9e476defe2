package dto

import (
	"net/http"
	"strings"

	announcementModel "curtainraiser/internal/domains/announcement/model"
	galleryModel "curtainraiser/internal/domains/gallery/model"
	servicesModel "curtainraiser/internal/domains/services/model"
	"curtainraiser/shared/constant"
	gDto "curtainraiser/shared/dto"
)

type Landing struct {
	Services      []servicesModel.Service
	Gallery       []galleryModel.GalleryItem
	Announcements []announcementModel.Announcement
}

// EmptyLanding is what the home page shows when any collection fails to load.
func EmptyLanding() Landing {
	return Landing{
		Services:      []servicesModel.Service{},
		Gallery:       []galleryModel.GalleryItem{},
		Announcements: []announcementModel.Announcement{},
	}
}

// GalleryQuery is the page/category pair of a gallery listing. AllCategory is the
// value that means "no filter" for the page being served ("all" public, "All" admin).
type GalleryQuery struct {
	Page        int
	Category    string
	AllCategory string
}

// FromRequest reads page and category; a missing or invalid page is 1.
func (q *GalleryQuery) FromRequest(r *http.Request, allCategory string) {
	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	q.AllCategory = allCategory
	q.Page = params.Page

	q.Category = strings.TrimSpace(r.URL.Query().Get(constant.RequestParamCategory))
	if q.Category == constant.Empty {
		q.Category = allCategory
	}
}

// Filter is the category to filter by, empty for all.
func (q GalleryQuery) Filter() string {
	if q.Category == q.AllCategory {
		return constant.Empty
	}

	return q.Category
}

type Pagination struct {
	CurrentPage     int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
	NextPage        int
	PreviousPage    int
}

func NewPagination(page, totalPages int) Pagination {
	return Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
		NextPage:        page + 1,
		PreviousPage:    page - 1,
	}
}

type GalleryView struct {
	Items           []galleryModel.GalleryItem
	Categories      []string
	CurrentCategory string
	Pagination
}

// EmptyGalleryView is the public fallback when the gallery cannot be read.
func EmptyGalleryView(allCategory string) GalleryView {
	return GalleryView{
		Items:           []galleryModel.GalleryItem{},
		Categories:      []string{},
		CurrentCategory: allCategory,
		Pagination:      Pagination{CurrentPage: constant.DefaultValuePage, TotalPages: 1},
	}
}
