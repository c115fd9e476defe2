package dto

import (
	"net/http"
	"strings"

	"curtainraiser/internal/domains/gallery/model"
	"curtainraiser/shared"
	gDto "curtainraiser/shared/dto"
	gModel "curtainraiser/shared/model"
	"curtainraiser/shared/timezone"

	"github.com/google/uuid"
)

type CreateGalleryRequest struct {
	Title    string `form:"title"    validate:"max=200"`
	Category string `form:"category" validate:"max=100"`
}

func (c *CreateGalleryRequest) FromRequest(r *http.Request) {
	c.Title = gDto.FormString(r, model.FieldTitle)
	c.Category = strings.TrimSpace(gDto.FormString(r, model.FieldCategory))
}

func (c *CreateGalleryRequest) ToModel(user, imageURL string) model.GalleryItem {
	now := timezone.Now()

	return model.GalleryItem{
		ID:       uuid.NewString(),
		Title:    c.Title,
		ImageURL: imageURL,
		Category: c.Category,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateGalleryRequest struct {
	Title    *string `db:"title"    form:"title"    validate:"omitnil,max=200"`
	Category *string `db:"category" form:"category" validate:"omitnil,max=100"`
}

func (u *UpdateGalleryRequest) FromRequest(r *http.Request) {
	u.Title = gDto.FormValue(r, model.FieldTitle)

	if category := gDto.FormValue(r, model.FieldCategory); category != nil {
		trimmed := strings.TrimSpace(*category)
		u.Category = &trimmed
	}
}

func (u *UpdateGalleryRequest) ToUpdateFields(user string) map[string]any {
	return shared.TransformFields(*u, user)
}

// GalleryPage is one page of items plus everything needed to filter and paginate it.
type GalleryPage struct {
	Items      []model.GalleryItem
	Categories []string
	TotalItems int
	TotalPages int
}
