package dto

import (
	"net/http"

	"curtainraiser/internal/domains/services/model"
	"curtainraiser/shared"
	gDto "curtainraiser/shared/dto"
	gModel "curtainraiser/shared/model"
	"curtainraiser/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateServiceRequest struct {
	Name        string `form:"name"        validate:"required,notblank,max=200"`
	Description string `form:"description"`
	Points      string `form:"points"`
}

func (c *CreateServiceRequest) FromRequest(r *http.Request) {
	c.Name = gDto.FormString(r, model.FieldName)
	c.Description = gDto.FormString(r, model.FieldDescription)
	c.Points = gDto.FormString(r, model.FieldPoints)
}

// ToModel builds a new active service; points are one per non-blank line.
func (c *CreateServiceRequest) ToModel(user, imageURL string) model.Service {
	now := timezone.Now()

	return model.Service{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Points:      pq.StringArray(shared.SplitNonBlankLines(c.Points)),
		ImageURL:    imageURL,
		IsActive:    true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateServiceRequest holds only the fields the form actually sent.
type UpdateServiceRequest struct {
	Name        *string         `db:"name"        form:"name"        validate:"omitnil,notblank,max=200"`
	Description *string         `db:"description" form:"description"`
	Points      *pq.StringArray `db:"points"      form:"points"`
}

func (u *UpdateServiceRequest) FromRequest(r *http.Request) {
	u.Name = gDto.FormValue(r, model.FieldName)
	u.Description = gDto.FormValue(r, model.FieldDescription)

	if points := gDto.FormValue(r, model.FieldPoints); points != nil {
		lines := pq.StringArray(shared.SplitNonBlankLines(*points))
		u.Points = &lines
	}
}

func (u *UpdateServiceRequest) ToUpdateFields(user string) map[string]any {
	return shared.TransformFields(*u, user)
}
