package dto

import (
	"net/http"
	"strings"
	"time"

	"curtainraiser/internal/domains/announcement/model"
	"curtainraiser/shared"
	"curtainraiser/shared/constant"
	gDto "curtainraiser/shared/dto"
	gModel "curtainraiser/shared/model"
	"curtainraiser/shared/timezone"

	"github.com/google/uuid"
)

type CreateAnnouncementRequest struct {
	Title       string `form:"title"       validate:"required,notblank,max=200"`
	Description string `form:"description"`
	Date        string `form:"date"        validate:"omitempty,datetime=2006-01-02"`
}

func (c *CreateAnnouncementRequest) FromRequest(r *http.Request) {
	c.Title = gDto.FormString(r, model.FieldTitle)
	c.Description = gDto.FormString(r, model.FieldDescription)
	c.Date = strings.TrimSpace(gDto.FormString(r, model.FieldDate))
}

// ToModel builds a new announcement; a missing date means now.
func (c *CreateAnnouncementRequest) ToModel(user, imageURL string) model.Announcement {
	now := timezone.Now()

	return model.Announcement{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Description: c.Description,
		Date:        parseDate(c.Date, now),
		ImageURL:    imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateAnnouncementRequest struct {
	Title       *string `form:"title"       validate:"omitnil,notblank,max=200"`
	Description *string `form:"description"`
	Date        string  `form:"date"        validate:"omitempty,datetime=2006-01-02"`
}

func (u *UpdateAnnouncementRequest) FromRequest(r *http.Request) {
	u.Title = gDto.FormValue(r, model.FieldTitle)
	u.Description = gDto.FormValue(r, model.FieldDescription)
	u.Date = strings.TrimSpace(gDto.FormString(r, model.FieldDate))
}

// ToUpdateFields keeps the stored date unless a new one was submitted.
func (u *UpdateAnnouncementRequest) ToUpdateFields(user string, current model.Announcement) map[string]any {
	fields := shared.TransformFields(struct {
		Title       *string `db:"title"`
		Description *string `db:"description"`
	}{u.Title, u.Description}, user)

	if u.Date != constant.Empty {
		fields[model.FieldDate] = parseDate(u.Date, current.Date)
	}

	return fields
}

func parseDate(value string, fallback time.Time) time.Time {
	if value == constant.Empty {
		return fallback
	}

	date, err := timezone.Parse(constant.FormDateFormat, value)
	if err != nil {
		return fallback
	}

	return date
}
