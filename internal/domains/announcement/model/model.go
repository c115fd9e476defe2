package model

import (
	"time"

	resourceModel "curtainraiser/internal/domains/resource/model"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/model"
)

const (
	TableName  = "announcements"
	EntityName = "Announcement"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldImageURL    = "image_url"
)

var Descriptor = resourceModel.Descriptor{
	Name:          EntityName,
	TableName:     TableName,
	FieldID:       FieldID,
	FieldImageURL: FieldImageURL,
	ListPath:      constant.RouteAdminAnnouncements,
	CachePrefix:   "cache:" + TableName,
}

type Announcement struct {
	ID          string    `db:"id"          json:"id"`
	Title       string    `db:"title"       json:"title"`
	Description string    `db:"description" json:"description"`
	Date        time.Time `db:"date"        json:"date"`
	ImageURL    string    `db:"image_url"   json:"image_url"`
	model.Metadata
}

func (a Announcement) GetID() string {
	return a.ID
}

func (a Announcement) GetImageURL() string {
	return a.ImageURL
}
