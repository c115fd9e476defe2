package model

import (
	resourceModel "curtainraiser/internal/domains/resource/model"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/model"
)

const (
	TableName  = "gallery_items"
	EntityName = "Gallery item"

	FieldID       = "id"
	FieldTitle    = "title"
	FieldImageURL = "image_url"
	FieldCategory = "category"
)

var Descriptor = resourceModel.Descriptor{
	Name:          EntityName,
	TableName:     TableName,
	FieldID:       FieldID,
	FieldImageURL: FieldImageURL,
	ListPath:      constant.RouteAdminGallery,
	CachePrefix:   "cache:" + TableName,
	ImageRequired: true,
	CreatedVerb:   "added",
}

type GalleryItem struct {
	ID       string `db:"id"        json:"id"`
	Title    string `db:"title"     json:"title"`
	ImageURL string `db:"image_url" json:"image_url"`
	Category string `db:"category"  json:"category"`
	model.Metadata
}

func (g GalleryItem) GetID() string {
	return g.ID
}

func (g GalleryItem) GetImageURL() string {
	return g.ImageURL
}
