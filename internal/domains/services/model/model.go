package model

import (
	resourceModel "curtainraiser/internal/domains/resource/model"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "services"
	EntityName = "Service"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPoints      = "points"
	FieldImageURL    = "image_url"
	FieldIsActive    = "is_active"
)

var Descriptor = resourceModel.Descriptor{
	Name:          EntityName,
	TableName:     TableName,
	FieldID:       FieldID,
	FieldImageURL: FieldImageURL,
	ListPath:      constant.RouteAdminDashboard,
	CachePrefix:   "cache:" + TableName,
}

type Service struct {
	ID          string         `db:"id"          json:"id"`
	Name        string         `db:"name"        json:"name"`
	Description string         `db:"description" json:"description"`
	Points      pq.StringArray `db:"points"      json:"points"`
	ImageURL    string         `db:"image_url"   json:"image_url"`
	IsActive    bool           `db:"is_active"   json:"is_active"`
	model.Metadata
}

func (s Service) GetID() string {
	return s.ID
}

func (s Service) GetImageURL() string {
	return s.ImageURL
}

// StatusLabel is the word used in the toggle notice.
func (s Service) StatusLabel() string {
	if s.IsActive {
		return "Active"
	}

	return "Inactive"
}
