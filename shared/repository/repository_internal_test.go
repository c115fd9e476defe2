package repository

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curtainraiser/infras/otel/mocks"
	"curtainraiser/shared/dto"
	"curtainraiser/shared/model"
)

type poster struct {
	ID       string `db:"id"`
	Title    string `db:"title"`
	Ignored  string `db:"-"`
	Category string `db:"category"`
	model.Metadata
}

func newPosterRepository() Repository[poster] {
	return NewRepository[poster]("Poster", "posters", "id", nil, mocks.NewOtel())
}

func TestGetColumns(t *testing.T) {
	repo := newPosterRepository()

	assert.Equal(t,
		[]string{"id", "title", "category", "created_at", "modified_at", "created_by", "modified_by"},
		repo.InsertColumns,
	)
	assert.False(t, repo.hasColumn("Ignored"))
	assert.True(t, repo.hasColumn("created_at"))
}

func TestGetSelectQuery(t *testing.T) {
	repo := newPosterRepository()

	assert.Equal(t, "posters.id, posters.title", repo.getSelectQuery("id", "title"))
	assert.Contains(t, repo.getSelectQuery(), "posters.modified_by")
}

func TestOrderClause(t *testing.T) {
	repo := newPosterRepository()

	tests := []struct {
		name    string
		params  dto.QueryParams
		want    string
		wantErr bool
	}{
		{name: "no sort", params: dto.QueryParams{}, want: ""},
		{name: "descending", params: dto.QueryParams{SortBy: "created_at", SortDir: "desc"}, want: "ORDER BY posters.created_at DESC"},
		{name: "defaults to ascending", params: dto.QueryParams{SortBy: "title"}, want: "ORDER BY posters.title ASC"},
		{name: "unknown column", params: dto.QueryParams{SortBy: "title; DROP TABLE posters"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.orderClause(tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, errUnknownColumn)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginationClause(t *testing.T) {
	args := map[string]any{}
	assert.Equal(t, "LIMIT :limit OFFSET :offset", paginationClause(dto.QueryParams{Page: 3, Limit: 16}, args))
	assert.Equal(t, 16, args["limit"])
	assert.Equal(t, 32, args["offset"])

	args = map[string]any{}
	assert.Equal(t, "LIMIT :limit", paginationClause(dto.QueryParams{Limit: 12}, args))
	assert.NotContains(t, args, "offset")

	assert.Empty(t, paginationClause(dto.QueryParams{}, map[string]any{}))

	args = map[string]any{}
	paginationClause(dto.QueryParams{Page: 1_000_000_000_000_000_000, Limit: 16}, args)
	offset, ok := args["offset"].(int)
	require.True(t, ok)
	assert.Positive(t, offset)
	assert.Zero(t, offset%16)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1, 16))
	assert.Equal(t, 16, pageOffset(2, 16))
	assert.Equal(t, math.MaxInt/16*16, pageOffset(math.MaxInt, 16))
	assert.Equal(t, math.MaxInt-1, pageOffset(math.MaxInt, 1))
}

func TestUpdateSetClause(t *testing.T) {
	got := updateSetClause(map[string]any{
		"title":       "Opening night",
		"modified_at": time.Now(),
		"category":    "stage",
	})

	assert.Equal(t, "category = :category, modified_at = :modified_at, title = :title", got)
}

func TestBuildWhereClause(t *testing.T) {
	repo := newPosterRepository()

	where, args := repo.BuildWhereClause(t.Context(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(t.Context(), dto.FilterGroup{
		Filters: []any{dto.Filter{Field: "category", Value: "stage", Operator: dto.FilterOperatorEq, Table: "posters"}},
	})
	assert.Equal(t, " WHERE (posters.category = :category) ", where)
	assert.Equal(t, map[string]any{"category": "stage"}, args)
}
