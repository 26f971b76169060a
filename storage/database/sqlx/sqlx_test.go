package sqlxrepos

import (
	"testing"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/gurumantra/backend/core/course"
)

func TestBlocks_ValueScan(t *testing.T) {
	in := blocks{
		{Type: course.BlockHeading, ElementID: "A", Index: 0, Text: "Intro"},
		{Type: course.BlockVideo, ElementID: "B", Index: 1, AssetID: "a1"},
	}
	v, err := in.Value()
	assert.NoError(t, err)

	var out blocks
	assert.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	v, err = blocks(nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	assert.NoError(t, out.Scan(nil))
	assert.Equal(t, blocks{}, out)
	assert.NoError(t, out.Scan(`[{"type": "desc", "element_id": "C", "index": 0}]`))
	assert.Equal(t, blocks{{Type: course.BlockDesc, ElementID: "C"}}, out)
	assert.Error(t, out.Scan(42))
}

func TestCourseRepository_where(t *testing.T) {
	repo := courseRepository{}
	tests := []struct {
		name     string
		filter   course.QueryFilter
		wantSQL  string
		wantArgs []interface{}
	}{
		{name: "all", filter: course.QueryFilter{}},
		{name: "owner", filter: course.QueryFilter{UserID: "u1"}, wantSQL: " WHERE user_id = $1", wantArgs: []interface{}{"u1"}},
		{name: "published", filter: course.QueryFilter{PublishedOnly: true}, wantSQL: " WHERE is_published"},
		{
			name:     "published of owner",
			filter:   course.QueryFilter{UserID: "u1", PublishedOnly: true},
			wantSQL:  " WHERE user_id = $1 AND is_published",
			wantArgs: []interface{}{"u1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := repo.where(tt.filter)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, isUniqueViolation(errors.Wrap(&pq.Error{Code: "23505"}, "inserting")))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("lol")))

	assert.True(t, validID("0b7a1d7e-2f43-4a4b-9d0e-0f5c2a8b8c11"))
	assert.False(t, validID("lol"))
}
