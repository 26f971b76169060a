package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func blocks(n int) []Block {
	bs := make([]Block, n)
	for i := range bs {
		bs[i] = Block{Type: BlockDesc, ElementID: "e", Index: i}
	}
	return bs
}

func TestRankByChapters(t *testing.T) {
	tests := []struct {
		name    string
		courses []Course
		want    []string
	}{
		{name: "empty", courses: nil, want: []string{}},
		{
			name:    "descending count",
			courses: []Course{{Title: "a", Chapters: blocks(3)}, {Title: "b", Chapters: blocks(1)}, {Title: "c", Chapters: blocks(2)}},
			want:    []string{"a", "c", "b"},
		},
		{
			name:    "ties keep creation order",
			courses: []Course{{Title: "a", Chapters: blocks(1)}, {Title: "b", Chapters: blocks(2)}, {Title: "c", Chapters: blocks(1)}, {Title: "d"}},
			want:    []string{"b", "a", "c", "d"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankByChapters(tt.courses)
			titles := make([]string, 0, len(got))
			for _, e := range got {
				titles = append(titles, e.Title)
				assert.Equal(t, len(e.Chapters), e.ChaptersCount)
				assert.NotNil(t, e.Chapters)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestQueryFilter_Match(t *testing.T) {
	pub := Course{UserID: "1", IsPublished: true}
	draft := Course{UserID: "1"}

	assert.True(t, QueryFilter{}.Match(draft))
	assert.True(t, QueryFilter{UserID: "1"}.Match(draft))
	assert.False(t, QueryFilter{UserID: "2"}.Match(pub))
	assert.False(t, QueryFilter{PublishedOnly: true}.Match(draft))
	assert.True(t, QueryFilter{UserID: "1", PublishedOnly: true}.Match(pub))
}

func TestPublishCourse_Published(t *testing.T) {
	yes, no := true, false
	assert.True(t, PublishCourse{}.Published())
	assert.True(t, PublishCourse{IsPublished: &yes}.Published())
	assert.False(t, PublishCourse{IsPublished: &no}.Published())
}
