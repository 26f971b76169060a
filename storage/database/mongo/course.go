package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gurumantra/backend/core/course"
)

type (
	blockDoc struct {
		Type      string `bson:"type"`
		ElementID string `bson:"element_id"`
		Index     int    `bson:"index"`
		Text      string `bson:"text,omitempty"`
		AssetID   string `bson:"asset_id,omitempty"`
		URL       string `bson:"url,omitempty"`
	}

	courseDoc struct {
		ID          primitive.ObjectID `bson:"_id,omitempty"`
		UserID      interface{}        `bson:"user_id"`
		Username    string             `bson:"username"`
		Title       string             `bson:"title"`
		IsPublished bool               `bson:"is_published"`
		Chapters    []blockDoc         `bson:"chapters"`
		CreatedAt   time.Time          `bson:"createdAt"`
	}

	leaderboardDoc struct {
		UserID        interface{} `bson:"user_id"`
		Username      string      `bson:"username"`
		ChaptersCount int         `bson:"chaptersCount"`
		Chapters      []blockDoc  `bson:"chapters"`
		Title         string      `bson:"title"`
		IsPublished   bool        `bson:"is_published"`
		CreatedAt     time.Time   `bson:"createdAt"`
	}
)

type courseRepository struct {
	col *mongo.Collection
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *mongo.Database) *courseRepository {
	return &courseRepository{col: db.Collection(CourseCollection)}
}

func toBlockDocs(blocks []course.Block) []blockDoc {
	docs := make([]blockDoc, 0, len(blocks))
	for _, b := range blocks {
		docs = append(docs, blockDoc{
			Type:      string(b.Type),
			ElementID: b.ElementID,
			Index:     b.Index,
			Text:      b.Text,
			AssetID:   b.AssetID,
			URL:       b.URL,
		})
	}
	return docs
}

func fromBlockDocs(docs []blockDoc) []course.Block {
	blocks := make([]course.Block, 0, len(docs))
	for _, d := range docs {
		blocks = append(blocks, course.Block{
			Type:      course.BlockType(d.Type),
			ElementID: d.ElementID,
			Index:     d.Index,
			Text:      d.Text,
			AssetID:   d.AssetID,
			URL:       d.URL,
		})
	}
	return blocks
}

func (repo courseRepository) fromDoc(doc courseDoc) course.Course {
	return course.Course{
		ID:          doc.ID.Hex(),
		UserID:      refString(doc.UserID),
		Username:    doc.Username,
		Title:       doc.Title,
		IsPublished: doc.IsPublished,
		Chapters:    fromBlockDocs(doc.Chapters),
		CreatedAt:   doc.CreatedAt,
	}
}

func (repo courseRepository) filter(qf course.QueryFilter) bson.D {
	f := bson.D{}
	if qf.UserID != "" {
		f = append(f, bson.E{Key: "user_id", Value: ownerRef(qf.UserID)})
	}
	if qf.PublishedOnly {
		f = append(f, bson.E{Key: "is_published", Value: true})
	}
	return f
}

func (repo courseRepository) trapErr(err error, msg string) error {
	if err == mongo.ErrNoDocuments {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	doc := courseDoc{
		ID:          primitive.NewObjectID(),
		UserID:      ownerRef(c.UserID),
		Username:    c.Username,
		Title:       c.Title,
		IsPublished: c.IsPublished,
		Chapters:    toBlockDocs(c.Chapters),
		CreatedAt:   c.CreatedAt.UTC(),
	}
	if _, err := repo.col.InsertOne(ctx, doc); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return repo.fromDoc(doc), nil
}

func (repo courseRepository) QueryCourses(ctx context.Context, qf course.QueryFilter) ([]course.Course, error) {
	cur, err := repo.col.Find(ctx, repo.filter(qf), options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []courseDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding courses")
	}
	courses := make([]course.Course, 0, len(docs))
	for _, doc := range docs {
		courses = append(courses, repo.fromDoc(doc))
	}
	return courses, nil
}

func (repo courseRepository) CountCourses(ctx context.Context, qf course.QueryFilter) (int, error) {
	n, err := repo.col.CountDocuments(ctx, repo.filter(qf))
	if err != nil {
		return 0, errors.Wrap(err, "counting courses")
	}
	return int(n), nil
}

func (repo courseRepository) GetCourse(ctx context.Context, id string) (course.Course, error) {
	oid, ok := objectID(id)
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	var doc courseDoc
	if err := repo.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return course.Course{}, repo.trapErr(err, "finding course")
	}
	return repo.fromDoc(doc), nil
}

func (repo courseRepository) UpdateChapters(ctx context.Context, id string, chapters []course.Block, published *bool) (course.Course, error) {
	oid, ok := objectID(id)
	if !ok {
		return course.Course{}, course.ErrNotFound
	}

	set := bson.D{{Key: "chapters", Value: toBlockDocs(chapters)}}
	if published != nil {
		set = append(set, bson.E{Key: "is_published", Value: *published})
	}

	var doc courseDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := repo.col.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if err != nil {
		return course.Course{}, repo.trapErr(err, "updating course chapters")
	}
	return repo.fromDoc(doc), nil
}

// Leaderboard ranks courses server-side: chaptersCount = $size of chapters (missing counts as empty),
// sorted descending with creation order as tie-break, internal _id projected out.
func (repo courseRepository) Leaderboard(ctx context.Context) ([]course.LeaderboardEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{
			{Key: "chaptersCount", Value: bson.D{
				{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$chapters", bson.A{}}}}},
			}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "chaptersCount", Value: -1},
			{Key: "createdAt", Value: 1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "user_id", Value: 1},
			{Key: "username", Value: 1},
			{Key: "chaptersCount", Value: 1},
			{Key: "chapters", Value: 1},
			{Key: "title", Value: 1},
			{Key: "is_published", Value: 1},
			{Key: "createdAt", Value: 1},
		}}},
	}

	cur, err := repo.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregating leaderboard")
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []leaderboardDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding leaderboard")
	}
	entries := make([]course.LeaderboardEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, course.LeaderboardEntry{
			UserID:        refString(doc.UserID),
			Username:      doc.Username,
			ChaptersCount: doc.ChaptersCount,
			Chapters:      fromBlockDocs(doc.Chapters),
			Title:         doc.Title,
			IsPublished:   doc.IsPublished,
			CreatedAt:     doc.CreatedAt,
		})
	}
	return entries, nil
}
