package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gurumantra/backend/core/user"
)

type userDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Password       string             `bson:"password"`
	TeacherType    string             `bson:"teacher_type"`
	ProfilePicture string             `bson:"profile_picture"`
	Email          string             `bson:"email"`
	DocURL         string             `bson:"doc_url"`
	AadharCardURL  string             `bson:"aadhar_card_url"`
	MarkSheetURL   string             `bson:"mark_sheet_url"`
	CertURL        string             `bson:"cert_url"`
	IsVerified     bool               `bson:"is_verified"`
	Education      string             `bson:"education"`
	Major          string             `bson:"major"`
	GraduationYear string             `bson:"graduation_year"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty"`
}

type userRepository struct {
	col *mongo.Collection
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *mongo.Database) *userRepository {
	return &userRepository{col: db.Collection(UserCollection)}
}

func (repo userRepository) toDoc(usr user.User) userDoc {
	return userDoc{
		Username:       usr.Username,
		Password:       string(usr.PasswordHash),
		TeacherType:    usr.TeacherType,
		ProfilePicture: usr.ProfilePicture,
		Email:          usr.Email,
		DocURL:         usr.DocURL,
		AadharCardURL:  usr.AadharCardURL,
		MarkSheetURL:   usr.MarkSheetURL,
		CertURL:        usr.CertURL,
		IsVerified:     usr.IsVerified,
		Education:      usr.Education,
		Major:          usr.Major,
		GraduationYear: usr.GraduationYear,
		CreatedAt:      usr.CreatedAt.UTC(),
	}
}

func (repo userRepository) fromDoc(doc userDoc) user.User {
	return user.User{
		ID:             doc.ID.Hex(),
		Username:       doc.Username,
		PasswordHash:   []byte(doc.Password),
		TeacherType:    doc.TeacherType,
		ProfilePicture: doc.ProfilePicture,
		Email:          doc.Email,
		DocURL:         doc.DocURL,
		AadharCardURL:  doc.AadharCardURL,
		MarkSheetURL:   doc.MarkSheetURL,
		CertURL:        doc.CertURL,
		IsVerified:     doc.IsVerified,
		Education:      doc.Education,
		Major:          doc.Major,
		GraduationYear: doc.GraduationYear,
		CreatedAt:      doc.CreatedAt,
	}
}

// trapErr maps driver errors to user sentinels.
func (repo userRepository) trapErr(err error, msg string) error {
	if err == mongo.ErrNoDocuments {
		return user.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return user.ErrEmailExists
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	doc := repo.toDoc(usr)
	doc.ID = primitive.NewObjectID()
	if _, err := repo.col.InsertOne(ctx, doc); err != nil {
		return user.User{}, repo.trapErr(err, "inserting user")
	}
	return repo.fromDoc(doc), nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	var query bson.D
	switch {
	case filter.ID != "":
		oid, ok := objectID(filter.ID)
		if !ok {
			return user.User{}, user.ErrNotFound
		}
		query = bson.D{{Key: "_id", Value: oid}}
	case filter.Email != "":
		query = bson.D{{Key: "email", Value: filter.Email}}
	default:
		return user.User{}, user.ErrNotFound
	}

	var doc userDoc
	if err := repo.col.FindOne(ctx, query).Decode(&doc); err != nil {
		return user.User{}, repo.trapErr(err, "finding user")
	}
	return repo.fromDoc(doc), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, id string, patch user.Patch) (user.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	set := bson.D{}
	add := func(key string, val *string) {
		if val != nil {
			set = append(set, bson.E{Key: key, Value: *val})
		}
	}
	add("username", patch.Username)
	add("email", patch.Email)
	add("aadhar_card_url", patch.AadharCardURL)
	add("mark_sheet_url", patch.MarkSheetURL)
	add("cert_url", patch.CertURL)
	add("education", patch.Education)
	add("major", patch.Major)
	add("graduation_year", patch.GraduationYear)
	if patch.IsVerified != nil {
		set = append(set, bson.E{Key: "is_verified", Value: *patch.IsVerified})
	}
	if patch.PasswordHash != nil {
		set = append(set, bson.E{Key: "password", Value: string(patch.PasswordHash)})
	}

	var doc userDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := repo.col.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if err != nil {
		return user.User{}, repo.trapErr(err, "updating user")
	}
	return repo.fromDoc(doc), nil
}
