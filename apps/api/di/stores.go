package di

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core"
	"github.com/gurumantra/backend/core/asset"
	"github.com/gurumantra/backend/core/course"
	"github.com/gurumantra/backend/core/credit"
	"github.com/gurumantra/backend/core/user"
	"github.com/gurumantra/backend/storage/database"
	inmemdb "github.com/gurumantra/backend/storage/database/inmem"
	mongorepos "github.com/gurumantra/backend/storage/database/mongo"
	sqlxrepos "github.com/gurumantra/backend/storage/database/sqlx"
)

const setupTimeout = 30 * time.Second

// Stores holds the repositories of the configured database engine.
type Stores struct {
	Users   user.Repository
	Courses course.Repository
	Assets  asset.Repository
	Credits credit.Repository

	close func() error
}

func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewStores opens the database.engine store and prepares its schema.
func NewStores(conf *core.Config) (*Stores, error) {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	switch conf.Database.Engine {
	case core.EngineMongo:
		client, db, err := database.OpenMongo(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err = mongorepos.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &Stores{
			Users:   mongorepos.NewUserRepository(db),
			Courses: mongorepos.NewCourseRepository(db),
			Assets:  mongorepos.NewAssetRepository(db),
			Credits: mongorepos.NewCreditRepository(db),
			close:   func() error { return client.Disconnect(context.Background()) },
		}, nil

	case core.EnginePostgres:
		if err := database.CreateIfNotExist(ctx, conf); err != nil {
			return nil, err
		}
		db, err := database.OpenPostgres(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db.DB); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Stores{
			Users:   sqlxrepos.NewUserRepository(db),
			Courses: sqlxrepos.NewCourseRepository(db),
			Assets:  sqlxrepos.NewAssetRepository(db),
			Credits: sqlxrepos.NewCreditRepository(db),
			close:   db.Close,
		}, nil

	case core.EngineMemory:
		db := inmemdb.Open()
		return &Stores{
			Users:   inmemdb.NewUserRepository(db),
			Courses: inmemdb.NewCourseRepository(db),
			Assets:  inmemdb.NewAssetRepository(db),
			Credits: inmemdb.NewCreditRepository(db),
		}, nil
	}
	return nil, errors.Errorf("unknown database engine %q", conf.Database.Engine)
}
