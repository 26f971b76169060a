package inmemdb

import (
	"sync"

	"github.com/gurumantra/backend/core/asset"
	"github.com/gurumantra/backend/core/course"
	"github.com/gurumantra/backend/core/credit"
	"github.com/gurumantra/backend/core/user"
)

type (
	// DB keeps every table in insertion order.
	DB struct {
		user   *userTable
		course *courseTable
		asset  *assetTable
		credit *creditTable
	}

	userTable struct {
		sync.RWMutex
		rows []*user.User
	}

	courseTable struct {
		sync.RWMutex
		rows []*course.Course
	}

	assetTable struct {
		sync.RWMutex
		rows []*asset.Asset
	}

	creditTable struct {
		sync.RWMutex
		rows map[string]*credit.CreditPoints
	}
)

func Open() *DB {
	return &DB{
		user:   &userTable{},
		course: &courseTable{},
		asset:  &assetTable{},
		credit: &creditTable{rows: make(map[string]*credit.CreditPoints)},
	}
}

// Reset empties every table.
func (db *DB) Reset() {
	db.user.Lock()
	db.user.rows = nil
	db.user.Unlock()

	db.course.Lock()
	db.course.rows = nil
	db.course.Unlock()

	db.asset.Lock()
	db.asset.rows = nil
	db.asset.Unlock()

	db.credit.Lock()
	db.credit.rows = make(map[string]*credit.CreditPoints)
	db.credit.Unlock()
}
