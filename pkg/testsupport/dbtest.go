package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

var memoryDBSeq atomic.Int64

// NewSQLiteMemoryDB opens a private in-memory sqlite database. Each call gets
// its own named database so parallel tests never share rows.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("file:pagebuilder_%d?mode=memory&cache=shared", memoryDBSeq.Add(1))
	db, err := sql.Open("sqlite3", name)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
