// Package testdb helps tests that need a real PostgreSQL database.
//
// Tests call Open, which skips the test unless DATABASE_URL is set and
// migrates the schema once per process, then run their work inside WithTx so
// every change is rolled back when the test ends:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewUserStore(tx, bcrypt.MinCost, nil)
//	        ...
//	    })
//	}
package testdb
