package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		kyc_status TEXT NOT NULL,
		kyc_verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPropertyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE properties (
		id TEXT PRIMARY KEY,
		owner_id TEXT,
		title TEXT NOT NULL,
		price REAL NOT NULL,
		listing_type TEXT,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPropertyOfferTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE property_offers (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL,
		buyer_id TEXT NOT NULL,
		seller_id TEXT,
		offer_price REAL NOT NULL,
		deposit_amount REAL NOT NULL,
		payment_method TEXT NOT NULL,
		estimated_timeline TEXT NOT NULL,
		status TEXT NOT NULL,
		admin_notes TEXT,
		admin_reviewed_by TEXT,
		admin_reviewed_at DATETIME,
		submitted_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createVerificationSubmissionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE verification_submissions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		risk_score REAL,
		selfie_quality_score INTEGER,
		id_front_quality_score INTEGER,
		face_match_score INTEGER,
		auto_approved BOOLEAN NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		rejection_reason TEXT,
		reviewer_id TEXT,
		submitted_at DATETIME NOT NULL,
		reviewed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
