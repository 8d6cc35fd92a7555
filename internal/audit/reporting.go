package audit

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DailyMatchCount is one row of the daily matched-pair report.
type DailyMatchCount struct {
	Day   string `db:"day"`
	Pairs int64  `db:"pairs"`
}

// Reporter runs read-only aggregate queries against the same Postgres
// database the audit Store writes to, using sqlx directly rather than
// gorm for the SQL-shaped reporting surface.
type Reporter struct {
	db *sqlx.DB
}

// NewReporter wraps an already-open *sqlx.DB.
func NewReporter(db *sqlx.DB) *Reporter {
	return &Reporter{db: db}
}

// DailyMatchCounts returns the count of matched pairs per day for the n
// most recent days that have at least one match, most recent first.
// Days with no matches are not listed.
func (r *Reporter) DailyMatchCounts(n int) ([]DailyMatchCount, error) {
	const query = `
		SELECT to_char(to_timestamp(created_at), 'YYYY-MM-DD') AS day, count(*) AS pairs
		FROM match_records
		GROUP BY day
		ORDER BY day DESC
		LIMIT $1`

	var rows []DailyMatchCount
	if err := r.db.Select(&rows, query, n); err != nil {
		return nil, fmt.Errorf("audit: daily match counts: %w", err)
	}
	return rows, nil
}
