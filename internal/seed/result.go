// Package seed orchestrates ingestion: provider data in, Postgres rows out.
package seed

import "fmt"

// Result tracks counts and errors from a seeding operation.
type Result struct {
	PlayersUpserted  int
	GameLogsUpserted int
	ShotsInserted    int
	RollingRows      int
	Errors           []string
}

// Add merges another Result into this one.
func (r *Result) Add(other Result) {
	r.PlayersUpserted += other.PlayersUpserted
	r.GameLogsUpserted += other.GameLogsUpserted
	r.ShotsInserted += other.ShotsInserted
	r.RollingRows += other.RollingRows
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"players=%d game_logs=%d shots=%d rolling_rows=%d errors=%d",
		r.PlayersUpserted, r.GameLogsUpserted, r.ShotsInserted, r.RollingRows,
		len(r.Errors),
	)
}
