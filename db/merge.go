package db

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// mergeTables lists the copied tables with their column sets, in
// dependency order.
var mergeTables = []struct {
	name    string
	columns string
	count   int
}{
	{name: "gyms", columns: "id, name, location", count: 3},
	{name: "route_categories", columns: "id, gym_id, name, difficulty_index, notes", count: 5},
	{name: "climbing_sessions", columns: "id, gym_id, date, notes", count: 4},
	{name: "session_routes", columns: "session_id, route_category_id, unique_routes_completed, unique_routes_attempted, additional_attempts", count: 5},
}

// Merge copies every row of the input databases into the output.
// Rows sharing a primary key (the same session logged in both inputs)
// are kept from whichever input came first.
func Merge(inputs []*SQLiteStorage, output *SQLiteStorage) error {
	bar := progressbar.Default(-1, "Copying rows...")

	for _, input := range inputs {
		for _, table := range mergeTables {
			if err := copyTable(input, output, table.name, table.columns, table.count, bar); err != nil {
				return err
			}
		}
	}

	if err := bar.Finish(); err != nil {
		slog.Error("could not finish progress bar", "error", err)
	}

	return nil
}

func copyTable(input, output *SQLiteStorage, table, columns string, columnCount int, bar *progressbar.ProgressBar) error {
	rows, err := input.db.Query(fmt.Sprintf(`select %s from %s`, columns, table))
	if err != nil {
		return fmt.Errorf("could not read %s: %w", table, err)
	}
	defer rows.Close()

	placeholders := ""
	for i := range columnCount {
		if i > 0 {
			placeholders += ", "
		}

		placeholders += "?"
	}

	insert := fmt.Sprintf(`insert or ignore into %s(%s) values(%s)`, table, columns, placeholders)

	values := make([]any, columnCount)
	scanTargets := make([]any, columnCount)

	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("could not scan %s row: %w", table, err)
		}

		if _, err := output.db.Exec(insert, values...); err != nil {
			return fmt.Errorf("could not copy %s row: %w", table, err)
		}

		if err := bar.Add(1); err != nil {
			slog.Error("could not update progress bar", "error", err)
		}
	}

	return rows.Err()
}
