package exec

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sqlpilot/sqlpilot/internal/types"
)

// decimalTypes are database types whose []byte representation is coerced to
// float64. This loses fixed-point precision; callers needing exact decimals
// must not rely on this path.
var decimalTypes = map[string]bool{
	"DECIMAL":    true,
	"NUMERIC":    true,
	"NEWDECIMAL": true,
	"FLOAT":      true,
	"DOUBLE":     true,
	"REAL":       true,
}

// scanRows materializes all rows into the normalized scalar set: int64,
// float64, string, bool, nil. Temporal values become ISO-8601 text.
func scanRows(rows *sql.Rows) (*types.TabularResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	result := &types.TabularResult{Columns: columns}

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))

		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make([]any, len(columns))
		for i, v := range values {
			row[i] = normalizeValue(v, columnTypes[i])
		}

		result.Rows = append(result.Rows, row)
	}

	return result, rows.Err()
}

func normalizeValue(v any, colType *sql.ColumnType) any {
	switch val := v.(type) {
	case nil:
		return nil
	case int64, float64, bool:
		return val
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case uint64:
		// BIGINT UNSIGNED can exceed int64 range; those values stay
		// numeric as float64 with the same precision caveat as decimals.
		if val > math.MaxInt64 {
			return float64(val)
		}

		return int64(val)
	case float32:
		return float64(val)
	case time.Time:
		return formatTimestamp(val)
	case []byte:
		return normalizeBytes(val, colType)
	case string:
		return val
	default:
		return val
	}
}

// normalizeBytes resolves the driver's []byte values: decimal-typed columns
// become float64, everything else becomes a string
func normalizeBytes(b []byte, colType *sql.ColumnType) any {
	s := string(b)

	if colType != nil && decimalTypes[strings.ToUpper(colType.DatabaseTypeName())] {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return s
}

// formatTimestamp renders temporal values as ISO-8601 text: bare dates for
// midnight values, full RFC 3339 otherwise
func formatTimestamp(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}

	return t.Format(time.RFC3339)
}
