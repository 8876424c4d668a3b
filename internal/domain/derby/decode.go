package derby

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

const (
	ColumnHomeTeam  = "home_team"
	ColumnAwayTeam  = "away_team"
	ColumnHomeScore = "home_score"
	ColumnAwayScore = "away_score"
	ColumnXGHome    = "xg_home"
	ColumnXGAway    = "xg_away"
	ColumnMatchDate = "match_date"
)

// RequiredColumns lists the raw columns every match_stats row must carry.
var RequiredColumns = []string{
	ColumnHomeTeam,
	ColumnAwayTeam,
	ColumnHomeScore,
	ColumnAwayScore,
	ColumnXGHome,
	ColumnXGAway,
	ColumnMatchDate,
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
}

var recordValidator = validator.New()

// DecodeTable converts raw rows into typed records, preserving row order.
func DecodeTable(table Table) ([]MatchRecord, error) {
	out := make([]MatchRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		rec, err := DecodeRow(row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out = append(out, rec)
	}

	return out, nil
}

func DecodeRow(row Row) (MatchRecord, error) {
	var (
		rec MatchRecord
		err error
	)

	if rec.HomeTeam, err = textCell(row, ColumnHomeTeam); err != nil {
		return MatchRecord{}, err
	}
	if rec.AwayTeam, err = textCell(row, ColumnAwayTeam); err != nil {
		return MatchRecord{}, err
	}
	if rec.HomeScore, err = intCell(row, ColumnHomeScore); err != nil {
		return MatchRecord{}, err
	}
	if rec.AwayScore, err = intCell(row, ColumnAwayScore); err != nil {
		return MatchRecord{}, err
	}
	if rec.XGHome, err = floatCell(row, ColumnXGHome); err != nil {
		return MatchRecord{}, err
	}
	if rec.XGAway, err = floatCell(row, ColumnXGAway); err != nil {
		return MatchRecord{}, err
	}
	if rec.MatchDate, err = dateCell(row, ColumnMatchDate); err != nil {
		return MatchRecord{}, err
	}

	if err := ValidateRecord(rec); err != nil {
		return MatchRecord{}, err
	}

	return rec, nil
}

// ValidateRecord reports ErrSchema when a typed record violates the fixed schema.
func ValidateRecord(rec MatchRecord) error {
	if math.IsNaN(rec.XGHome) || math.IsNaN(rec.XGAway) {
		return errors.Wrap(ErrSchema, "xg value is NaN")
	}
	if err := recordValidator.Struct(rec); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return errors.Wrapf(ErrSchema, "field %s failed %q", fieldErrs[0].Field(), fieldErrs[0].Tag())
		}
		return errors.Wrap(ErrSchema, err.Error())
	}

	return nil
}

// cell looks column up exactly, then case-insensitively so stores that
// declare xG_home still decode.
func cell(row Row, column string) (any, error) {
	value, ok := row[column]
	if !ok {
		for key, v := range row {
			if strings.EqualFold(key, column) {
				value, ok = v, true
				break
			}
		}
	}
	if !ok || value == nil {
		return nil, errors.Wrapf(ErrSchema, "column %q is missing", column)
	}
	if b, ok := value.([]byte); ok {
		return string(b), nil
	}

	return value, nil
}

func textCell(row Row, column string) (string, error) {
	value, err := cell(row, column)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", errors.Wrapf(ErrSchema, "column %q: expected text, got %T", column, value)
	}

	return strings.TrimSpace(s), nil
}

func intCell(row Row, column string) (int, error) {
	value, err := cell(row, column)
	if err != nil {
		return 0, err
	}

	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, errors.Wrapf(ErrSchema, "column %q: %v is not an integer", column, v)
		}
		return int(v), nil
	case string:
		n, parseErr := strconv.Atoi(strings.TrimSpace(v))
		if parseErr != nil {
			return 0, errors.Wrapf(ErrSchema, "column %q: %q is not an integer", column, v)
		}
		return n, nil
	default:
		return 0, errors.Wrapf(ErrSchema, "column %q: expected integer, got %T", column, value)
	}
}

func floatCell(row Row, column string) (float64, error) {
	value, err := cell(row, column)
	if err != nil {
		return 0, err
	}

	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, parseErr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if parseErr != nil {
			return 0, errors.Wrapf(ErrSchema, "column %q: %q is not a number", column, v)
		}
		return f, nil
	default:
		return 0, errors.Wrapf(ErrSchema, "column %q: expected number, got %T", column, value)
	}
}

func dateCell(row Row, column string) (time.Time, error) {
	value, err := cell(row, column)
	if err != nil {
		return time.Time{}, err
	}

	switch v := value.(type) {
	case time.Time:
		return truncateDay(v), nil
	case string:
		raw := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if parsed, parseErr := time.Parse(layout, raw); parseErr == nil {
				return truncateDay(parsed), nil
			}
		}
		return time.Time{}, errors.Wrapf(ErrSchema, "column %q: %q is not a date", column, v)
	default:
		return time.Time{}, errors.Wrapf(ErrSchema, "column %q: expected date, got %T", column, value)
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
