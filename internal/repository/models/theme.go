package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mcq-checker/internal/domain"
)

// OptionsColumn stores an ordered option list as a JSON object in a CLOB.
type OptionsColumn domain.OptionList

// Value implements the driver.Valuer interface
func (o OptionsColumn) Value() (driver.Value, error) {
	if len(o) == 0 {
		// free-form questions have no options; store NULL
		return nil, nil
	}
	jsonData, err := json.Marshal(domain.OptionList(o))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (o *OptionsColumn) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("OptionsColumn Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*o = nil
		return nil
	}

	var list domain.OptionList
	if err := json.Unmarshal(bytesToParse, &list); err != nil {
		return err
	}
	*o = OptionsColumn(list)
	return nil
}

// Theme is a row of the themes table.
type Theme struct {
	ID         string    `db:"ID"`
	ImportID   string    `db:"IMPORT_ID"`
	ImportedAt time.Time `db:"IMPORTED_AT"`
}

// ThemeQuestion is a row of the theme_questions table.
type ThemeQuestion struct {
	ThemeID     string         `db:"THEME_ID"`
	ID          string         `db:"ID"`
	Position    int            `db:"POSITION"`
	Text        string         `db:"TEXT"`
	Options     OptionsColumn  `db:"OPTIONS"`
	Correct     sql.NullString `db:"CORRECT"`
	Explanation sql.NullString `db:"EXPLANATION"`
	Answer      sql.NullString `db:"ANSWER"`
}
