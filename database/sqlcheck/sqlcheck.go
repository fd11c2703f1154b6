// Package sqlcheck verifies rendered SQL against the MySQL grammar before it is
// sent to a server.
package sqlcheck

import (
	"errors"
	"fmt"

	"github.com/xwb1989/sqlparser"
)

// ErrNotSelect is returned by CheckSelect when the statement parses but is
// not a SELECT.
var ErrNotSelect = errors.New("statement is not a SELECT")

// SyntaxError reports a statement the parser rejected.
type SyntaxError struct {
	SQL string
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid SQL syntax: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Check parses sql and returns a *SyntaxError when it is not valid MySQL.
// Placeholders (?) are accepted.
func Check(sql string) error {
	_, err := parse(sql)
	return err
}

// CheckSelect is Check restricted to SELECT statements, including UNIONs.
func CheckSelect(sql string) error {
	stmt, err := parse(sql)
	if err != nil {
		return err
	}

	switch stmt.(type) {
	case *sqlparser.Select, *sqlparser.Union, *sqlparser.ParenSelect:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrNotSelect, sqlparser.String(stmt))
	}
}

func parse(sql string) (sqlparser.Statement, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, &SyntaxError{SQL: sql, Err: err}
	}
	return stmt, nil
}
