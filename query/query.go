// Package query rewrites named SQL placeholders into positional ones.
//
// Drivers speaking the PostgreSQL wire protocol take $1..$N placeholders;
// application code is easier to read with :name. Prepare bridges the two:
//
//	Prepare("SELECT * FROM users WHERE id = :id", map[string]any{"id": 1})
//	// "SELECT * FROM users WHERE id = $1", []any{1}
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors returned by Prepare.
var (
	ErrEmptyParamName = errors.New("query: empty param name")
	ErrMissingParam   = errors.New("query: parameter not found")
)

// Statement is one rewritten query with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// Prepare rewrites every :name placeholder in sql to $1..$N, numbered in
// order of appearance, and collects the matching values from params in
// that same order. A name appearing twice becomes two placeholders and
// two arguments.
//
// A ':' not followed by a name character is an error; so is a named
// placeholder with no entry in params.
func Prepare(sql string, params map[string]any) (string, []any, error) {
	var (
		out  strings.Builder
		args []any
		idx  = 1
	)
	out.Grow(len(sql))

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if c != ':' {
			out.WriteByte(c)
			continue
		}

		start := i + 1
		j := start
		for j < len(sql) && isNameChar(sql[j]) {
			j++
		}
		if j == start {
			return "", nil, ErrEmptyParamName
		}
		name := sql[start:j]

		val, ok := params[name]
		if !ok {
			return "", nil, fmt.Errorf("%w: %q", ErrMissingParam, name)
		}

		out.WriteByte('$')
		out.WriteString(strconv.Itoa(idx))
		idx++
		args = append(args, val)
		i = j - 1
	}

	return out.String(), args, nil
}

// PrepareBatch runs Prepare over parallel slices of queries and parameter
// maps. The slices must be the same length; the first failing query aborts
// the batch.
func PrepareBatch(queries []string, params []map[string]any) ([]Statement, error) {
	if len(queries) != len(params) {
		return nil, fmt.Errorf("query: %d queries but %d parameter sets", len(queries), len(params))
	}

	stmts := make([]Statement, 0, len(queries))
	for i, sql := range queries {
		rewritten, args, err := Prepare(sql, params[i])
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		stmts = append(stmts, Statement{SQL: rewritten, Args: args})
	}
	return stmts, nil
}
