package query

import (
	"errors"
	"reflect"
	"testing"
)

func TestPrepare(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		params   map[string]any
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "single param",
			sql:      "SELECT * FROM users WHERE id = :id",
			params:   map[string]any{"id": 1},
			wantSQL:  "SELECT * FROM users WHERE id = $1",
			wantArgs: []any{1},
		},
		{
			name:     "appearance order, not map order",
			sql:      "UPDATE users SET name = :name, age = :age WHERE id = :id",
			params:   map[string]any{"id": 7, "age": 30, "name": "ada"},
			wantSQL:  "UPDATE users SET name = $1, age = $2 WHERE id = $3",
			wantArgs: []any{"ada", 30, 7},
		},
		{
			name:     "repeated name numbers twice",
			sql:      "SELECT :v AS a, :v AS b",
			params:   map[string]any{"v": "x"},
			wantSQL:  "SELECT $1 AS a, $2 AS b",
			wantArgs: []any{"x", "x"},
		},
		{
			name:     "no params",
			sql:      "SELECT 1",
			params:   nil,
			wantSQL:  "SELECT 1",
			wantArgs: nil,
		},
		{
			name:     "nil value passes through",
			sql:      "INSERT INTO t (a) VALUES (:a)",
			params:   map[string]any{"a": nil},
			wantSQL:  "INSERT INTO t (a) VALUES ($1)",
			wantArgs: []any{nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := Prepare(tt.sql, tt.params)
			if err != nil {
				t.Fatalf("Prepare failed: %v", err)
			}
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestPrepare_Errors(t *testing.T) {
	if _, _, err := Prepare("SELECT :id", nil); !errors.Is(err, ErrMissingParam) {
		t.Errorf("missing param err = %v, want ErrMissingParam", err)
	}
	if _, _, err := Prepare("SELECT a : b", map[string]any{}); !errors.Is(err, ErrEmptyParamName) {
		t.Errorf("bare colon err = %v, want ErrEmptyParamName", err)
	}
	if _, _, err := Prepare("SELECT :", map[string]any{}); !errors.Is(err, ErrEmptyParamName) {
		t.Errorf("trailing colon err = %v, want ErrEmptyParamName", err)
	}
}

func TestPrepareBatch(t *testing.T) {
	stmts, err := PrepareBatch(
		[]string{"SELECT :a", "SELECT :b, :c"},
		[]map[string]any{{"a": 1}, {"b": 2, "c": 3}},
	)
	if err != nil {
		t.Fatalf("PrepareBatch failed: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements", len(stmts))
	}
	if stmts[0].SQL != "SELECT $1" || !reflect.DeepEqual(stmts[0].Args, []any{1}) {
		t.Errorf("stmt 0 = %+v", stmts[0])
	}
	if stmts[1].SQL != "SELECT $1, $2" || !reflect.DeepEqual(stmts[1].Args, []any{2, 3}) {
		t.Errorf("stmt 1 = %+v", stmts[1])
	}
}

func TestPrepareBatch_Errors(t *testing.T) {
	if _, err := PrepareBatch([]string{"SELECT 1"}, nil); err == nil {
		t.Error("length mismatch did not error")
	}
	if _, err := PrepareBatch(
		[]string{"SELECT 1", "SELECT :missing"},
		[]map[string]any{{}, {}},
	); !errors.Is(err, ErrMissingParam) {
		t.Errorf("err = %v, want ErrMissingParam", err)
	}
}
