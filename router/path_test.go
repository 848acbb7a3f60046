package router

import (
	"errors"
	"strings"
	"testing"
)

func TestCompilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{"static", "/users", `^/users$`, nil},
		{"root", "/", `^/$`, nil},
		{"one param", "/user/:id", `^/user/(?P<id>[^/]+)$`, nil},
		{"two params", "/user/:id/post/:post_id", `^/user/(?P<id>[^/]+)/post/(?P<post_id>[^/]+)$`, nil},
		{"trailing static", "/user/:id/edit", `^/user/(?P<id>[^/]+)/edit$`, nil},
		{"metachars escaped", "/file/v1.2", `^/file/v1\.2$`, nil},
		{"not absolute", "user/:id", "", ErrPathNotAbsolute},
		{"double slash", "/user//:id", "", ErrInvalidPath},
		{"double colon", "/user/::id", "", ErrInvalidPath},
		{"empty param name", "/user/:", "", ErrEmptyParamName},
		{"empty param mid-path", "/user/:/edit", "", ErrEmptyParamName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompilePath(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CompilePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCompilePath_TooManyParams(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 21; i++ {
		b.WriteString("/:p")
		b.WriteByte(byte('a' + i))
	}
	if _, err := CompilePath(b.String()); !errors.Is(err, ErrTooManyParams) {
		t.Errorf("err = %v, want ErrTooManyParams", err)
	}

	// Exactly 20 is fine.
	b.Reset()
	for i := 0; i < 20; i++ {
		b.WriteString("/:p")
		b.WriteByte(byte('a' + i))
	}
	if _, err := CompilePath(b.String()); err != nil {
		t.Errorf("20 params: unexpected err %v", err)
	}
}

func TestMatchPath(t *testing.T) {
	pattern, err := CompilePath("/user/:id/post/:slug")
	if err != nil {
		t.Fatal(err)
	}

	params, ok, err := MatchPath(pattern, "/user/42/post/hello-world")
	if err != nil || !ok {
		t.Fatalf("match = (%v, %v)", ok, err)
	}
	if params["id"] != "42" || params["slug"] != "hello-world" {
		t.Errorf("params = %v", params)
	}

	// Params never span segments.
	if _, ok, _ := MatchPath(pattern, "/user/42/43/post/x"); ok {
		t.Error("matched a path with an extra segment")
	}
	// Anchored at both ends.
	if _, ok, _ := MatchPath(pattern, "/user/42/post/x/extra"); ok {
		t.Error("matched past the end of the pattern")
	}
	if _, ok, _ := MatchPath(pattern, "/prefix/user/42/post/x"); ok {
		t.Error("matched before the start of the pattern")
	}

	if _, _, err := MatchPath("(unclosed", "/x"); err == nil {
		t.Error("invalid pattern did not error")
	}
}

func TestMatchPath_EscapedLiterals(t *testing.T) {
	pattern, err := CompilePath("/file/v1.2/:name")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := MatchPath(pattern, "/file/v1x2/data"); ok {
		t.Error("dot matched a non-dot character; literal not escaped")
	}
	params, ok, _ := MatchPath(pattern, "/file/v1.2/data")
	if !ok || params["name"] != "data" {
		t.Errorf("match = (%v, %v)", params, ok)
	}
}
