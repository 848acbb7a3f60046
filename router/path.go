// Package router compiles colon-parameter path patterns into anchored
// regular expressions and registers method+path routes for HTTP dispatch.
//
// A pattern like "/user/:id" compiles to `^/user/(?P<id>[^/]+)$`: parameters
// match a single path segment, everything else matches literally.
package router

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel errors returned by pattern compilation.
var (
	ErrPathNotAbsolute = errors.New("router: path must start with /")
	ErrInvalidPath     = errors.New("router: path contains invalid pattern")
	ErrEmptyParamName  = errors.New("router: empty param name")
	ErrTooManyParams   = errors.New("router: too many parameters in path")
)

// maxParams bounds the number of :name parameters in one pattern.
const maxParams = 20

// regex metacharacters that need escaping in literal path segments.
const metaChars = `.+*?()[]{}|^$\`

func isParamChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// CompilePath turns a colon-parameter pattern into the source text of an
// anchored regular expression with one named capture group per parameter.
//
//	CompilePath("/user/:id") // `^/user/(?P<id>[^/]+)$`
//
// The pattern must start with "/" and may not contain "//" or "::".
// Parameter names are [A-Za-z0-9_]+ and at most 20 per pattern. Literal
// characters that are regex metacharacters are escaped.
func CompilePath(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", ErrPathNotAbsolute
	}
	if strings.Contains(path, "//") || strings.Contains(path, "::") {
		return "", ErrInvalidPath
	}

	var (
		out    strings.Builder
		params int
	)
	out.WriteByte('^')

	for i := 0; i < len(path); i++ {
		c := path[i]
		if c != ':' {
			if strings.IndexByte(metaChars, c) >= 0 {
				out.WriteByte('\\')
			}
			out.WriteByte(c)
			continue
		}

		start := i + 1
		j := start
		for j < len(path) && isParamChar(path[j]) {
			j++
		}
		if j == start {
			return "", ErrEmptyParamName
		}
		params++
		if params > maxParams {
			return "", fmt.Errorf("%w (max %d)", ErrTooManyParams, maxParams)
		}
		fmt.Fprintf(&out, "(?P<%s>[^/]+)", path[start:j])
		i = j - 1
	}

	out.WriteByte('$')

	compiled := out.String()
	if _, err := regexp.Compile(compiled); err != nil {
		return "", fmt.Errorf("router: invalid regex generated: %w", err)
	}
	return compiled, nil
}

// MatchPath matches path against a compiled pattern (the output of
// CompilePath) and extracts the named parameters.
//
// ok is false when the path does not match; err is non-nil only when
// pattern itself is not a valid regular expression.
func MatchPath(pattern, path string) (params map[string]string, ok bool, err error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false, fmt.Errorf("router: invalid regex pattern: %w", err)
	}

	m := re.FindStringSubmatch(path)
	if m == nil {
		return nil, false, nil
	}

	params = make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i > 0 && name != "" {
			params[name] = m[i]
		}
	}
	return params, true, nil
}
