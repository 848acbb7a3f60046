// Package template keeps named registries of precompiled HTML template
// sets and renders from them by name.
package template

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// ErrTemplateNotFound is returned when a registered set does not contain
// the requested template.
var ErrTemplateNotFound = errors.New("template: template not found")

// Registry maps set names to precompiled template sets. Registration and
// rendering are safe from any number of goroutines.
type Registry struct {
	mu   sync.RWMutex
	sets map[string]*template.Template
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[string]*template.Template)}
}

// RegisterDir parses every file matching glob into one template set and
// registers it under name, replacing any previous set with that name. The
// whole set is precompiled here; Render never parses registered sets
// again.
func (r *Registry) RegisterDir(name, glob string) error {
	set, err := template.ParseGlob(glob)
	if err != nil {
		return fmt.Errorf("template: parsing %q: %w", glob, err)
	}

	r.mu.Lock()
	r.sets[name] = set
	r.mu.Unlock()
	return nil
}

// Register parses src as a single named template and registers it as a
// one-template set under name.
func (r *Registry) Register(name, src string) error {
	set, err := template.New(name).Parse(src)
	if err != nil {
		return fmt.Errorf("template: parsing %q: %w", name, err)
	}

	r.mu.Lock()
	r.sets[name] = set
	r.mu.Unlock()
	return nil
}

// Render executes template tpl out of the set registered under name and
// returns the output.
//
// When no set is registered under name, tpl itself is parsed as one-shot
// template source and executed. That keeps quick inline rendering working
// without a registration step, at the cost of parsing per call.
func (r *Registry) Render(name, tpl string, data any) (string, error) {
	r.mu.RLock()
	set, ok := r.sets[name]
	r.mu.RUnlock()

	var buf strings.Builder
	if !ok {
		t, err := template.New(tpl).Parse(tpl)
		if err != nil {
			return "", fmt.Errorf("template: parsing inline template: %w", err)
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("template: rendering inline template: %w", err)
		}
		return buf.String(), nil
	}

	if set.Lookup(tpl) == nil {
		return "", fmt.Errorf("%w: %q in set %q", ErrTemplateNotFound, tpl, name)
	}
	if err := set.ExecuteTemplate(&buf, tpl, data); err != nil {
		return "", fmt.Errorf("template: rendering %q: %w", tpl, err)
	}
	return buf.String(), nil
}

// Names returns the registered set names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	return names
}
