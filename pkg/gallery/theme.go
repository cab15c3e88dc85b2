package gallery

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultTheme is the palette used when the configuration names none.
const DefaultTheme = "classic"

// ClassicManifest is the built-in palette of the gallery page. The base tokens
// form the light variant; "dark" overrides them.
func ClassicManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"text":       "#333333",
			"shadow":     "#555555",
			"background": "#ffffff",
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"text":       "#dddddd",
					"shadow":     "#000000",
					"background": "#1e1e1e",
				},
			},
		},
	}
}

// PaletteSelector resolves theme selections from a fixed set of manifests.
type PaletteSelector struct {
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*PaletteSelector)(nil)

// NewPaletteSelector indexes manifests by name. With no manifests it serves
// ClassicManifest.
func NewPaletteSelector(manifests ...*theme.Manifest) *PaletteSelector {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{ClassicManifest()}
	}
	s := &PaletteSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		s.manifests[m.Name] = m
	}
	return s
}

// Select returns the named manifest and variant. Empty names fall back to
// DefaultTheme; an empty variant selects the base tokens.
func (s *PaletteSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("gallery: unknown theme %q", name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("gallery: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// StyleVars flattens a selection into CSS custom properties sorted by name.
// Variant tokens override the manifest's base tokens.
func StyleVars(selection *theme.Selection) []StyleVar {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}

	vars := make([]StyleVar, 0, len(tokens))
	for key, value := range tokens {
		vars = append(vars, StyleVar{Name: "--" + key, Value: value})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
