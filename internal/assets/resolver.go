package assets

import (
	"errors"
	"sort"
)

// AssetResolver tries a custom directory first and falls back to the
// embedded styles when a style is not found there.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath uses
// embedded styles only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a CSS style, custom directory first.
// Validation and I/O errors from the custom directory are not masked.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}

	return r.embedded.LoadStyle(name)
}

// ListStyles returns the union of custom and embedded style names.
func (r *AssetResolver) ListStyles() []string {
	seen := make(map[string]bool)
	var names []string
	loaders := []AssetLoader{r.embedded}
	if r.custom != nil {
		loaders = append(loaders, r.custom)
	}
	for _, l := range loaders {
		for _, n := range l.ListStyles() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
