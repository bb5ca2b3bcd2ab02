package assets

// DefaultStyleName is the stylesheet used when none is configured.
const DefaultStyleName = "default"

// AssetLoader defines the contract for loading book stylesheets.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// ListStyles returns the available style names, sorted.
	ListStyles() []string
}
