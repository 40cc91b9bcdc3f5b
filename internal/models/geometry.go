package models

// WindowGeometry holds the last-known position and size of one logical
// window. Each field is independently optional; absent means "use the
// default" at window creation.
type WindowGeometry struct {
	X      *int `yaml:"x,omitempty"`
	Y      *int `yaml:"y,omitempty"`
	Width  *int `yaml:"width,omitempty"`
	Height *int `yaml:"height,omitempty"`
}

// WindowState maps a logical window name to its persisted geometry.
// This corresponds to ~/.cinder/window.yaml.
type WindowState map[string]*WindowGeometry

// IntPtr returns a pointer to v, for building geometry values.
func IntPtr(v int) *int { return &v }
