package navigation

import "testing"

func TestAllowNavigation(t *testing.T) {
	tests := []struct {
		name     string
		buildURL string
		target   string
		expected bool
	}{
		{
			name:     "identical origin",
			buildURL: "https://app.cinder.chat",
			target:   "https://app.cinder.chat/channels/123",
			expected: true,
		},
		{
			name:     "identical origin different path",
			buildURL: "https://app.cinder.chat/index.html",
			target:   "https://app.cinder.chat/login",
			expected: true,
		},
		{
			name:     "host case is ignored",
			buildURL: "https://app.cinder.chat",
			target:   "https://App.Cinder.Chat/settings",
			expected: true,
		},
		{
			name:     "different host",
			buildURL: "https://app.cinder.chat",
			target:   "https://evil.example.com/",
			expected: false,
		},
		{
			name:     "different scheme",
			buildURL: "https://app.cinder.chat",
			target:   "http://app.cinder.chat/",
			expected: false,
		},
		{
			name:     "different port",
			buildURL: "http://localhost:5173",
			target:   "http://localhost:8080/",
			expected: false,
		},
		{
			name:     "dev server same origin",
			buildURL: "http://localhost:5173",
			target:   "http://localhost:5173/app",
			expected: true,
		},
		{
			name:     "relative URL has no origin",
			buildURL: "https://app.cinder.chat",
			target:   "/channels/123",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.buildURL)
			if err != nil {
				t.Fatalf("New(%q): %v", tt.buildURL, err)
			}
			if got := p.AllowNavigation(tt.target); got != tt.expected {
				t.Errorf("AllowNavigation(%q) = %v, want %v", tt.target, got, tt.expected)
			}
		})
	}
}

func TestRoutePopup(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected PopupAction
	}{
		{name: "https opens externally", url: "https://example.com", expected: PopupOpenExternal},
		{name: "http opens externally", url: "http://example.com", expected: PopupOpenExternal},
		{name: "mailto opens externally", url: "mailto:hi@example.com", expected: PopupOpenExternal},
		{name: "uppercase scheme", url: "HTTPS://example.com", expected: PopupOpenExternal},
		{name: "ftp is dropped", url: "ftp://example.com", expected: PopupDrop},
		{name: "file is dropped", url: "file:///etc/passwd", expected: PopupDrop},
		{name: "javascript is dropped", url: "javascript:alert(1)", expected: PopupDrop},
		{name: "empty is dropped", url: "", expected: PopupDrop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoutePopup(tt.url); got != tt.expected {
				t.Errorf("RoutePopup(%q) = %v, want %v", tt.url, got, tt.expected)
			}
		})
	}
}
