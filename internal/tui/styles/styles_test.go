package styles

import "testing"

func TestThemeByName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"default", "default", true},
		{" High-Contrast ", "high-contrast", true},
		{"solarized", "", false},
	}
	for _, tt := range tests {
		theme, ok := ThemeByName(tt.in)
		if ok != tt.ok {
			t.Fatalf("ThemeByName(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if ok && theme.Name != tt.want {
			t.Fatalf("ThemeByName(%q) = %q, want %q", tt.in, theme.Name, tt.want)
		}
	}
}

func TestThemesDefineEveryToken(t *testing.T) {
	for name, theme := range Themes {
		tk := theme.Tokens
		for role, value := range map[string]string{
			"background": tk.Background, "panel": tk.Panel, "text": tk.Text,
			"muted": tk.TextMuted, "border": tk.Border, "accent": tk.Accent,
			"focus": tk.Focus, "success": tk.Success, "warning": tk.Warning,
			"visited": tk.Visited, "upcoming": tk.Upcoming,
		} {
			if value == "" {
				t.Errorf("theme %s: token %s is empty", name, role)
			}
		}
		if theme.Name != name {
			t.Errorf("theme registered as %q is named %q", name, theme.Name)
		}
	}
}
