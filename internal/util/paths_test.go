package util

import (
	"path/filepath"
	"testing"
)

func TestHomeDir(t *testing.T) {
	home := HomeDir()
	if home == "" {
		t.Error("HomeDir() returned empty string")
	}
	if !filepath.IsAbs(home) {
		t.Errorf("HomeDir() returned relative path: %s", home)
	}
}

func TestSnipconvPaths(t *testing.T) {
	t.Setenv("SNIPCONV_HOME", "")
	want := filepath.Join(HomeDir(), ".snipconv")
	if got := SnipconvConfigPath(); got != want {
		t.Errorf("SnipconvConfigPath() = %q, want %q", got, want)
	}
	if got := SnipconvBackupsPath(); got != filepath.Join(want, "backups") {
		t.Errorf("SnipconvBackupsPath() = %q", got)
	}
	if got := DefaultTargetPath(); filepath.Base(got) != DefaultTargetFile {
		t.Errorf("DefaultTargetPath() = %q, want file %q", got, DefaultTargetFile)
	}
}

func TestSnipconvConfigPath_Override(t *testing.T) {
	t.Setenv("SNIPCONV_HOME", "/custom/snipconv")
	if got := SnipconvConfigPath(); got != "/custom/snipconv" {
		t.Errorf("SnipconvConfigPath() = %q, want override", got)
	}
}

func TestSnippetsDir(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}
	home := HomeDir()

	tests := map[string]struct {
		goos string
		env  map[string]string
		want string
	}{
		"windows uses APPDATA": {
			goos: "windows",
			env:  map[string]string{"APPDATA": filepath.Join("C:", "Users", "me", "AppData", "Roaming")},
			want: filepath.Join("C:", "Users", "me", "AppData", "Roaming", "Code", "User", "snippets"),
		},
		"windows without APPDATA": {
			goos: "windows",
			want: filepath.Join(home, "AppData", "Roaming", "Code", "User", "snippets"),
		},
		"darwin": {
			goos: "darwin",
			want: filepath.Join(home, "Library", "Application Support", "Code", "User", "snippets"),
		},
		"linux with XDG_CONFIG_HOME": {
			goos: "linux",
			env:  map[string]string{"XDG_CONFIG_HOME": "/xdg"},
			want: filepath.Join("/xdg", "Code", "User", "snippets"),
		},
		"linux default": {
			goos: "linux",
			want: filepath.Join(home, ".config", "Code", "User", "snippets"),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := snippetsDir(tt.goos, env(tt.env)); got != tt.want {
				t.Errorf("snippetsDir(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("SNIPCONV_TEST_DIR", "/opt/snips")
	home := HomeDir()

	tests := map[string]struct {
		path    string
		baseDir string
		want    string
	}{
		"empty":              {path: "", want: ""},
		"tilde":              {path: "~", want: home},
		"tilde slash":        {path: "~/snips/a.json", want: filepath.Join(home, "snips", "a.json")},
		"dollar var":         {path: "$SNIPCONV_TEST_DIR/a.json", want: "/opt/snips/a.json"},
		"braced var":         {path: "${SNIPCONV_TEST_DIR}/a.json", want: "/opt/snips/a.json"},
		"percent var":        {path: "%SNIPCONV_TEST_DIR%/a.json", want: "/opt/snips/a.json"},
		"unknown percent":    {path: "/x/%SNIPCONV_NOPE_X%/a", want: "/x/%SNIPCONV_NOPE_X%/a"},
		"relative with base": {path: "out/a.json", baseDir: "/work", want: "/work/out/a.json"},
		"relative no base":   {path: "out/../a.json", want: "a.json"},
		"absolute ignores base": {
			path:    "/abs/a.json",
			baseDir: "/work",
			want:    "/abs/a.json",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := ExpandPath(tt.path, tt.baseDir)
			if got != filepath.FromSlash(tt.want) && got != tt.want {
				t.Errorf("ExpandPath(%q, %q) = %q, want %q", tt.path, tt.baseDir, got, tt.want)
			}
		})
	}
}
