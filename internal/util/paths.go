package util

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// DefaultTargetFile is the snippet file name used when no target is configured.
const DefaultTargetFile = "converted.code-snippets"

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// SnipconvConfigPath returns the snipconv configuration directory.
// SNIPCONV_HOME overrides the default of ~/.snipconv.
func SnipconvConfigPath() string {
	if dir := os.Getenv("SNIPCONV_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(HomeDir(), ".snipconv")
}

// SnipconvBackupsPath returns the default backups directory
func SnipconvBackupsPath() string {
	return filepath.Join(SnipconvConfigPath(), "backups")
}

// DefaultSnippetsDir returns the VS Code user snippets directory for the current OS
func DefaultSnippetsDir() string {
	return snippetsDir(runtime.GOOS, os.Getenv)
}

// DefaultTargetPath returns the default target snippet file
func DefaultTargetPath() string {
	return filepath.Join(DefaultSnippetsDir(), DefaultTargetFile)
}

func snippetsDir(goos string, getenv func(string) string) string {
	switch goos {
	case "windows":
		appData := getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(HomeDir(), "AppData", "Roaming")
		}
		return filepath.Join(appData, "Code", "User", "snippets")
	case "darwin":
		return filepath.Join(HomeDir(), "Library", "Application Support", "Code", "User", "snippets")
	default:
		configHome := getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			configHome = filepath.Join(HomeDir(), ".config")
		}
		return filepath.Join(configHome, "Code", "User", "snippets")
	}
}

var percentVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// ExpandPath expands ~, $VAR, ${VAR} and %VAR% in path and resolves relative
// paths against baseDir. An empty baseDir leaves relative paths unchanged.
// Unknown %VAR% references are kept verbatim.
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return ""
	}

	path = percentVar.ReplaceAllStringFunc(path, func(m string) string {
		if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
			return v
		}
		return m
	})
	path = os.ExpandEnv(path)

	if path == "~" {
		path = HomeDir()
	} else if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		path = filepath.Join(HomeDir(), path[2:])
	}

	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	return filepath.Clean(path)
}
