package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const appName = "jadoo"

// GetConfigDir is ~/.config/jadoo unless JADOO_CONFIG_DIR says otherwise.
func GetConfigDir() string {
	if dir := os.Getenv("JADOO_CONFIG_DIR"); dir != "" {
		return ExpandPath(dir)
	}
	return filepath.Join(GetHomeDir(), ".config", appName)
}

// GetDefaultDataDir is where the store and logs live when settings.toml
// names nothing else.
// Linux/Mac: ~/.local/share/jadoo
// Windows: %LOCALAPPDATA%\jadoo
func GetDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, appName)
		}
		return filepath.Join(GetHomeDir(), "AppData", "Local", appName)
	}
	return filepath.Join(GetHomeDir(), ".local", "share", appName)
}

func GetSettingsFilePath() string {
	return filepath.Join(GetConfigDir(), "settings.toml")
}

// GetStorePath returns the path of the local key-value store inside dataDir.
func GetStorePath(dataDir string) string {
	return filepath.Join(dataDir, appName+".db")
}

// GetHomeDir falls back to the filesystem root when no home is known.
func GetHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		if runtime.GOOS == "windows" {
			return `C:\`
		}
		return "/"
	}
	return home
}

// ExpandPath expands a leading ~/ and environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		path = filepath.Join(GetHomeDir(), rest)
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// EnsureDir creates path with user-only access.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0700)
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDataDirPermissions creates dataDir if needed and forces 0700; the
// store and debug log hold conversation text.
func EnsureDataDirPermissions(dataDir string) error {
	info, err := os.Stat(dataDir)
	if os.IsNotExist(err) {
		return EnsureDir(dataDir)
	}
	if err != nil {
		return err
	}
	if info.Mode().Perm() != 0700 {
		return os.Chmod(dataDir, 0700)
	}
	return nil
}
