package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// TokenFile is the on-disk form of a saved session.
type TokenFile struct {
	Token   string    `json:"token"`
	Server  string    `json:"server"`
	Email   string    `json:"email"`
	SavedAt time.Time `json:"saved_at"`
}

// TokenFilePath returns where the session is persisted. DRIVE_TOKEN_FILE
// overrides the default location.
func TokenFilePath() string {
	if p := os.Getenv("DRIVE_TOKEN_FILE"); p != "" {
		return p
	}
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, _ := os.UserHomeDir()
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "CloudDrive", "token.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "clouddrive", "token.json")
}

// SaveToken persists a session to the default location.
func SaveToken(tf *TokenFile) error {
	path := TokenFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// LoadToken reads the persisted session, if any.
func LoadToken() (*TokenFile, error) {
	data, err := os.ReadFile(TokenFilePath())
	if err != nil {
		return nil, err
	}
	var tf TokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	return &tf, nil
}

// DeleteToken removes the persisted session. Missing file is not an error.
func DeleteToken() error {
	err := os.Remove(TokenFilePath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
