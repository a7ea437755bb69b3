package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const presetFile = "last_preset.json"

// LastPreset is the preset picked most recently in the timer screen.
type LastPreset struct {
	Name     string    `json:"name"`
	ChosenAt time.Time `json:"chosen_at"`
}

func presetPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "toastimer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, presetFile), nil
}

func SaveLastPreset(name string) error {
	path, err := presetPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(LastPreset{Name: name, ChosenAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadLastPreset returns the remembered preset name, or "" when none was saved.
func LoadLastPreset() (string, error) {
	path, err := presetPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var last LastPreset
	if err := json.Unmarshal(data, &last); err != nil {
		return "", err
	}
	return last.Name, nil
}
