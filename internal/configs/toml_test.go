package configs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

type tomlFixture struct {
	Name    string `toml:"name"`
	Cipher  string `toml:"cipher"`
	Retries int    `toml:"retries"`
}

func TestSaveAndLoadTOML(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.toml")

	original := tomlFixture{Name: "sealpref", Cipher: "aes-256-gcm", Retries: 3}
	if err := SaveTOML(testFile, original); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	var loaded tomlFixture
	if err := LoadTOML(testFile, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loaded != original {
		t.Errorf("Expected %+v, got %+v", original, loaded)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	var data tomlFixture
	if err := LoadTOML(filepath.Join(t.TempDir(), "nonexistent.toml"), &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestSaveTOMLCreatesDirectory(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "subdir", "test.toml")

	if err := SaveTOML(testFile, tomlFixture{Name: "Test"}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("File was not created: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("Expected permissions 0600, got %o", info.Mode().Perm())
	}
}

func TestSaveTOMLLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.toml")

	for i := 0; i < 3; i++ {
		if err := SaveTOML(testFile, tomlFixture{Retries: i}); err != nil {
			t.Fatalf("SaveTOML failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the config file, found %d entries", len(entries))
	}
}
