package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setConfigFile sets the package-level configFile variable for the duration of the test.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// setupTestConfig creates a sqlite dictionary with a few words and a config
// file pointing at it. planURL is left out when empty.
func setupTestConfig(t *testing.T, planURL string) (cfgPath string, reportDir string) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "dictionary.db")
	reportDir = filepath.Join(tmpDir, "reports")

	db, err := sqlx.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	db.MustExec(`CREATE TABLE words (
		word TEXT PRIMARY KEY,
		definition TEXT NOT NULL,
		related_words TEXT,
		sentence TEXT
	)`)
	db.MustExec(`INSERT INTO words (word, definition, related_words, sentence) VALUES
		('cat', '英文释义：a small animal 中文释义：n. 猫（宠物）；v. 偷偷地走 词性：n.', '["cats"]', 'The cat sleeps.'),
		('dog', '中文释义：狗，犬', NULL, NULL),
		('mist', '英文释义：thin fog', NULL, NULL)`)

	content := fmt.Sprintf(`dictionary:
  driver: sqlite3
  path: %s
  table: words
  connect_attempts: 1
outputs:
  report_directory: %s
`, dbPath, reportDir)
	if planURL != "" {
		content += fmt.Sprintf("plan_api:\n  base_url: %s\n  timeout_seconds: 5\n", planURL)
	}
	cfgPath = filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath, reportDir
}

// setupMissingTableConfig is setupTestConfig pointing at a table that does
// not exist, so the dictionary fails to load.
func setupMissingTableConfig(t *testing.T) string {
	t.Helper()
	cfgPath, _ := setupTestConfig(t, "")
	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = []byte(strings.Replace(string(content), "table: words", "table: missing_words", 1))
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}
