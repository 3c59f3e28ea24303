package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Dictionary: DictionaryConfig{
			Driver:          DriverSQLite,
			Path:            filepath.Join("assets", "dictionary.db"),
			Table:           "words",
			ConnectAttempts: 3,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			Database: "vocadrill",
			Username: "user",
		},
		PlanAPI: PlanAPIConfig{
			TimeoutSeconds: 10,
		},
		Session: SessionConfig{
			OnConcurrentStart: ConcurrentStartReject,
			StatusWorkers:     4,
		},
		Outputs: OutputsConfig{
			ReportDirectory: filepath.Join("outputs", "reports"),
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:    "no config file uses defaults",
			wantErr: false,
			want:    defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `dictionary:
  driver: mysql
  table: dictionary_words
  connect_attempts: 5
database:
  host: db.example.com
  port: 3307
plan_api:
  base_url: https://api.example.com
  timeout_seconds: 3
session:
  on_concurrent_start: replace
  status_workers: 2
outputs:
  report_directory: custom/reports
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Dictionary.Driver = DriverMySQL
				cfg.Dictionary.Table = "dictionary_words"
				cfg.Dictionary.ConnectAttempts = 5
				cfg.Database.Host = "db.example.com"
				cfg.Database.Port = 3307
				cfg.PlanAPI.BaseURL = "https://api.example.com"
				cfg.PlanAPI.TimeoutSeconds = 3
				cfg.Session.OnConcurrentStart = ConcurrentStartReplace
				cfg.Session.StatusWorkers = 2
				cfg.Outputs.ReportDirectory = "custom/reports"
				return cfg
			},
		},
		{
			name: "explicit config file path",
			configContent: `dictionary:
  path: explicit/dictionary.db
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Dictionary.Path = "explicit/dictionary.db"
				return cfg
			},
		},
		{
			name: "token and password come from environment variables",
			env: map[string]string{
				"VOCADRILL_API_TOKEN": "secret-token",
				"VOCADRILL_API_URL":   "https://plans.example.com",
				"DB_PASSWORD":         "secret-password",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.PlanAPI.Token = "secret-token"
				cfg.PlanAPI.BaseURL = "https://plans.example.com"
				cfg.Database.Password = "secret-password"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `dictionary:
  driver: sqlite3
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown driver",
			configContent: `dictionary:
  driver: postgres
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"dictionary.driver must be one of: sqlite3, mysql (got \"postgres\")",
			},
		},
		{
			name: "sqlite driver requires a path",
			configContent: `dictionary:
  driver: sqlite3
  path: ""
`,
			wantErr: true,
			wantErrorContains: []string{
				"dictionary.path is required when driver is sqlite3",
			},
		},
		{
			name: "invalid concurrent start policy and base url",
			configContent: `plan_api:
  base_url: not a url
session:
  on_concurrent_start: queue
`,
			wantErr: true,
			wantErrorContains: []string{
				"base_url must be a valid URL",
				"session.on_concurrent_start must be one of: reject, replace (got \"queue\")",
			},
		},
		{
			name: "missing report template",
			configContent: `outputs:
  report_template: does/not/exist.md
`,
			wantErr: true,
			wantErrorContains: []string{
				"outputs.report_template must be an existing and readable file",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "custom.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestConfigLoader_Load_ReportTemplate(t *testing.T) {
	tempDir := t.TempDir()
	templatePath := filepath.Join(tempDir, "report.md.tmpl")
	require.NoError(t, os.WriteFile(templatePath, []byte("# {{ .SessionID }}"), 0644))

	configPath := filepath.Join(tempDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("outputs:\n  report_template: "+templatePath+"\n"), 0644))

	loader, err := NewConfigLoader(configPath)
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, templatePath, got.Outputs.ReportTemplate)
}
