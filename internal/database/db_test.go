package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/vocadrill/internal/config"
)

func TestDataSourceName(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.DictionaryConfig
		dbCfg      config.DatabaseConfig
		wantDriver string
		wantDSN    string
		wantErr    bool
	}{
		{
			name:       "sqlite opens the file read-only",
			cfg:        config.DictionaryConfig{Driver: config.DriverSQLite, Path: "assets/dictionary.db"},
			wantDriver: "sqlite3",
			wantDSN:    "file:assets/dictionary.db?mode=ro",
		},
		{
			name: "mysql builds a DSN from the database block",
			cfg:  config.DictionaryConfig{Driver: config.DriverMySQL},
			dbCfg: config.DatabaseConfig{
				Host:     "db.example.com",
				Port:     3307,
				Database: "vocadrill",
				Username: "admin",
				Password: "secret",
			},
			wantDriver: "mysql",
			wantDSN:    "admin:secret@tcp(db.example.com:3307)/vocadrill?parseTime=true",
		},
		{
			name:    "sqlite without a path",
			cfg:     config.DictionaryConfig{Driver: config.DriverSQLite},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     config.DictionaryConfig{Driver: "postgres"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver, dsn, err := DataSourceName(tt.cfg, tt.dbCfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, driver)
			assert.Equal(t, tt.wantDSN, dsn)
		})
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name      string
		attempts  uint
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name:     "succeeds on first attempt",
			attempts: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing()
			},
		},
		{
			name:     "succeeds after a retry",
			attempts: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
				mock.ExpectPing()
			},
		},
		{
			name:     "gives up after all attempts",
			attempts: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
				mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			err = ping(context.Background(), sqlx.NewDb(db, "sqlmock"), tt.attempts, 0)
			if tt.wantErr {
				assert.ErrorContains(t, err, "connection refused")
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
