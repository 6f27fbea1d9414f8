package db

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	embeddedmigrations "github.com/terraincognita07/wellness/migrations"
	"gorm.io/gorm"
)

type schemaScript struct {
	Version string
	SQL     string
}

// bootstrapSchema runs the embedded scripts in file order. Versions are
// recorded so a second handle opened on the same in-memory name does not
// run them again.
func bootstrapSchema(database *gorm.DB) error {
	scripts, err := loadSchemaScripts(embeddedmigrations.Files)
	if err != nil {
		return err
	}

	return database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`CREATE TABLE IF NOT EXISTS schema_versions (version TEXT PRIMARY KEY)`).Error; err != nil {
			return fmt.Errorf("create schema_versions table: %w", err)
		}

		applied := make([]string, 0)
		if err := tx.Table("schema_versions").Pluck("version", &applied).Error; err != nil {
			return fmt.Errorf("load schema versions: %w", err)
		}
		done := make(map[string]bool, len(applied))
		for _, version := range applied {
			done[version] = true
		}

		for _, script := range scripts {
			if done[script.Version] {
				continue
			}
			for _, statement := range splitSQLStatements(script.SQL) {
				if err := tx.Exec(statement).Error; err != nil {
					return fmt.Errorf("run schema %s: %w", script.Version, err)
				}
			}
			if err := tx.Exec(`INSERT INTO schema_versions(version) VALUES (?)`, script.Version).Error; err != nil {
				return fmt.Errorf("record schema %s: %w", script.Version, err)
			}
		}
		return nil
	})
}

func loadSchemaScripts(files fs.FS) ([]schemaScript, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list schema scripts: %w", err)
	}
	sort.Strings(names)

	scripts := make([]schemaScript, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read schema script %s: %w", name, err)
		}
		if len(splitSQLStatements(string(raw))) == 0 {
			return nil, fmt.Errorf("schema script %s has no statements", name)
		}
		scripts = append(scripts, schemaScript{
			Version: strings.TrimSuffix(name, ".sql"),
			SQL:     string(raw),
		})
	}
	return scripts, nil
}

func splitSQLStatements(sqlText string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
