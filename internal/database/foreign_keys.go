package database

import (
	"fmt"

	"github.com/localnerve/gemstonesdb/internal/models"
	"gorm.io/gorm"
)

const sqlServerDialect = "sqlserver"

// foreignKey is a constraint created outside of the GORM struct tags
type foreignKey struct {
	Table    string
	Column   string
	Referred string
	Cascade  bool
}

func (fk foreignKey) Name() string {
	return models.ForeignKeyName(fk.Table, fk.Column, fk.Referred)
}

func (fk foreignKey) SQL() string {
	action := "NO ACTION"
	if fk.Cascade {
		action = "CASCADE"
	}
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (id) ON DELETE %s ON UPDATE %s",
		fk.Table, fk.Name(), fk.Column, fk.Referred, action, action)
}

// sqlServerForeignKeys mirrors the model tags, except that SQL Server refuses a
// second cascade path from users. reviews.user_id and user_gemstones.users_id
// are NO ACTION there, and services.DeleteUser clears those rows first.
var sqlServerForeignKeys = []foreignKey{
	{Table: "gemstones", Column: "user_id", Referred: "users", Cascade: true},
	{Table: "reviews", Column: "gemstone_id", Referred: "gemstones", Cascade: true},
	{Table: "reviews", Column: "user_id", Referred: "users"},
	{Table: models.UserGemstonesTable, Column: "gemstones_id", Referred: "gemstones", Cascade: true},
	{Table: models.UserGemstonesTable, Column: "users_id", Referred: "users"},
}

func addForeignKeys(db *gorm.DB, keys []foreignKey) error {
	for _, fk := range keys {
		if db.Migrator().HasConstraint(fk.Table, fk.Name()) {
			continue
		}
		if err := db.Exec(fk.SQL()).Error; err != nil {
			return fmt.Errorf("add foreign key %s: %w", fk.Name(), err)
		}
	}
	return nil
}
