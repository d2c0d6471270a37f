package models

import (
	"fmt"

	"gorm.io/gorm/schema"
)

// NamingStrategy is GORM's default naming with deterministic foreign key names.
// A constraint name depends only on the owning table, the local column and the
// referenced table: fk_<table>_<column>_<referred table>.
type NamingStrategy struct {
	schema.NamingStrategy
}

// RelationshipFKName implements schema.Namer
func (ns NamingStrategy) RelationshipFKName(rel schema.Relationship) string {
	for _, ref := range rel.References {
		if ref.PrimaryKey == nil || ref.ForeignKey == nil {
			continue
		}

		owner, referred := rel.Schema, rel.FieldSchema
		if ref.OwnPrimaryKey {
			owner, referred = rel.FieldSchema, rel.Schema
		}
		if rel.JoinTable != nil && ref.ForeignKey.Schema != nil {
			owner = ref.ForeignKey.Schema
		}
		if ref.PrimaryKey.Schema != nil {
			referred = ref.PrimaryKey.Schema
		}
		if owner == nil || referred == nil {
			break
		}

		return ForeignKeyName(owner.Table, ref.ForeignKey.DBName, referred.Table)
	}

	return ns.NamingStrategy.RelationshipFKName(rel)
}

// ForeignKeyName formats a foreign key constraint name
func ForeignKeyName(table, column, referredTable string) string {
	return fmt.Sprintf("fk_%s_%s_%s", table, column, referredTable)
}
