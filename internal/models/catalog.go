package models

import "time"

type CatalogKind string

const (
	CatalogKindSkill              CatalogKind = "skill"
	CatalogKindEducationPhD       CatalogKind = "education_phd"
	CatalogKindEducationMasters   CatalogKind = "education_masters"
	CatalogKindEducationBachelors CatalogKind = "education_bachelors"
	CatalogKindEducationHigh      CatalogKind = "education_high_school"
	CatalogKindSurname            CatalogKind = "surname"
	CatalogKindGenericLocalPart   CatalogKind = "generic_local_part"
)

// CatalogEntry is one keyword row of the externally maintained catalog.
type CatalogEntry struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Kind      CatalogKind `gorm:"type:text;not null;index:idx_catalog_kind_keyword,unique" json:"kind"`
	Keyword   string      `gorm:"type:text;not null;index:idx_catalog_kind_keyword,unique" json:"keyword"`
	CreatedAt time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (CatalogEntry) TableName() string {
	return "skill_catalog_entries"
}
