package model

// Report mirrors the legacy reports table. created_at is stored as ISO-8601
// text; issued_by was added later and is nullable, AutoMigrate adds it to
// older databases without touching existing rows.
type Report struct {
	ID          uint64  `gorm:"column:id;primaryKey;autoIncrement"`
	FullName    string  `gorm:"column:full_name;type:text;not null"`
	Static      string  `gorm:"column:static;type:text;not null"`
	Operation   string  `gorm:"column:operation;type:text;not null"`
	Description string  `gorm:"column:description;type:text;not null"`
	CreatedAt   string  `gorm:"column:created_at;type:text;not null"`
	IssuedBy    *string `gorm:"column:issued_by;type:text"`
}

func (Report) TableName() string {
	return "reports"
}
