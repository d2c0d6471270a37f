package models

// Gemstone is a single gem owned by exactly one user
type Gemstone struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	GemstoneName string `gorm:"size:100;not null" json:"gemstoneName"`
	Color        string `gorm:"size:55;not null" json:"color"`
	UserID       uint   `gorm:"not null;index" json:"userId"`

	Reviews []Review `gorm:"foreignKey:GemstoneID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"reviews,omitempty"`
}

// Review is free-text feedback by a user about a gemstone
type Review struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Content    *string `gorm:"type:text" json:"content"`
	UserID     uint    `gorm:"not null;index" json:"userId"`
	GemstoneID uint    `gorm:"not null;index" json:"gemstoneId"`
}

// TableName overrides the table name for Gemstone
func (Gemstone) TableName() string {
	return "gemstones"
}

// TableName overrides the table name for Review
func (Review) TableName() string {
	return "reviews"
}
