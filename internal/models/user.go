package models

// User is a named account that owns gemstones and writes reviews
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"size:55;uniqueIndex;not null" json:"username"`

	// Gemstones are owned exclusively; deleting the user deletes them
	Gemstones []Gemstone `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"gemstones,omitempty"`
	Reviews   []Review   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"reviews,omitempty"`

	// Gems is the collection of gemstones the user has reviewed, regardless of owner
	Gems []Gemstone `gorm:"many2many:user_gemstones;joinForeignKey:users_id;joinReferences:gemstones_id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"gems,omitempty"`
}

// UserGemstone is a row of the user_gemstones association table.
// The table itself is created by the many2many declaration on User.Gems.
type UserGemstone struct {
	UsersID     uint `gorm:"column:users_id;primaryKey" json:"usersId"`
	GemstonesID uint `gorm:"column:gemstones_id;primaryKey" json:"gemstonesId"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for UserGemstone
func (UserGemstone) TableName() string {
	return UserGemstonesTable
}

// UserGemstonesTable is the association table between users and gemstones
const UserGemstonesTable = "user_gemstones"
