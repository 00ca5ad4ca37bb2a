package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         string `gorm:"size:20;default:'user'"` // user | admin | super_admin
	Plan         string `gorm:"size:20;default:'free'"` // free | pro | business
	IsActive     bool   `gorm:"default:true"`

	Surveys []Survey `gorm:"foreignKey:OwnerID"`
}
