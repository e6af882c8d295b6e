package entity

type Professional struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"size:100;not null" json:"name"`
	Bio        string  `gorm:"type:text;not null" json:"bio"`
	Experience int     `gorm:"not null" json:"experience"`
	Rating     float64 `gorm:"not null" json:"rating"`
	Price      float64 `gorm:"not null" json:"price"`
}
