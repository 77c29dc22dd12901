package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email                    string `gorm:"uniqueIndex;not null"`
	Password                 string `gorm:"not null"`
	FullName                 string
	DietType                 string
	DietaryGoals             string // comma-joined
	Allergens                string // comma-joined
	SustainabilityPriorities string // comma-joined
	Disabled                 bool
}
