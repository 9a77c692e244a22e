package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Identity{},
		&UserProfile{},
		&City{},
		&Speaker{},
		&Venue{},
		&Event{},
		&OrderType{},
		&EventOrder{},
		&ExpenseRequest{},
	)
}
