package database

import "gorm.io/gorm"

// ForHospital restricts a query to rows owned by one hospital.
// Every tenant-owned table carries a hospital_id column.
func ForHospital(hospitalID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("hospital_id = ?", hospitalID)
	}
}
