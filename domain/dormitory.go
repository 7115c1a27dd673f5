package domain

// CREATE TABLE dormitories (
//     id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//     dormitory_name VARCHAR(255),
//     domain         VARCHAR(255),
//     latitude       DOUBLE NULL,
//     longitude      DOUBLE NULL,
//     address        TEXT NULL,
//     is_active      TINYINT(1),
//     university_id  BIGINT UNSIGNED NULL
// );

type Dormitory struct {
	ID            uint64   `gorm:"column:id;primaryKey" json:"id"`
	DormitoryName string   `gorm:"column:dormitory_name" json:"dormitory_name"`
	Domain        string   `gorm:"column:domain" json:"domain"`
	Latitude      *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude     *float64 `gorm:"column:longitude" json:"longitude"`
	Address       string   `gorm:"column:address" json:"address"`
	IsActive      bool     `gorm:"column:is_active" json:"is_active"`
	UniversityID  *uint64  `gorm:"column:university_id" json:"university_id"`
}

func (Dormitory) TableName() string {
	return "dormitories"
}
