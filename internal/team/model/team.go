// Package model provides domain models and DTOs for team module.
package model

import "time"

// Team is a pair of players representing a company.
type Team struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;size:100;not null;uniqueIndex" json:"name"`
	Company   string    `gorm:"column:company;size:100;not null" json:"company"`
	Player1ID uint      `gorm:"column:player1_id;not null" json:"player1_id"`
	Player2ID uint      `gorm:"column:player2_id;not null" json:"player2_id"`
	PoolID    *uint     `gorm:"column:pool_id" json:"pool_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}
