package models

import "time"

type Book struct {
	ID           uint      `gorm:"primaryKey"      json:"id"`
	Title        string    `gorm:"not null;index"  json:"title"`
	Author       string    `gorm:"not null"        json:"author"`
	Description  string    `json:"description"`
	Price        float64   `gorm:"not null"        json:"price"`
	Stock        uint      `json:"stock"`
	ImageURL     string    `json:"image_url"`
	CategorySlug string    `gorm:"index"           json:"category_slug"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}
