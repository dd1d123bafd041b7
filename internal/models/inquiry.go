// Package models defines GORM data models for Maderas.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Inquiry is one contact-form submission as handed to a submission
// gateway. Phone and WoodType are optional.
type Inquiry struct {
	gorm.Model

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"index;not null" json:"email"`
	Phone    string `json:"phone"`
	WoodType string `json:"wood_type"`
	Message  string `gorm:"type:text;not null" json:"message"`

	// Source tags where the inquiry came from, e.g. "web".
	Source string `gorm:"index;default:'web'" json:"source"`
}

// InquiryView is the DTO the admin API returns.
type InquiryView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	WoodType  string    `json:"wood_type,omitempty"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// View converts the row to its API representation.
func (i *Inquiry) View() InquiryView {
	return InquiryView{
		ID:        i.ID,
		Name:      i.Name,
		Email:     i.Email,
		Phone:     i.Phone,
		WoodType:  i.WoodType,
		Message:   i.Message,
		Source:    i.Source,
		CreatedAt: i.CreatedAt,
	}
}
