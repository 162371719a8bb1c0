package entity

import (
	"time"
)

// Gender values accepted at registration.
type Gender string

const (
	GenderMale           Gender = "Male"
	GenderFemale         Gender = "Female"
	GenderPreferNotToSay Gender = "Prefer Not to Say"
)

// User is the aggregate root for the patient identity domain.
// Passwords are stored as bcrypt hashes in Password field.
// Email and phone number are globally unique; email is stored lower-cased.
type User struct {
	ID          string
	FullName    string
	PhoneNumber string
	DateOfBirth time.Time
	Gender      Gender
	Email       string
	Password    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
