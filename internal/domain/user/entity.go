package user

import "time"

type Role string

const (
	RoleAdmin     Role = "Admin"     // Maintains the employee directory
	RoleAllocator Role = "Allocator" // Records allocations to trainings and projects
	RoleManager   Role = "Manager"   // Reads bench employees
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAllocator, RoleManager:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
