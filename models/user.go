package models

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// User represents an account that can authenticate against the hosted store.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
}

// OwnerID returns the opaque identifier used to scope hosted rows to this user.
func (u User) OwnerID() string {
	return UserOwnerPrefix + strconv.FormatUint(uint64(u.ID), 10)
}

// UserOwnerPrefix marks owner ids that belong to database users.
const UserOwnerPrefix = "user:"

// ParseUserOwnerID extracts the numeric user id from an owner id produced by OwnerID.
func ParseUserOwnerID(owner string) (uint, bool) {
	if !strings.HasPrefix(owner, UserOwnerPrefix) {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(owner, UserOwnerPrefix), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
