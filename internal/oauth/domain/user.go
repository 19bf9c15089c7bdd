package domain

import "time"

// User is the course-review profile row disclosed through the userinfo
// endpoint. The row is owned by the host application; this subsystem only
// reads it.
type User struct {
	ID             string
	Username       string
	DisplayName    string
	Email          string
	GraduationYear int
	Major          string
	Bio            string
	AvatarURL      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
