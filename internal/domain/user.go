package domain

import "time"

type User struct {
	Id        UserId
	Username  Username
	PassHash  string
	CreatedAt time.Time
}

type Credentials struct {
	Username Username
	Password Password
}

// Profile is a user page: the user with the threads they started.
type Profile struct {
	User         User
	Threads      []*Thread
	RepliesCount int
}
