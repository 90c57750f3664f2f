package db

// Entities are plain records. They carry no reference back to the backend that
// owns them; operations always take the backend explicitly.

type User struct {
	Id       int64  `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
}

type Post struct {
	Id       int64
	Author   *User
	Text     string
	Comments []*Comment
}

type Comment struct {
	// Id is 0 for comments the in-memory backend creates. The Postgres
	// backend always assigns one.
	Id     int64
	PostId int64
	Author *User
	Text   string
}
