package db

// Database is the storage contract shared by every backend. The application
// facade is written once against this interface; backends must be observably
// interchangeable except for persistence across process restarts.
//
// Lookup operations signal "not found" by returning nil with a nil error.
// Mutating operations either fully succeed or have no visible effect.
type Database interface {
	// CreateUser adds a user. It fails with *DuplicateUserErr if the
	// username is taken, and never overwrites the existing record.
	CreateUser(username, password string) (*User, error)

	// GetUser returns nil, nil when no user has that username.
	GetUser(username string) (*User, error)

	// CreatePost assigns a fresh id and appends to the post collection.
	// The user must already be known to this backend.
	CreatePost(user *User, text string) (*Post, error)

	// GetPosts returns every post in creation order, each fully
	// materialized: author resolved and comments attached.
	GetPosts() ([]*Post, error)

	// GetRandomPost selects uniformly over the current post collection,
	// independently per call. It returns nil, nil when there are no posts.
	GetRandomPost() (*Post, error)

	// AddComment appends a comment to the post's thread. Both the post and
	// the user must be known to this backend.
	AddComment(post *Post, user *User, text string) (*Comment, error)
}
