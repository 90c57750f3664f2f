package app

import (
	"errors"
	"fmt"

	"threadfeed/db"
)

// ErrInvalidCredentials deliberately covers both "no such user" and "wrong
// password" so the message can't be used to probe for usernames.
var ErrInvalidCredentials = errors.New("invalid username or password")

var ErrNotAuthenticated = errors.New("not logged in")

// App mediates between the presentation layer and the storage backend. It
// holds exactly one Database, injected at construction, plus the
// single-session notion of who is currently logged in. It never prints;
// callers render every outcome.
type App struct {
	database    db.Database
	currentUser *db.User
}

func NewApp(database db.Database) *App {
	return &App{database: database}
}

// CurrentUser returns nil when nobody is logged in.
func (a *App) CurrentUser() *db.User {
	return a.currentUser
}

func (a *App) SignUp(username, password string) (*db.User, error) {
	return a.database.CreateUser(username, password)
}

func (a *App) LogIn(username, password string) (*db.User, error) {
	user, err := a.database.GetUser(username)
	if err != nil {
		return nil, fmt.Errorf("error looking up user: %v", err)
	}

	if user == nil || user.Password != password {
		return nil, ErrInvalidCredentials
	}

	a.currentUser = user
	return user, nil
}

func (a *App) LogOut() error {
	if a.currentUser == nil {
		return ErrNotAuthenticated
	}

	a.currentUser = nil
	return nil
}

func (a *App) CreatePost(text string) (*db.Post, error) {
	if a.currentUser == nil {
		return nil, ErrNotAuthenticated
	}

	return a.database.CreatePost(a.currentUser, text)
}

// RandomPost requires no authentication. It returns nil, nil when there are no
// posts yet.
func (a *App) RandomPost() (*db.Post, error) {
	return a.database.GetRandomPost()
}

// Posts returns the full feed in creation order. No authentication required.
func (a *App) Posts() ([]*db.Post, error) {
	return a.database.GetPosts()
}

func (a *App) CommentOnPost(post *db.Post, text string) (*db.Comment, error) {
	if a.currentUser == nil {
		return nil, ErrNotAuthenticated
	}

	return a.database.AddComment(post, a.currentUser, text)
}
