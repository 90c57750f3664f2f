package db

import (
	"errors"
	"math/rand"
	"strconv"
	"sync"
)

// InMemoryDatabase keeps everything in process-local collections. Nothing
// survives process exit. The mutex keeps duplicate-check-then-insert and
// size+1 id assignment race-free if more than one goroutine ever drives it.
type InMemoryDatabase struct {
	mu    sync.RWMutex
	users map[string]*User
	posts []*Post
}

func NewInMemoryDatabase() *InMemoryDatabase {
	return &InMemoryDatabase{
		users: make(map[string]*User),
	}
}

func (d *InMemoryDatabase) CreateUser(username, password string) (*User, error) {
	if username == "" {
		return nil, errors.New("username must not be empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[username]; ok {
		return nil, &DuplicateUserErr{Username: username}
	}

	user := &User{Username: username, Password: password}
	d.users[username] = user

	return user, nil
}

func (d *InMemoryDatabase) GetUser(username string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.users[username], nil
}

func (d *InMemoryDatabase) CreatePost(user *User, text string) (*Post, error) {
	if text == "" {
		return nil, errors.New("post text must not be empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[user.Username]; !ok {
		return nil, &UnknownReferenceErr{Kind: "user", Ref: user.Username}
	}

	// Ids stay gap-free and strictly increasing because posts are never
	// removed.
	post := &Post{
		Id:     int64(len(d.posts) + 1),
		Author: user,
		Text:   text,
	}
	d.posts = append(d.posts, post)

	return post, nil
}

func (d *InMemoryDatabase) GetPosts() ([]*Post, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	posts := make([]*Post, len(d.posts))
	copy(posts, d.posts)

	return posts, nil
}

func (d *InMemoryDatabase) GetRandomPost() (*Post, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if len(d.posts) == 0 {
		return nil, nil
	}

	return d.posts[rand.Intn(len(d.posts))], nil
}

func (d *InMemoryDatabase) AddComment(post *Post, user *User, text string) (*Comment, error) {
	if text == "" {
		return nil, errors.New("comment text must not be empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[user.Username]; !ok {
		return nil, &UnknownReferenceErr{Kind: "user", Ref: user.Username}
	}

	// Resolve against our own collection rather than trusting the caller's
	// reference, so a stale post from another backend can't slip through.
	var target *Post
	for _, p := range d.posts {
		if p.Id == post.Id {
			target = p
			break
		}
	}
	if target == nil {
		return nil, &UnknownReferenceErr{Kind: "post", Ref: strconv.FormatInt(post.Id, 10)}
	}

	// In-memory comments have no independent identity; Id stays 0.
	comment := &Comment{
		PostId: target.Id,
		Author: user,
		Text:   text,
	}
	target.Comments = append(target.Comments, comment)

	return comment, nil
}
