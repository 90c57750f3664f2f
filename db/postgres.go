package db

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/jmoiron/sqlx"
)

// PostgresDatabase implements Database over the relational schema in
// migrations/. Post and comment ids come from the storage engine's sequences,
// never from this code. Every mutation is committed before the call returns.
type PostgresDatabase struct {
	conn *sqlx.DB
}

func NewPostgresDatabase(conn *sqlx.DB) *PostgresDatabase {
	return &PostgresDatabase{conn: conn}
}

// OpenPostgresDatabase connects using the environment config and applies
// migrations. The caller owns the connection and must Close it at exit.
func OpenPostgresDatabase() (*PostgresDatabase, error) {
	conn, err := Connect()
	if err != nil {
		return nil, err
	}

	if err := MigrationsUp(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return NewPostgresDatabase(conn), nil
}

func (d *PostgresDatabase) Close() error {
	return d.conn.Close()
}

func (d *PostgresDatabase) CreateUser(username, password string) (*User, error) {
	if username == "" {
		return nil, errors.New("username must not be empty")
	}

	user := User{Username: username, Password: password}

	err := d.conn.QueryRow("INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id", username, password).Scan(&user.Id)

	if err != nil {
		if IsNonUniqueErr(err) {
			return nil, &DuplicateUserErr{Username: username}
		}

		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return &user, nil
}

func (d *PostgresDatabase) GetUser(username string) (*User, error) {
	var user User
	err := d.conn.Get(&user, "SELECT * FROM users WHERE username = $1", username)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func (d *PostgresDatabase) CreatePost(user *User, text string) (*Post, error) {
	if text == "" {
		return nil, errors.New("post text must not be empty")
	}

	post := Post{Author: user, Text: text}

	err := d.conn.QueryRow("INSERT INTO posts (username, text) VALUES ($1, $2) RETURNING id", user.Username, text).Scan(&post.Id)

	if err != nil {
		if isFkViolationErr(err) {
			return nil, &UnknownReferenceErr{Kind: "user", Ref: user.Username}
		}

		return nil, fmt.Errorf("error creating post: %v", err)
	}

	return &post, nil
}

type postRow struct {
	Id       int64  `db:"id"`
	Username string `db:"username"`
	Text     string `db:"text"`
}

type commentRow struct {
	Id       int64  `db:"id"`
	Username string `db:"username"`
	Text     string `db:"text"`
}

func (d *PostgresDatabase) GetPosts() ([]*Post, error) {
	var rows []postRow
	err := d.conn.Select(&rows, "SELECT id, username, text FROM posts ORDER BY id")

	if err != nil {
		return nil, fmt.Errorf("error listing posts: %v", err)
	}

	// Authors repeat across posts and comments; resolve each username once.
	authors := map[string]*User{}

	posts := make([]*Post, 0, len(rows))
	for _, row := range rows {
		author, err := d.resolveAuthor(authors, row.Username)
		if err != nil {
			return nil, err
		}

		post := &Post{Id: row.Id, Author: author, Text: row.Text}

		comments, err := d.getCommentsForPost(post, authors)
		if err != nil {
			return nil, err
		}
		post.Comments = comments

		posts = append(posts, post)
	}

	return posts, nil
}

func (d *PostgresDatabase) getCommentsForPost(post *Post, authors map[string]*User) ([]*Comment, error) {
	var rows []commentRow
	err := d.conn.Select(&rows, "SELECT id, username, text FROM comments WHERE post_id = $1 ORDER BY id", post.Id)

	if err != nil {
		return nil, fmt.Errorf("error listing comments for post %d: %v", post.Id, err)
	}

	comments := make([]*Comment, 0, len(rows))
	for _, row := range rows {
		author, err := d.resolveAuthor(authors, row.Username)
		if err != nil {
			return nil, err
		}

		comments = append(comments, &Comment{
			Id:     row.Id,
			PostId: post.Id,
			Author: author,
			Text:   row.Text,
		})
	}

	return comments, nil
}

func (d *PostgresDatabase) resolveAuthor(authors map[string]*User, username string) (*User, error) {
	if author, ok := authors[username]; ok {
		return author, nil
	}

	author, err := d.GetUser(username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		// Foreign keys should make this unreachable.
		return nil, fmt.Errorf("error resolving author: no user row for %s", username)
	}

	authors[username] = author
	return author, nil
}

// GetRandomPost materializes the full collection and picks in Go rather than
// using ORDER BY random(), so selection semantics match the in-memory backend
// exactly.
func (d *PostgresDatabase) GetRandomPost() (*Post, error) {
	posts, err := d.GetPosts()
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, nil
	}

	return posts[rand.Intn(len(posts))], nil
}

func (d *PostgresDatabase) AddComment(post *Post, user *User, text string) (*Comment, error) {
	if text == "" {
		return nil, errors.New("comment text must not be empty")
	}

	comment := Comment{PostId: post.Id, Author: user, Text: text}

	err := d.withTx("add comment", func(tx *sqlx.Tx) error {
		// The explicit existence check gives a stale post reference a
		// distinct outcome before the insert is attempted.
		var exists bool
		if err := tx.Get(&exists, "SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)", post.Id); err != nil {
			return fmt.Errorf("error checking post: %v", err)
		}
		if !exists {
			return &UnknownReferenceErr{Kind: "post", Ref: strconv.FormatInt(post.Id, 10)}
		}

		return tx.QueryRow("INSERT INTO comments (post_id, username, text) VALUES ($1, $2, $3) RETURNING id", post.Id, user.Username, text).Scan(&comment.Id)
	})

	if err != nil {
		var unknownErr *UnknownReferenceErr
		if errors.As(err, &unknownErr) {
			return nil, unknownErr
		}
		if isFkViolationErr(err) {
			return nil, &UnknownReferenceErr{Kind: "user", Ref: user.Username}
		}

		return nil, fmt.Errorf("error adding comment: %v", err)
	}

	return &comment, nil
}
