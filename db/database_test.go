package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runDatabaseSuite exercises the Database contract. Both backends run it, so
// any behavioral drift between them shows up here.
func runDatabaseSuite(t *testing.T, open func(t *testing.T) Database) {
	t.Run("create and get user", func(t *testing.T) {
		database := open(t)

		created, err := database.CreateUser("alice", "correct123")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "alice", created.Username)

		user, err := database.GetUser("alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "correct123", user.Password)
	})

	t.Run("get absent user", func(t *testing.T) {
		database := open(t)

		user, err := database.GetUser("nobody")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("duplicate user preserves original", func(t *testing.T) {
		database := open(t)

		_, err := database.CreateUser("alice", "first")
		require.NoError(t, err)

		_, err = database.CreateUser("alice", "second")
		var dupErr *DuplicateUserErr
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "alice", dupErr.Username)

		user, err := database.GetUser("alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "first", user.Password)
	})

	t.Run("empty username rejected", func(t *testing.T) {
		database := open(t)

		_, err := database.CreateUser("", "pw")
		assert.Error(t, err)
	})

	t.Run("random post over empty collection", func(t *testing.T) {
		database := open(t)

		post, err := database.GetRandomPost()
		require.NoError(t, err)
		assert.Nil(t, post)
	})

	t.Run("post ids are unique and increasing", func(t *testing.T) {
		database := open(t)
		user := mustCreateUser(t, database, "alice")

		seen := map[int64]bool{}
		var last int64
		for i := 0; i < 3; i++ {
			post, err := database.CreatePost(user, fmt.Sprintf("post %d", i))
			require.NoError(t, err)
			assert.Greater(t, post.Id, last)
			assert.False(t, seen[post.Id], "id %d reused", post.Id)
			seen[post.Id] = true
			last = post.Id
		}

		posts, err := database.GetPosts()
		require.NoError(t, err)
		require.Len(t, posts, 3)
		for i := 1; i < len(posts); i++ {
			assert.Greater(t, posts[i].Id, posts[i-1].Id, "posts out of creation order")
		}
	})

	t.Run("post by unknown user", func(t *testing.T) {
		database := open(t)

		_, err := database.CreatePost(&User{Username: "ghost", Password: "x"}, "boo")
		var unknownErr *UnknownReferenceErr
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "user", unknownErr.Kind)

		posts, err := database.GetPosts()
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("empty post text rejected", func(t *testing.T) {
		database := open(t)
		user := mustCreateUser(t, database, "alice")

		_, err := database.CreatePost(user, "")
		assert.Error(t, err)
	})

	t.Run("comments append in order", func(t *testing.T) {
		database := open(t)
		alice := mustCreateUser(t, database, "alice")
		bob := mustCreateUser(t, database, "bob")

		post, err := database.CreatePost(alice, "hello")
		require.NoError(t, err)

		_, err = database.AddComment(post, bob, "nice")
		require.NoError(t, err)
		_, err = database.AddComment(post, alice, "thanks")
		require.NoError(t, err)

		posts, err := database.GetPosts()
		require.NoError(t, err)
		require.Len(t, posts, 1)
		require.Len(t, posts[0].Comments, 2)

		first := posts[0].Comments[0]
		assert.Equal(t, "nice", first.Text)
		assert.Equal(t, "bob", first.Author.Username)

		last := posts[0].Comments[1]
		assert.Equal(t, "thanks", last.Text)
		assert.Equal(t, "alice", last.Author.Username)
	})

	t.Run("comment on unknown post", func(t *testing.T) {
		database := open(t)
		alice := mustCreateUser(t, database, "alice")

		post, err := database.CreatePost(alice, "hello")
		require.NoError(t, err)

		stale := &Post{Id: post.Id + 100, Author: alice, Text: "gone"}
		_, err = database.AddComment(stale, alice, "anyone?")
		var unknownErr *UnknownReferenceErr
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "post", unknownErr.Kind)

		posts, err := database.GetPosts()
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Empty(t, posts[0].Comments)
	})

	t.Run("empty comment text rejected", func(t *testing.T) {
		database := open(t)
		alice := mustCreateUser(t, database, "alice")

		post, err := database.CreatePost(alice, "hello")
		require.NoError(t, err)

		_, err = database.AddComment(post, alice, "")
		assert.Error(t, err)
	})

	t.Run("random post selection is roughly uniform", func(t *testing.T) {
		database := open(t)
		user := mustCreateUser(t, database, "alice")

		for i := 0; i < 3; i++ {
			_, err := database.CreatePost(user, fmt.Sprintf("post %d", i))
			require.NoError(t, err)
		}

		counts := map[int64]int{}
		for i := 0; i < 1000; i++ {
			post, err := database.GetRandomPost()
			require.NoError(t, err)
			require.NotNil(t, post)
			counts[post.Id]++
		}

		require.Len(t, counts, 3)
		for id, n := range counts {
			// 333 expected; these bounds are far enough out that a
			// uniform selector essentially never trips them
			assert.Greater(t, n, 233, "post %d drawn %d times", id, n)
			assert.Less(t, n, 433, "post %d drawn %d times", id, n)
		}
	})
}

func mustCreateUser(t *testing.T, database Database, username string) *User {
	t.Helper()

	user, err := database.CreateUser(username, username+"-password")
	require.NoError(t, err)

	return user
}
