package cmd

import (
	"errors"
	"fmt"

	"threadfeed/app"
	"threadfeed/db"
	"threadfeed/term"
)

const (
	optSignUp     = "Sign up"
	optLogIn      = "Log in"
	optLogOut     = "Log out"
	optNewPost    = "New post"
	optRandomPost = "Random post"
	optFeed       = "Show feed"
	optComment    = "Comment on a random post"
	optQuit       = "Quit"
)

var menuOptions = []string{
	optSignUp,
	optLogIn,
	optLogOut,
	optNewPost,
	optRandomPost,
	optFeed,
	optComment,
	optQuit,
}

// runSession is the single-caller menu loop. All persistence goes through the
// facade; this layer only prompts and renders.
func runSession(a *app.App) {
	for {
		choice, err := term.SelectFromList(menuMessage(a), menuOptions)
		if err != nil {
			term.OutputErrorAndExit("Error reading menu choice: %v", err)
		}

		switch choice {
		case optSignUp:
			signUp(a)
		case optLogIn:
			logIn(a)
		case optLogOut:
			logOut(a)
		case optNewPost:
			newPost(a)
		case optRandomPost:
			randomPost(a)
		case optFeed:
			showFeed(a)
		case optComment:
			commentOnRandomPost(a)
		case optQuit:
			return
		}
	}
}

func menuMessage(a *app.App) string {
	if user := a.CurrentUser(); user != nil {
		return fmt.Sprintf("What do you want to do? (logged in as %s)", user.Username)
	}
	return "What do you want to do?"
}

func signUp(a *app.App) {
	defer term.PauseForKey()

	username, err := term.GetRequiredUserStringInput("Username:")
	if err != nil {
		term.OutputErrorAndExit("Error reading username: %v", err)
	}

	password, err := term.GetUserPasswordInput("Password:")
	if err != nil {
		term.OutputErrorAndExit("Error reading password: %v", err)
	}

	if _, err := a.SignUp(username, password); err != nil {
		var dupErr *db.DuplicateUserErr
		if errors.As(err, &dupErr) {
			term.OutputWarning("User %s already exists", dupErr.Username)
		} else {
			term.OutputSimpleError("Error creating user: %v", err)
		}
		return
	}

	term.OutputSuccess("User %s created", username)
}

func logIn(a *app.App) {
	defer term.PauseForKey()

	username, err := term.GetRequiredUserStringInput("Username:")
	if err != nil {
		term.OutputErrorAndExit("Error reading username: %v", err)
	}

	password, err := term.GetUserPasswordInput("Password:")
	if err != nil {
		term.OutputErrorAndExit("Error reading password: %v", err)
	}

	if _, err := a.LogIn(username, password); err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			term.OutputWarning("Invalid username or password")
		} else {
			term.OutputSimpleError("Error logging in: %v", err)
		}
		return
	}

	term.OutputSuccess("Logged in as %s", username)
}

func logOut(a *app.App) {
	defer term.PauseForKey()

	if err := a.LogOut(); err != nil {
		term.OutputWarning("You are not logged in")
		return
	}

	term.OutputSuccess("Logged out")
}

func newPost(a *app.App) {
	defer term.PauseForKey()

	if a.CurrentUser() == nil {
		term.OutputWarning("You must log in first")
		return
	}

	text, err := term.GetRequiredUserStringInput("Post text:")
	if err != nil {
		term.OutputErrorAndExit("Error reading post text: %v", err)
	}

	if _, err := a.CreatePost(text); err != nil {
		term.OutputSimpleError("Error creating post: %v", err)
		return
	}

	term.OutputSuccess("Post created")
}

func randomPost(a *app.App) {
	defer term.PauseForKey()

	post, err := a.RandomPost()
	if err != nil {
		term.OutputSimpleError("Error fetching post: %v", err)
		return
	}
	if post == nil {
		term.OutputWarning("There are no posts yet")
		return
	}

	fmt.Println()
	term.RenderPost(post)
}

func showFeed(a *app.App) {
	defer term.PauseForKey()

	posts, err := a.Posts()
	if err != nil {
		term.OutputSimpleError("Error fetching feed: %v", err)
		return
	}
	if len(posts) == 0 {
		term.OutputWarning("There are no posts yet")
		return
	}

	fmt.Println()
	term.RenderFeed(posts)
}

func commentOnRandomPost(a *app.App) {
	defer term.PauseForKey()

	if a.CurrentUser() == nil {
		term.OutputWarning("You must log in first")
		return
	}

	post, err := a.RandomPost()
	if err != nil {
		term.OutputSimpleError("Error fetching post: %v", err)
		return
	}
	if post == nil {
		term.OutputWarning("There are no posts to comment on")
		return
	}

	fmt.Println()
	term.RenderPost(post)
	fmt.Println()

	text, err := term.GetRequiredUserStringInput("Comment:")
	if err != nil {
		term.OutputErrorAndExit("Error reading comment text: %v", err)
	}

	if _, err := a.CommentOnPost(post, text); err != nil {
		var unknownErr *db.UnknownReferenceErr
		if errors.As(err, &unknownErr) {
			term.OutputWarning("That post no longer exists")
		} else {
			term.OutputSimpleError("Error adding comment: %v", err)
		}
		return
	}

	term.OutputSuccess("Comment added")
}
