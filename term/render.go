package term

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"threadfeed/db"
)

// RenderPost draws a post as a speech box with its comment thread indented
// underneath, newest last.
func RenderPost(post *db.Post) {
	postColor := color.New(ColorHiYellow, color.Bold)
	for _, line := range boxLines(post.Author.Username, post.Text) {
		postColor.Println(line)
	}

	commentColor := color.New(ColorHiCyan)
	for _, comment := range post.Comments {
		fmt.Println()
		for _, line := range boxLines(comment.Author.Username, comment.Text) {
			fmt.Println("｜   " + commentColor.Sprint(line))
		}
	}
}

// RenderFeed prints a one-line-per-post summary of the whole feed.
func RenderFeed(posts []*db.Post) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Author", "Post", "Comments"})
	table.SetAutoWrapText(false)

	for _, post := range posts {
		table.Append([]string{
			strconv.FormatInt(post.Id, 10),
			post.Author.Username,
			excerpt(post.Text),
			strconv.Itoa(len(post.Comments)),
		})
	}

	table.Render()
}

// boxLines lays out a header (the author) and a body (which may span multiple
// lines) inside a solid-bordered box, sized to the widest line.
func boxLines(header, text string) []string {
	bodyLines := strings.Split(text, "\n")

	width := runewidth.StringWidth(header)
	for _, line := range bodyLines {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	inner := width + 6

	pad := func(s string) string {
		return "█   " + s + strings.Repeat(" ", width-runewidth.StringWidth(s)) + "   █"
	}
	blank := "█" + strings.Repeat(" ", inner) + "█"

	lines := []string{
		"█" + strings.Repeat("▀", inner) + "█",
		blank,
		pad(header),
		blank,
	}
	for _, line := range bodyLines {
		lines = append(lines, pad(line))
	}
	lines = append(lines, blank, "█"+strings.Repeat("▄", inner)+"█")

	return lines
}

func excerpt(text string) string {
	line := strings.SplitN(text, "\n", 2)[0]
	if runewidth.StringWidth(line) > 60 {
		line = runewidth.Truncate(line, 60, "…")
	}
	return line
}
