package term

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func OutputSuccess(msg string, args ...interface{}) {
	fmt.Println(color.New(ColorHiGreen, color.Bold).Sprintf(msg, args...))
}

func OutputWarning(msg string, args ...interface{}) {
	fmt.Println(color.New(ColorHiYellow, color.Bold).Sprint("⚠️  ") + fmt.Sprintf(msg, args...))
}

func OutputSimpleError(msg string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, color.New(ColorHiRed, color.Bold).Sprint("🚨 "+fmt.Sprintf(msg, args...)))
}

func OutputErrorAndExit(msg string, args ...interface{}) {
	OutputSimpleError(msg, args...)
	os.Exit(1)
}
