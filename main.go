package main

import (
	"log"

	"threadfeed/cmd"

	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	// keep the terminal clean for the menu UI; diagnostics go to a rotated
	// log file
	log.SetOutput(&lumberjack.Logger{
		Filename:   "threadfeed.log",
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})
}

func main() {
	cmd.Execute()
}
