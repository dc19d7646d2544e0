package config

import (
	"github.com/MonkyMars/gecho"
)

// InitializeLogger builds the process logger from the configured level.
func InitializeLogger() *gecho.Logger {
	return NewLogger(true)
}

func NewLogger(showCaller bool) *gecho.Logger {
	level := gecho.ParseLogLevel(GetLogLevel())
	return gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(showCaller), gecho.WithLogLevel(level)))
}
