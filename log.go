package openft

import (
	"log"
	"os"
)

var logger = log.New(os.Stderr, "", log.LstdFlags)

// SetLogger replaces where warnings & per package errors are written.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(os.Stderr, "", log.LstdFlags)
	}
	logger = l
}

func warnf(format string, args ...interface{}) {
	logger.Printf("Warning: "+format, args...)
}

func errorf(format string, args ...interface{}) {
	logger.Printf("Error: "+format, args...)
}

func infof(format string, args ...interface{}) {
	logger.Printf(format, args...)
}
