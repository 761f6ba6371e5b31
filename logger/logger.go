// Package logger provides logging APIs for the application.
// All logs are discarded by default. To write out these, call SetOutput.
package logger

import (
	"io"
	"log"
)

var (
	defaultLogger = log.New(io.Discard, "protodart: ", 0)
)

// Reset restores the default state. It is mainly used from tests.
func Reset() {
	defaultLogger.SetOutput(io.Discard)
	defaultLogger.SetPrefix("protodart: ")
}

func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

func SetPrefix(p string) {
	defaultLogger.SetPrefix(p)
}

func Println(v ...interface{}) {
	defaultLogger.Println(v...)
}

func Printf(format string, v ...interface{}) {
	defaultLogger.Printf(format, v...)
}

func Fatal(v ...interface{}) {
	defaultLogger.Fatal(v...)
}

func Fatalf(format string, v ...interface{}) {
	defaultLogger.Fatalf(format, v...)
}
