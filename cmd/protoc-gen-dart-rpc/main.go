// protoc-gen-dart-rpc is a plugin for the Protocol Buffers compiler that
// generates Dart gRPC bindings. Build it, make it available on your PATH as
// protoc-gen-dart-rpc, and run:
//
//	protoc --dart-rpc_out=lib/src/generated path/to/file.proto
//
// For every input file declaring a service it writes a .pbgrpc.dart file
// next to the .pb.dart files the Dart message plugin generates.
package main

import (
	"fmt"
	"os"

	"github.com/protodart/protodart/logger"
	"github.com/protodart/protodart/meta"
	"github.com/protodart/protodart/plugin"
)

func main() {
	if len(os.Args) == 2 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Fprintf(os.Stdout, "protoc-gen-dart-rpc %s\n", meta.Version.String())
		return
	}
	if os.Getenv("PROTODART_DEBUG") != "" {
		logger.SetOutput(os.Stderr)
	}
	if err := plugin.Run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "protoc-gen-dart-rpc: %s\n", err)
		os.Exit(1)
	}
}
