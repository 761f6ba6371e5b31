// Package source loads the file descriptors the generator consumes, either
// by compiling .proto sources directly or by reading a serialized descriptor
// set produced by protoc.
package source

import (
	"context"
	"os"

	"github.com/bufbuild/protocompile"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Set is the input of one generation run.
type Set struct {
	// Files contains every file of the compilation, transitive dependencies
	// included, in dependency order.
	Files []*descriptorpb.FileDescriptorProto
	// ToGenerate lists the proto paths code generation was requested for.
	ToGenerate []string
}

// FromFiles compiles the passed .proto files, resolving imports against
// importPaths, and returns the resulting descriptor set.
func FromFiles(ctx context.Context, importPaths, fnames []string) (*Set, error) {
	c := &protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			ImportPaths: importPaths,
		}),
	}
	compiled, err := c.Compile(ctx, fnames...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile proto files")
	}

	set := &Set{}
	seen := make(map[string]bool)
	var add func(fd protoreflect.FileDescriptor)
	add = func(fd protoreflect.FileDescriptor) {
		if seen[fd.Path()] {
			return
		}
		seen[fd.Path()] = true
		imports := fd.Imports()
		for i := 0; i < imports.Len(); i++ {
			add(imports.Get(i).FileDescriptor)
		}
		set.Files = append(set.Files, protodesc.ToFileDescriptorProto(fd))
	}
	for _, fd := range compiled {
		add(fd)
		set.ToGenerate = append(set.ToGenerate, fd.Path())
	}
	return set, nil
}

// FromDescriptorSet reads a FileDescriptorSet written by
// "protoc --descriptor_set_out". Every file of the set is treated as a
// generation target; files without services are skipped by the generator
// anyway.
func FromDescriptorSet(fname string) (*Set, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read the descriptor set %s", fname)
	}
	var ds descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(b, &ds); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal the descriptor set %s", fname)
	}

	set := &Set{Files: ds.GetFile()}
	for _, fd := range ds.GetFile() {
		set.ToGenerate = append(set.ToGenerate, fd.GetName())
	}
	return set, nil
}
