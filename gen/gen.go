// Package gen generates Dart gRPC bindings from Protocol Buffers file
// descriptors. For every input file that declares a service it produces one
// .pbgrpc.dart artifact containing a client stub class and an abstract
// server base class per service.
//
// Generation is a strict two-phase protocol. First every file of the whole
// run registers its types with a shared Registry and every service resolves
// its method dependencies against it; only then may any file emit. The
// barrier exists because a service may reference message types declared in
// any other file of the run.
package gen

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/descriptorpb"
)

// GeneratedFile is one output artifact.
type GeneratedFile struct {
	// Name is the output path, relative to the generation output root.
	Name string
	// Content is the complete file content.
	Content string
}

// Generate runs the full two-phase generation. files must contain every file
// of the compilation, dependencies included. toGenerate lists the proto
// paths code generation was requested for; all other files only contribute
// types to the registry. Files without services produce no output.
func Generate(files []*descriptorpb.FileDescriptorProto, toGenerate []string, opts Options) ([]GeneratedFile, error) {
	reg := NewRegistry()
	for _, fd := range files {
		if _, err := reg.AddFile(fd); err != nil {
			return nil, errors.Wrapf(err, "failed to register %s", fd.GetName())
		}
	}

	// Phase barrier: every type of the run is registered at this point.
	reg.resolveTypes()
	for _, f := range reg.Files() {
		for _, svc := range f.Services() {
			if err := svc.Resolve(reg); err != nil {
				return nil, errors.Wrapf(err, "failed to resolve service %s", svc.FullName())
			}
		}
	}

	targets := make([]*File, 0, len(toGenerate))
	for _, name := range toGenerate {
		f, ok := reg.FileByName(name)
		if !ok {
			return nil, errors.Errorf("no such file to generate: %s", name)
		}
		if len(f.Services()) == 0 {
			continue
		}
		targets = append(targets, f)
	}

	// Within the barrier files are independent: each service owns its
	// dependency sets exclusively and the registry is read-only now, so
	// emission runs one goroutine per file. Output order follows toGenerate
	// regardless of completion order.
	out := make([]GeneratedFile, len(targets))
	var eg errgroup.Group
	for i, f := range targets {
		i, f := i, f
		eg.Go(func() error {
			content, err := f.Generate(opts)
			if err != nil {
				return errors.Wrapf(err, "failed to generate %s", f.Name())
			}
			out[i] = GeneratedFile{Name: pbgrpcDartPath(f.Name()), Content: content}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
