package gen

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/descriptorpb"
)

// File owns the generated artifact for one .proto input. It also acts as the
// file context services consult to qualify cross-file type references.
type File struct {
	desc *descriptorpb.FileDescriptorProto
	// alias is the import prefix other files use when they reference a type
	// this file owns.
	alias string

	services []*Service
}

// Name returns the proto path of the file, e.g. "helloworld/greeter.proto".
func (f *File) Name() string {
	return f.desc.GetName()
}

// Package returns the declared proto package. It may be empty.
func (f *File) Package() string {
	return f.desc.GetPackage()
}

// ImportAlias returns the alias assigned at registration time.
func (f *File) ImportAlias() string {
	return f.alias
}

// Services returns the service generators declared in the file.
func (f *File) Services() []*Service {
	return f.services
}

// Generate emits the complete .pbgrpc.dart content for the file. Every
// service must have resolved already.
func (f *File) Generate(opts Options) (string, error) {
	imports := newFileSet()
	for _, svc := range f.services {
		if err := svc.AddImportsTo(imports); err != nil {
			return "", err
		}
	}

	w := NewWriter()
	w.P("///")
	w.P("//  Generated code. Do not modify.")
	w.P("//  source: ", f.Name())
	w.P("///")
	w.P()
	w.P("import 'dart:async' as $async;")
	w.P("import 'dart:core' as $core;")
	w.P()
	w.P("import 'package:grpc/service_api.dart' as $grpc;")
	w.P("import '", relativeImport(f.Name(), pbDartPath(f.Name())), "';")
	for _, dep := range imports.sorted() {
		if dep == f {
			continue
		}
		p := relativeImport(f.Name(), pbDartPath(dep.Name()))
		if dep.Package() != "" && dep.Package() != f.Package() {
			w.P("import '", p, "' as ", dep.ImportAlias(), ";")
		} else {
			w.P("import '", p, "';")
		}
	}
	if !opts.NoExport {
		w.P()
		w.P("export '", relativeImport(f.Name(), pbDartPath(f.Name())), "';")
	}
	for _, svc := range f.services {
		w.P()
		if err := svc.Generate(w); err != nil {
			return "", errors.Wrapf(err, "failed to generate service %s", svc.FullName())
		}
	}
	return w.String(), nil
}

// fileSet collects the files an import list must cover.
type fileSet struct {
	files map[*File]struct{}
}

func newFileSet() *fileSet {
	return &fileSet{files: make(map[*File]struct{})}
}

func (s *fileSet) add(f *File) {
	s.files[f] = struct{}{}
}

// sorted returns the files ordered by proto path so emission stays
// deterministic.
func (s *fileSet) sorted() []*File {
	files := make([]*File, 0, len(s.files))
	for f := range s.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })
	return files
}

// pbDartPath maps a proto path to the companion message file the Dart
// message plugin generates for it.
func pbDartPath(protoPath string) string {
	return strings.TrimSuffix(protoPath, ".proto") + ".pb.dart"
}

// pbgrpcDartPath maps a proto path to the output path of this generator.
func pbgrpcDartPath(protoPath string) string {
	return strings.TrimSuffix(protoPath, ".proto") + ".pbgrpc.dart"
}

// relativeImport computes the Dart import URI from the file generated for
// "from" to the artifact at "to". Both are slash-separated proto paths, and
// generated files sit next to their inputs.
func relativeImport(from, to string) string {
	rel, err := filepath.Rel(filepath.Dir(filepath.FromSlash(from)), filepath.FromSlash(to))
	if err != nil {
		return to
	}
	return filepath.ToSlash(rel)
}
