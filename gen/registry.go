package gen

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Registry indexes every message and enum type declared across the whole
// compilation run by its fully-qualified name. It is populated up front and
// only read afterwards, so generators may share it freely.
type Registry struct {
	// key: fully-qualified type name without a leading dot.
	types map[string]*TypeHandle
	// ordered keeps registration order for deterministic resolution.
	ordered []*TypeHandle

	files  []*File
	byName map[string]*File
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:  make(map[string]*TypeHandle),
		byName: make(map[string]*File),
	}
}

// AddFile registers fd and every message and enum type it declares,
// recursing into nested declarations. The returned File carries the import
// alias other units use to reference the file's types.
func (r *Registry) AddFile(fd *descriptorpb.FileDescriptorProto) (*File, error) {
	if _, ok := r.byName[fd.GetName()]; ok {
		return nil, errors.Errorf("file %s is registered twice", fd.GetName())
	}
	f := &File{
		desc:  fd,
		alias: fmt.Sprintf("$%d", len(r.files)),
	}
	r.files = append(r.files, f)
	r.byName[fd.GetName()] = f

	pkg := fd.GetPackage()
	for _, md := range fd.GetMessageType() {
		if err := r.registerMessage(f, pkg, "", md); err != nil {
			return nil, err
		}
	}
	for _, ed := range fd.GetEnumType() {
		if err := r.register(newEnumHandle(f, joinDot(pkg, ed.GetName()), ed.GetName())); err != nil {
			return nil, err
		}
	}
	for _, sd := range fd.GetService() {
		f.services = append(f.services, newService(sd, f))
	}
	return f, nil
}

func (r *Registry) registerMessage(f *File, fqPrefix, classPrefix string, md *descriptorpb.DescriptorProto) error {
	fqname := joinDot(fqPrefix, md.GetName())
	className := md.GetName()
	if classPrefix != "" {
		className = classPrefix + "_" + className
	}
	if err := r.register(newMessageHandle(f, fqname, className, md)); err != nil {
		return err
	}
	for _, nested := range md.GetNestedType() {
		if err := r.registerMessage(f, fqname, className, nested); err != nil {
			return err
		}
	}
	for _, ed := range md.GetEnumType() {
		if err := r.register(newEnumHandle(f, joinDot(fqname, ed.GetName()), className+"_"+ed.GetName())); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) register(h *TypeHandle) error {
	if prev, ok := r.types[h.fqname]; ok {
		return errors.Errorf("type %s is declared in both %s and %s", h.fqname, prev.file.Name(), h.file.Name())
	}
	r.types[h.fqname] = h
	r.ordered = append(r.ordered, h)
	return nil
}

// Lookup returns the handle registered under the fully-qualified name.
func (r *Registry) Lookup(fqname string) (*TypeHandle, bool) {
	h, ok := r.types[fqname]
	return h, ok
}

// FileByName returns the file registered under the proto path.
func (r *Registry) FileByName(name string) (*File, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Files returns every registered file in registration order.
func (r *Registry) Files() []*File {
	return r.files
}

// resolveTypes settles every registered handle against the registry. It must
// run after every file of the run has been added and before any service
// resolves.
func (r *Registry) resolveTypes() {
	for _, h := range r.ordered {
		h.resolve(r)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
