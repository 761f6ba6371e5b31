package gen

import (
	multierror "github.com/ktr0731/go-multierror"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/descriptorpb"
)

type typeKind int

const (
	kindMessage typeKind = iota
	kindEnum
)

// typeRef records one type referenced by a message field, together with a
// human-readable description of the referencing site.
type typeRef struct {
	name     string
	location string
}

// TypeHandle models a message or enum class emitted by the Dart message
// plugin. Service generation never emits these classes itself; it only needs
// their Dart names, their owning files and whether their own field
// dependencies settled against the registry.
type TypeHandle struct {
	kind      typeKind
	fqname    string
	className string
	file      *File

	fieldTypes []typeRef
	resolved   bool
	// key: missing fully-qualified type name, val: first-seen location.
	missing map[string]string
}

func newMessageHandle(f *File, fqname, className string, desc *descriptorpb.DescriptorProto) *TypeHandle {
	h := &TypeHandle{
		kind:      kindMessage,
		fqname:    fqname,
		className: className,
		file:      f,
		missing:   make(map[string]string),
	}
	for _, field := range desc.GetField() {
		if field.GetTypeName() == "" {
			continue
		}
		h.fieldTypes = append(h.fieldTypes, typeRef{
			name:     trimDot(field.GetTypeName()),
			location: "field " + field.GetName() + " of " + fqname,
		})
	}
	return h
}

func newEnumHandle(f *File, fqname, className string) *TypeHandle {
	return &TypeHandle{
		kind:      kindEnum,
		fqname:    fqname,
		className: className,
		file:      f,
		missing:   make(map[string]string),
	}
}

// FullName returns the fully-qualified proto name without a leading dot.
func (h *TypeHandle) FullName() string {
	return h.fqname
}

// ClassName returns the Dart class name. Nested declarations are joined with
// underscores the way the Dart message plugin names them.
func (h *TypeHandle) ClassName() string {
	return h.className
}

// File returns the compilation unit that declares the type.
func (h *TypeHandle) File() *File {
	return h.file
}

// resolve settles the handle's field references against the registry.
// Lookups that miss are recorded, not reported; CheckResolved surfaces them
// once a component is about to rely on the handle.
func (h *TypeHandle) resolve(reg *Registry) {
	for _, ref := range h.fieldTypes {
		if _, ok := reg.Lookup(ref.name); !ok {
			if _, seen := h.missing[ref.name]; !seen {
				h.missing[ref.name] = ref.location
			}
		}
	}
	h.resolved = true
}

// CheckResolved fails if resolve has not run yet or if any of the handle's
// own dependencies is unknown to the registry.
func (h *TypeHandle) CheckResolved() error {
	if !h.resolved {
		return errors.Errorf("type %s is not resolved yet", h.fqname)
	}
	var result error
	for _, name := range sortedKeys(h.missing) {
		result = multierror.Append(result, &UnresolvedTypeError{Name: name, Location: h.missing[name]})
	}
	return result
}
