package gen

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Service generates the client stub class and the abstract server base class
// for one service declaration. Its lifecycle is a strict three-phase
// protocol: naming is fixed at construction, Resolve settles type
// dependencies once every file of the run has registered its types, and only
// then AddImportsTo and Generate may run.
type Service struct {
	desc *descriptorpb.ServiceDescriptorProto
	file *File

	fullName       string
	clientName     string
	serverBaseName string

	phase   phase
	methods []*Method
	// key: fully-qualified type name, val: the resolved handle. Entries are
	// never replaced once added.
	deps map[string]*TypeHandle
	// key: fully-qualified type name absent from the registry at resolution
	// time, val: first-seen referencing site, kept for diagnostics.
	undefined map[string]string
}

func newService(desc *descriptorpb.ServiceDescriptorProto, file *File) *Service {
	return &Service{
		desc:           desc,
		file:           file,
		fullName:       fullServiceName(file.Package(), desc.GetName()),
		clientName:     clientClassName(desc.GetName()),
		serverBaseName: serverBaseClassName(desc.GetName()),
		phase:          phaseConstructed,
		deps:           make(map[string]*TypeHandle),
		undefined:      make(map[string]string),
	}
}

// FullName returns the fully-qualified service name, which is also the first
// segment of every method's wire path.
func (s *Service) FullName() string {
	return s.fullName
}

// ClientName returns the name of the generated client class.
func (s *Service) ClientName() string {
	return s.clientName
}

// ServerBaseName returns the name of the generated abstract server base
// class.
func (s *Service) ServerBaseName() string {
	return s.serverBaseName
}

func (s *Service) checkPhase(op string, want phase) error {
	if s.phase != want {
		return errors.Errorf("%s must run in the %s phase, but service %s is %s", op, want, s.fullName, s.phase)
	}
	return nil
}

// Resolve builds the method generators in declaration order and registers
// every request and response type against the registry. The caller must
// guarantee that every file of the whole run has been added to reg first.
func (s *Service) Resolve(reg *Registry) error {
	if err := s.checkPhase("Resolve", phaseConstructed); err != nil {
		return err
	}
	for _, md := range s.desc.GetMethod() {
		m, err := newMethod(md, s, reg)
		if err != nil {
			return err
		}
		s.methods = append(s.methods, m)
	}
	s.phase = phaseResolved
	return nil
}

// Methods returns the method generators. It is empty until Resolve runs.
func (s *Service) Methods() []*Method {
	return s.methods
}

// addDependency records that generated code references fqname. It is
// idempotent, so methods sharing request or response types may register them
// repeatedly. Handles found in the registry must assert their own
// resolvedness before they are trusted; names the registry does not know are
// remembered with their referencing site and only become errors if emission
// actually needs them.
func (s *Service) addDependency(reg *Registry, fqname, location string) error {
	if _, ok := s.deps[fqname]; ok {
		return nil
	}
	h, ok := reg.Lookup(fqname)
	if !ok {
		if _, seen := s.undefined[fqname]; !seen {
			s.undefined[fqname] = location
		}
		return nil
	}
	if err := h.CheckResolved(); err != nil {
		return errors.Wrapf(err, "dependency %s of service %s is unusable", fqname, s.fullName)
	}
	s.deps[h.FullName()] = h
	return nil
}

// AddImportsTo records the owning file of every resolved dependency into
// imports, so the enclosing file can compute its import list without doing
// any I/O here.
func (s *Service) AddImportsTo(imports *fileSet) error {
	if err := s.checkPhase("AddImportsTo", phaseResolved); err != nil {
		return err
	}
	for _, h := range s.deps {
		imports.add(h.File())
	}
	return nil
}

// resolveClassName returns the name generated code uses to reference the
// message type fqname from this service's file.
func (s *Service) resolveClassName(fqname string) (string, error) {
	h, ok := s.deps[fqname]
	if !ok {
		return "", &UnresolvedTypeError{Name: fqname, Location: s.undefined[fqname]}
	}
	owner := h.File()
	// Same-package references and types from package-less files are visible
	// without qualification.
	if owner.Package() == s.file.Package() || owner.Package() == "" {
		return h.ClassName(), nil
	}
	return owner.ImportAlias() + "." + h.ClassName(), nil
}

// Generate emits the client class, a blank separator and the server base
// class. It may run once per instance.
func (s *Service) Generate(w *Writer) error {
	if err := s.checkPhase("Generate", phaseResolved); err != nil {
		return err
	}
	if err := s.generateClient(w); err != nil {
		return err
	}
	w.P()
	if err := s.generateServer(w); err != nil {
		return err
	}
	s.phase = phaseEmitted
	return nil
}

func (s *Service) generateClient(w *Writer) error {
	w.P("class ", s.clientName, " extends $grpc.Client {")
	w.In()
	for _, m := range s.methods {
		if err := m.generateClientMethodDescriptor(w); err != nil {
			return err
		}
		w.P()
	}
	w.P(s.clientName, "($grpc.ClientChannel channel, {$grpc.CallOptions? options})")
	w.In()
	w.In()
	w.P(": super(channel, options: options);")
	w.Out()
	w.Out()
	for _, m := range s.methods {
		w.P()
		if err := m.generateClientStub(w); err != nil {
			return err
		}
	}
	w.Out()
	w.P("}")
	return nil
}

func (s *Service) generateServer(w *Writer) error {
	w.P("abstract class ", s.serverBaseName, " extends $grpc.Service {")
	w.In()
	w.P("$core.String get $name => '", s.fullName, "';")
	w.P()
	w.P(s.serverBaseName, "() {")
	w.In()
	for _, m := range s.methods {
		if err := m.generateServiceMethodRegistration(w); err != nil {
			return err
		}
	}
	w.Out()
	w.P("}")
	for _, m := range s.methods {
		if !m.clientStreaming {
			w.P()
			if err := m.generateServiceMethodPreamble(w); err != nil {
				return err
			}
		}
		w.P()
		if err := m.generateServiceMethodStub(w); err != nil {
			return err
		}
	}
	w.Out()
	w.P("}")
	return nil
}
