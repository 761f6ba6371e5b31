package gen

import (
	"strconv"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Method generates the per-RPC output fragments: the client method
// descriptor, the client call method, the server registration, the server
// adapter and the abstract handler signature.
type Method struct {
	svc *Service

	name        string
	handlerName string
	requestFQ   string
	responseFQ  string

	clientStreaming bool
	serverStreaming bool
}

// newMethod derives the method shape and registers both type dependencies
// with the owning service.
func newMethod(desc *descriptorpb.MethodDescriptorProto, svc *Service, reg *Registry) (*Method, error) {
	m := &Method{
		svc:             svc,
		name:            desc.GetName(),
		handlerName:     handlerName(desc.GetName()),
		requestFQ:       trimDot(desc.GetInputType()),
		responseFQ:      trimDot(desc.GetOutputType()),
		clientStreaming: desc.GetClientStreaming(),
		serverStreaming: desc.GetServerStreaming(),
	}
	if err := svc.addDependency(reg, m.requestFQ, "input type of "+m.name); err != nil {
		return nil, err
	}
	if err := svc.addDependency(reg, m.responseFQ, "output type of "+m.name); err != nil {
		return nil, err
	}
	return m, nil
}

// Name returns the RPC name as declared.
func (m *Method) Name() string {
	return m.name
}

// HandlerName returns the Dart method name of the RPC.
func (m *Method) HandlerName() string {
	return m.handlerName
}

// Path returns the wire path the runtime routes the RPC by.
func (m *Method) Path() string {
	return "/" + m.svc.FullName() + "/" + m.name
}

func (m *Method) requestClass() (string, error) {
	return m.svc.resolveClassName(m.requestFQ)
}

func (m *Method) responseClass() (string, error) {
	return m.svc.resolveClassName(m.responseFQ)
}

// clientArg is the argument representation of the client call method: a
// single request value, or a stream of them when the client streams.
func (m *Method) clientArg(request string) string {
	if m.clientStreaming {
		return "$async.Stream<" + request + ">"
	}
	return request
}

// clientReturn is the client-side return representation.
func (m *Method) clientReturn(response string) string {
	if m.serverStreaming {
		return "$grpc.ResponseStream<" + response + ">"
	}
	return "$grpc.ResponseFuture<" + response + ">"
}

// serverReturn is the return representation of the abstract handler.
func (m *Method) serverReturn(response string) string {
	if m.serverStreaming {
		return "$async.Stream<" + response + ">"
	}
	return "$async.Future<" + response + ">"
}

// generateClientMethodDescriptor emits the file-scope binding pairing the
// wire path with the request serializer and response deserializer. Both the
// client call path and the server registration mirror this single source of
// truth.
func (m *Method) generateClientMethodDescriptor(w *Writer) error {
	request, err := m.requestClass()
	if err != nil {
		return err
	}
	response, err := m.responseClass()
	if err != nil {
		return err
	}
	w.P("static final _$", m.handlerName, " = $grpc.ClientMethod<", request, ", ", response, ">(")
	w.In()
	w.In()
	w.P("'", m.Path(), "',")
	w.P("(", request, " value) => value.writeToBuffer(),")
	w.P("($core.List<$core.int> value) => ", response, ".fromBuffer(value));")
	w.Out()
	w.Out()
	return nil
}

// generateClientStub emits the client call method. Unary requests are
// wrapped into a single-element stream which the call drains and closes;
// client-streaming methods forward the caller-supplied stream as is.
func (m *Method) generateClientStub(w *Writer) error {
	request, err := m.requestClass()
	if err != nil {
		return err
	}
	response, err := m.responseClass()
	if err != nil {
		return err
	}
	w.P(m.clientReturn(response), " ", m.handlerName, "(", m.clientArg(request), " request, {$grpc.CallOptions? options}) {")
	w.In()
	if m.clientStreaming {
		w.P("final call = $createCall(_$", m.handlerName, ", request, options: options);")
	} else {
		w.P("final call = $createCall(_$", m.handlerName, ", $async.Stream.fromIterable([request]), options: options);")
	}
	if m.serverStreaming {
		w.P("return $grpc.ResponseStream(call);")
	} else {
		w.P("return $grpc.ResponseFuture(call);")
	}
	w.Out()
	w.P("}")
	return nil
}

// generateServiceMethodRegistration emits the $addMethod call the server
// base constructor uses to register the RPC with the dispatcher. The
// argument order (handler, client-streaming flag, server-streaming flag,
// request deserializer, response serializer) is part of the runtime
// contract.
func (m *Method) generateServiceMethodRegistration(w *Writer) error {
	request, err := m.requestClass()
	if err != nil {
		return err
	}
	response, err := m.responseClass()
	if err != nil {
		return err
	}
	handler := m.handlerName
	if !m.clientStreaming {
		handler = m.handlerName + "_Pre"
	}
	w.P("$addMethod($grpc.ServiceMethod<", request, ", ", response, ">(")
	w.In()
	w.In()
	w.P("'", m.name, "',")
	w.P(handler, ",")
	w.P(strconv.FormatBool(m.clientStreaming), ",")
	w.P(strconv.FormatBool(m.serverStreaming), ",")
	w.P("($core.List<$core.int> value) => ", request, ".fromBuffer(value),")
	w.P("(", response, " value) => value.writeToBuffer()));")
	w.Out()
	w.Out()
	return nil
}

// generateServiceMethodPreamble emits the adapter bridging the single
// asynchronously-delivered inbound message to the one-argument handler
// signature. Client-streaming methods take the inbound stream directly and
// need no adapter.
func (m *Method) generateServiceMethodPreamble(w *Writer) error {
	request, err := m.requestClass()
	if err != nil {
		return err
	}
	response, err := m.responseClass()
	if err != nil {
		return err
	}
	if m.serverStreaming {
		w.P("$async.Stream<", response, "> ", m.handlerName, "_Pre($grpc.ServiceCall call, $async.Future<", request, "> request) async* {")
		w.In()
		w.P("yield* ", m.handlerName, "(call, await request);")
	} else {
		w.P("$async.Future<", response, "> ", m.handlerName, "_Pre($grpc.ServiceCall call, $async.Future<", request, "> request) async {")
		w.In()
		w.P("return ", m.handlerName, "(call, await request);")
	}
	w.Out()
	w.P("}")
	return nil
}

// generateServiceMethodStub emits the abstract method signature every
// concrete server subclass must implement.
func (m *Method) generateServiceMethodStub(w *Writer) error {
	request, err := m.requestClass()
	if err != nil {
		return err
	}
	response, err := m.responseClass()
	if err != nil {
		return err
	}
	w.P(m.serverReturn(response), " ", m.handlerName, "($grpc.ServiceCall call, ", m.clientArg(request), " request);")
	return nil
}
