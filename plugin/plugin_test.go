package plugin

import (
	"bytes"
	"strings"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

func newRequest(t *testing.T, parameter string) *pluginpb.CodeGeneratorRequest {
	t.Helper()
	return &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"echo.proto"},
		Parameter:      proto.String(parameter),
		ProtoFile: []*descriptorpb.FileDescriptorProto{
			{
				Name:    proto.String("echo.proto"),
				Package: proto.String("demo"),
				MessageType: []*descriptorpb.DescriptorProto{
					{Name: proto.String("EchoRequest")},
					{Name: proto.String("EchoResponse")},
				},
				Service: []*descriptorpb.ServiceDescriptorProto{
					{
						Name: proto.String("EchoService"),
						Method: []*descriptorpb.MethodDescriptorProto{
							{
								Name:       proto.String("SayHello"),
								InputType:  proto.String(".demo.EchoRequest"),
								OutputType: proto.String(".demo.EchoResponse"),
							},
						},
					},
				},
			},
		},
	}
}

func run(t *testing.T, req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	t.Helper()
	b, err := proto.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal the request: %s", err)
	}
	var out bytes.Buffer
	if err := Run(bytes.NewReader(b), &out); err != nil {
		t.Fatalf("Run must not return an error, but got '%s'", err)
	}
	var resp pluginpb.CodeGeneratorResponse
	if err := proto.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal the response: %s", err)
	}
	return &resp
}

func TestRun(t *testing.T) {
	resp := run(t, newRequest(t, ""))
	if resp.GetError() != "" {
		t.Fatalf("the response must not carry an error, but got '%s'", resp.GetError())
	}
	if resp.GetSupportedFeatures()&uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL) == 0 {
		t.Errorf("the response must declare proto3 optional support")
	}
	if len(resp.GetFile()) != 1 {
		t.Fatalf("expected exactly one generated file, but got %d", len(resp.GetFile()))
	}
	f := resp.GetFile()[0]
	if f.GetName() != "echo.pbgrpc.dart" {
		t.Errorf("expected output name 'echo.pbgrpc.dart', but got '%s'", f.GetName())
	}
	if !strings.Contains(f.GetContent(), "class EchoServiceClient extends $grpc.Client {") {
		t.Errorf("expected the content to contain the client class, but got:\n%s", f.GetContent())
	}
}

func TestRun_NoExportParameter(t *testing.T) {
	resp := run(t, newRequest(t, "no_export"))
	if resp.GetError() != "" {
		t.Fatalf("the response must not carry an error, but got '%s'", resp.GetError())
	}
	if strings.Contains(resp.GetFile()[0].GetContent(), "export '") {
		t.Errorf("expected no export statement with the no_export parameter")
	}
}

func TestRun_GenerationErrors(t *testing.T) {
	cases := map[string]struct {
		mutate      func(req *pluginpb.CodeGeneratorRequest)
		expectedErr string
	}{
		"unknown parameter": {
			mutate:      func(req *pluginpb.CodeGeneratorRequest) { req.Parameter = proto.String("foo") },
			expectedErr: `unknown parameter "foo"`,
		},
		"unknown type reference": {
			mutate: func(req *pluginpb.CodeGeneratorRequest) {
				req.ProtoFile[0].Service[0].Method[0].InputType = proto.String(".demo.Unknown")
			},
			expectedErr: "unknown type reference demo.Unknown (input type of SayHello)",
		},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			req := newRequest(t, "")
			c.mutate(req)
			resp := run(t, req)
			if !strings.Contains(resp.GetError(), c.expectedErr) {
				t.Errorf("expected the response error to contain '%s', but got '%s'", c.expectedErr, resp.GetError())
			}
			if len(resp.GetFile()) != 0 {
				t.Errorf("a failed run must not emit files, but got %d", len(resp.GetFile()))
			}
		})
	}
}

func TestRun_BrokenRequest(t *testing.T) {
	var out bytes.Buffer
	if err := Run(bytes.NewReader([]byte{0xff, 0xff, 0xff}), &out); err == nil {
		t.Errorf("Run must fail for an unparsable request")
	}
}
