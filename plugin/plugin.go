// Package plugin implements the protoc code generator plugin transport.
package plugin

import (
	"io"

	"github.com/pkg/errors"
	"github.com/protodart/protodart/gen"
	"github.com/protodart/protodart/logger"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"
)

// Run reads a CodeGeneratorRequest from in, generates Dart gRPC bindings and
// writes the CodeGeneratorResponse to out. Generation failures are reported
// through the response's error field so the host compiler can attribute them;
// only transport failures are returned as errors.
func Run(in io.Reader, out io.Writer) error {
	b, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "failed to read the code generator request")
	}
	var req pluginpb.CodeGeneratorRequest
	if err := proto.Unmarshal(b, &req); err != nil {
		return errors.Wrap(err, "failed to unmarshal the code generator request")
	}

	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}
	if files, err := generate(&req); err != nil {
		resp.Error = proto.String(err.Error())
	} else {
		resp.File = files
	}

	b, err = proto.Marshal(resp)
	if err != nil {
		return errors.Wrap(err, "failed to marshal the code generator response")
	}
	if _, err := out.Write(b); err != nil {
		return errors.Wrap(err, "failed to write the code generator response")
	}
	return nil
}

func generate(req *pluginpb.CodeGeneratorRequest) ([]*pluginpb.CodeGeneratorResponse_File, error) {
	opts, err := gen.ParseParameter(req.GetParameter())
	if err != nil {
		return nil, err
	}
	generated, err := gen.Generate(req.GetProtoFile(), req.GetFileToGenerate(), opts)
	if err != nil {
		return nil, err
	}
	files := make([]*pluginpb.CodeGeneratorResponse_File, len(generated))
	for i, f := range generated {
		logger.Printf("generated %s", f.Name)
		files[i] = &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(f.Name),
			Content: proto.String(f.Content),
		}
	}
	return files, nil
}
