package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func TestFromFiles(t *testing.T) {
	set, err := FromFiles(context.Background(), []string{"testdata"}, []string{"api.proto"})
	if err != nil {
		t.Fatalf("FromFiles must not return an error, but got '%s'", err)
	}

	if len(set.ToGenerate) != 1 || set.ToGenerate[0] != "api.proto" {
		t.Errorf("expected only 'api.proto' as a generation target, but got %v", set.ToGenerate)
	}

	names := make(map[string]bool)
	for _, fd := range set.Files {
		names[fd.GetName()] = true
	}
	for _, expected := range []string{"api.proto", "message.proto", "other_package.proto"} {
		if !names[expected] {
			t.Errorf("expected the set to contain '%s', but got %v", expected, names)
		}
	}
	// Dependencies must precede their importers.
	if set.Files[len(set.Files)-1].GetName() != "api.proto" {
		t.Errorf("expected 'api.proto' to come last, but got '%s'", set.Files[len(set.Files)-1].GetName())
	}
}

func TestFromFiles_Invalid(t *testing.T) {
	cases := map[string]struct {
		fnames []string
	}{
		"broken file":  {fnames: []string{"invalid.proto"}},
		"no such file": {fnames: []string{"missing.proto"}},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			if _, err := FromFiles(context.Background(), []string{"testdata"}, c.fnames); err == nil {
				t.Errorf("FromFiles must return an error")
			}
		})
	}
}

func TestFromDescriptorSet(t *testing.T) {
	ds := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{
			{Name: proto.String("a.proto"), Package: proto.String("demo")},
			{Name: proto.String("b.proto"), Package: proto.String("demo")},
		},
	}
	b, err := proto.Marshal(ds)
	if err != nil {
		t.Fatalf("failed to marshal the descriptor set: %s", err)
	}
	fname := filepath.Join(t.TempDir(), "ds.pb")
	if err := os.WriteFile(fname, b, 0o644); err != nil {
		t.Fatalf("failed to write the descriptor set: %s", err)
	}

	set, err := FromDescriptorSet(fname)
	if err != nil {
		t.Fatalf("FromDescriptorSet must not return an error, but got '%s'", err)
	}
	if len(set.Files) != 2 {
		t.Errorf("expected 2 files, but got %d", len(set.Files))
	}
	if len(set.ToGenerate) != 2 || set.ToGenerate[0] != "a.proto" || set.ToGenerate[1] != "b.proto" {
		t.Errorf("expected every file of the set to be a generation target, but got %v", set.ToGenerate)
	}
}

func TestFromDescriptorSet_Invalid(t *testing.T) {
	t.Run("no such file", func(t *testing.T) {
		if _, err := FromDescriptorSet(filepath.Join(t.TempDir(), "missing.pb")); err == nil {
			t.Errorf("FromDescriptorSet must return an error")
		}
	})

	t.Run("broken content", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), "broken.pb")
		if err := os.WriteFile(fname, []byte{0xff, 0xff, 0xff}, 0o644); err != nil {
			t.Fatalf("failed to write the file: %s", err)
		}
		if _, err := FromDescriptorSet(fname); err == nil {
			t.Errorf("FromDescriptorSet must return an error")
		}
	})
}
