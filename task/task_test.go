package task

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/publicizer/cache"
	"github.com/viant/publicizer/config"
	"github.com/viant/publicizer/mask"
	"github.com/viant/publicizer/metadata"
	"github.com/viant/publicizer/metadata/image"
	"github.com/viant/publicizer/publicizer"
)

// countingCodec records how many modules were loaded
type countingCodec struct {
	Codec
	reads int
}

func (c *countingCodec) Read(data []byte) (*metadata.Module, error) {
	c.reads++
	return c.Codec.Read(data)
}

func fooModule(typeAccess metadata.TypeAttributes, methodAccess metadata.MethodAttributes) *metadata.Module {
	module := metadata.NewModule("Game.dll")
	module.Assembly = "Game"
	foo := &metadata.Type{Namespace: "Game", Name: "Foo", Attributes: typeAccess, BaseType: "System.Object"}
	foo.AddMethod(&metadata.Method{
		Name:       "Bar",
		Attributes: methodAccess | metadata.MethodHideBySig,
		Signature:  &metadata.MethodSignature{HasThis: true, ReturnType: metadata.ElementVoid},
		Body:       &metadata.MethodBody{Instructions: []*metadata.Instruction{{OpCode: "ret"}}},
	})
	module.AddType(foo)
	return module
}

type fixture struct {
	dir       string
	target    string
	objDir    string
	output    string
	reference *Item
	codec     *countingCodec
	masks     mask.Resources
}

func newFixture(t *testing.T) *fixture {
	dir := t.TempDir()
	f := &fixture{
		dir:    dir,
		target: filepath.Join(dir, "lib", "Game.dll"),
		objDir: filepath.Join(dir, "obj"),
		codec:  &countingCodec{Codec: image.New()},
	}
	f.output = filepath.Join(f.objDir, config.DefaultOutputName)
	require.NoError(t, os.MkdirAll(filepath.Dir(f.target), 0755))
	require.NoError(t, os.MkdirAll(f.objDir, 0755))

	targetBytes, err := image.Write(fooModule(metadata.TypeNotPublic, metadata.MethodPrivate))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(f.target, targetBytes, 0644))
	maskBytes, err := image.Write(fooModule(metadata.TypePublic, metadata.MethodPublic))
	require.NoError(t, err)
	f.masks = mask.Resources{config.DefaultMaskResource: maskBytes}

	f.reference = NewItem(config.DefaultPackageName, map[string]string{
		config.DefaultAssemblyMetadata:          f.target,
		config.DefaultReferenceAssemblyMetadata: "true",
		"Aliases":                               "game",
	})
	return f
}

func (f *fixture) task(cfg *config.Config, options ...Option) *Task {
	options = append([]Option{WithCodec(f.codec), WithMaskSource(f.masks), WithVersion("0.1.0")}, options...)
	return New(cfg, options...)
}

func (f *fixture) request(references ...*Item) *Request {
	if len(references) == 0 {
		references = []*Item{NewItem("Other.Package", nil), f.reference}
	}
	return &Request{IntermediateOutputPath: f.objDir, PackageReferences: references}
}

func TestTask_Execute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	task := f.task(config.New())

	result, err := task.Execute(ctx, f.request())
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Empty(t, result.Errors)
	assert.False(t, result.Skipped)
	assert.Equal(t, 2, f.codec.reads, "target and mask are loaded")
	require.NotNil(t, result.Report)
	assert.Equal(t, 1, result.Report.Types)
	assert.Equal(t, 1, result.Report.Methods)

	require.NotNil(t, result.Output)
	assert.Equal(t, f.output, result.Output.Identity)
	_, hasReference := result.Output.GetMetadata(config.DefaultReferenceAssemblyMetadata)
	assert.False(t, hasReference, "output is not a reference assembly")
	aliases, _ := result.Output.GetMetadata("Aliases")
	assert.Equal(t, "game", aliases)
	_, stillReference := f.reference.GetMetadata(config.DefaultReferenceAssemblyMetadata)
	assert.True(t, stillReference, "input reference is left intact")

	data, err := os.ReadFile(f.output)
	require.NoError(t, err)
	rewritten, err := image.Read(data)
	require.NoError(t, err)
	foo := rewritten.GetType("Game.Foo")
	require.NotNil(t, foo)
	assert.True(t, foo.IsPublic())
	bar := foo.FindMethods("Bar")[0]
	assert.True(t, bar.IsPublic())
	assert.Equal(t, metadata.MethodHideBySig, bar.Attributes&^metadata.MethodMemberAccessMask)

	typeAnnotation := metadata.FindCustomAttribute(foo.CustomAttributes, publicizer.CarrierFullName)
	require.NotNil(t, typeAnnotation)
	assert.Equal(t, []*metadata.Argument{{Type: "System.Reflection.TypeAttributes", Value: "0"}}, typeAnnotation.Arguments)
	methodAnnotation := metadata.FindCustomAttribute(bar.CustomAttributes, publicizer.CarrierFullName)
	require.NotNil(t, methodAnnotation)
	assert.Equal(t, []*metadata.Argument{{Type: "System.Reflection.MethodAttributes", Value: "1"}}, methodAnnotation.Arguments)
	assert.NotNil(t, rewritten.GetType(publicizer.CarrierFullName))

	fingerprint, err := os.ReadFile(cache.Location(f.output))
	require.NoError(t, err)
	assert.Equal(t, result.Digest, string(fingerprint))
	outputInfo, err := os.Stat(f.output)
	require.NoError(t, err)
	fingerprintInfo, err := os.Stat(cache.Location(f.output))
	require.NoError(t, err)

	second, err := task.Execute(ctx, f.request())
	require.NoError(t, err)
	assert.True(t, second.Succeeded)
	assert.True(t, second.Skipped)
	assert.Nil(t, second.Report)
	assert.Equal(t, 2, f.codec.reads, "nothing is loaded when inputs are unchanged")
	assert.Equal(t, result.Output, second.Output)
	assert.Equal(t, result.Digest, second.Digest)

	again, err := os.ReadFile(f.output)
	require.NoError(t, err)
	assert.Equal(t, data, again)
	outputAfter, err := os.Stat(f.output)
	require.NoError(t, err)
	assert.Equal(t, outputInfo.ModTime(), outputAfter.ModTime())
	fingerprintAfter, err := os.Stat(cache.Location(f.output))
	require.NoError(t, err)
	assert.Equal(t, fingerprintInfo.ModTime(), fingerprintAfter.ModTime())
	fingerprintAgain, err := os.ReadFile(cache.Location(f.output))
	require.NoError(t, err)
	assert.Equal(t, fingerprint, fingerprintAgain)
}

func TestTask_Execute_InputChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.task(config.New()).Execute(ctx, f.request())
	require.NoError(t, err)
	first, err := os.ReadFile(f.output)
	require.NoError(t, err)

	result, err := f.task(config.New(), WithVersion("0.2.0")).Execute(ctx, f.request())
	require.NoError(t, err)
	assert.False(t, result.Skipped, "tool version is part of the fingerprint")
	assert.Equal(t, 4, f.codec.reads)

	second, err := os.ReadFile(f.output)
	require.NoError(t, err)
	assert.Equal(t, first, second, "rewrite is deterministic")

	maskBytes, err := image.Write(fooModule(metadata.TypePublic, metadata.MethodFamily))
	require.NoError(t, err)
	f.masks[config.DefaultMaskResource] = maskBytes
	result, err = f.task(config.New(), WithVersion("0.2.0")).Execute(ctx, f.request())
	require.NoError(t, err)
	assert.False(t, result.Skipped, "mask is part of the fingerprint")
}

func TestTask_Execute_Documentation(t *testing.T) {
	f := newFixture(t)
	doc := []byte("<doc><members/></doc>")
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(f.target), "Game.xml"), doc, 0644))

	_, err := f.task(config.New()).Execute(context.Background(), f.request())
	require.NoError(t, err)
	copied, err := os.ReadFile(filepath.Join(f.objDir, "publicized.xml"))
	require.NoError(t, err)
	assert.Equal(t, doc, copied)
}

func TestTask_Execute_Exceptions(t *testing.T) {
	f := newFixture(t)
	cfg := config.New()
	cfg.Exceptions = []config.ExceptionRule{{Type: "Game.Foo", Member: "Bar", Reason: "Use Baz", Error: true}}

	result, err := f.task(cfg).Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Report.Deprecated)

	data, err := os.ReadFile(f.output)
	require.NoError(t, err)
	rewritten, err := image.Read(data)
	require.NoError(t, err)
	bar := rewritten.GetType("Game.Foo").FindMethods("Bar")[0]
	obsolete := metadata.FindCustomAttribute(bar.CustomAttributes, "System.ObsoleteAttribute")
	require.NotNil(t, obsolete)
	assert.Equal(t, []*metadata.Argument{metadata.StringArgument("Use Baz"), metadata.BoolArgument(true)}, obsolete.Arguments)
}

func TestTask_Execute_PackageReferences(t *testing.T) {
	f := newFixture(t)
	missing := NewItem(config.DefaultPackageName, map[string]string{"Version": "1.0.0"})

	var testCases = []struct {
		description     string
		references      []*Item
		expectSucceeded bool
		expectErr       error
	}{
		{
			description:     "package not referenced",
			references:      []*Item{NewItem("Other.Package", nil)},
			expectSucceeded: true,
		},
		{
			description: "package referenced twice",
			references:  []*Item{f.reference, NewItem(config.DefaultPackageName, f.reference.Metadata)},
			expectErr:   ErrDuplicatePackage,
		},
		{
			description: "target metadata missing",
			references:  []*Item{missing},
			expectErr:   ErrMissingMetadata,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			result, err := f.task(config.New()).Execute(context.Background(), f.request(testCase.references...))
			require.NoError(t, err)
			assert.Equal(t, testCase.expectSucceeded, result.Succeeded)
			assert.Nil(t, result.Output)
			if testCase.expectErr != nil {
				require.Len(t, result.Errors, 1)
				assert.True(t, errors.Is(result.Errors[0], testCase.expectErr))
			}
			_, statErr := os.Stat(f.output)
			assert.True(t, os.IsNotExist(statErr), "nothing is written")
		})
	}
}

func TestTask_Execute_Fatal(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.target, []byte("not an image\n"), 0644))

	result, err := f.task(config.New()).Execute(context.Background(), f.request())
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, image.ErrChecksum))
	_, statErr := os.Stat(cache.Location(f.output))
	assert.True(t, os.IsNotExist(statErr), "fingerprint is saved only after a successful rewrite")

	f = newFixture(t)
	_, err = f.task(config.New(), WithMaskSource(mask.Resources{})).Execute(context.Background(), f.request())
	assert.True(t, errors.Is(err, mask.ErrNotFound))
}

func TestItem(t *testing.T) {
	source := map[string]string{"b": "2", "a": "1"}
	item := NewItem("pkg", source)
	item.SetMetadata("c", "3")
	assert.Len(t, source, 2, "metadata is copied")
	assert.Equal(t, []string{"a", "b", "c"}, item.MetadataNames())

	dest := &Item{Identity: "out"}
	item.CopyMetadataTo(dest)
	dest.RemoveMetadata("b")
	assert.Equal(t, []string{"a", "c"}, dest.MetadataNames())
	_, ok := item.GetMetadata("b")
	assert.True(t, ok)
}
