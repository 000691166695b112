// Package task sequences a publicize run: it resolves the target from package references,
// gates on the content fingerprint, rewrites the target against the mask and declares the
// rewritten artifact as output.
package task

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/publicizer/cache"
	"github.com/viant/publicizer/config"
	"github.com/viant/publicizer/mask"
	"github.com/viant/publicizer/metadata"
	"github.com/viant/publicizer/metadata/image"
	"github.com/viant/publicizer/publicizer"
	"github.com/viant/publicizer/version"
)

var (
	// ErrDuplicatePackage is reported when the package is referenced more than once
	ErrDuplicatePackage = errors.New("duplicate package reference")
	// ErrMissingMetadata is reported when the package reference lacks the assembly metadata
	ErrMissingMetadata = errors.New("missing package metadata")
)

const documentationExt = ".xml"

// Codec reads and writes modules
type Codec interface {
	Read(data []byte) (*metadata.Module, error)
	Write(module *metadata.Module) ([]byte, error)
}

// Request represents task inputs
type Request struct {
	IntermediateOutputPath string
	PackageReferences      []*Item
}

// Result represents task outcome; configuration problems fail the result, not the call
type Result struct {
	Succeeded bool
	Errors    []error
	Output    *Item // Rewritten artifact reference, nil when nothing was declared
	Skipped   bool  // Fingerprint matched the previous run
	Digest    string
	Report    *publicizer.Report
}

func (r *Result) fail(err error) *Result {
	r.Succeeded = false
	r.Errors = append(r.Errors, err)
	return r
}

// Task publicizes a target assembly against the mask
type Task struct {
	config  *config.Config
	fs      afs.Service
	codec   Codec
	mask    mask.Source
	store   *cache.Store
	logger  zerolog.Logger
	version string
}

// New creates a task
func New(cfg *config.Config, options ...Option) *Task {
	if cfg == nil {
		cfg = config.New()
	}
	t := &Task{
		config:  cfg,
		codec:   image.New(),
		logger:  zerolog.Nop(),
		version: version.Informational(),
	}
	for _, option := range options {
		option(t)
	}
	if t.fs == nil {
		t.fs = afs.New()
	}
	if t.mask == nil {
		t.mask = mask.NewStorage(t.fs, map[string]string{cfg.MaskResource: cfg.MaskLocation})
	}
	t.store = cache.NewStore(t.fs)
	return t
}

// Execute runs the task; returned error means the run was aborted by a fatal condition
func (t *Task) Execute(ctx context.Context, request *Request) (*Result, error) {
	result := &Result{Succeeded: true}
	pkg, err := t.resolvePackage(request.PackageReferences)
	if err != nil {
		t.logger.Error().Err(err).Msg("invalid package reference")
		return result.fail(err), nil
	}
	if pkg == nil {
		return result, nil
	}
	targetURL, _ := pkg.GetMetadata(t.config.AssemblyMetadata)
	outputURL := url.Join(request.IntermediateOutputPath, t.config.OutputName)

	targetBytes, err := t.fs.DownloadWithURL(ctx, targetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read target %v: %w", targetURL, err)
	}
	maskBytes, err := t.mask.Open(ctx, t.config.MaskResource)
	if err != nil {
		return nil, err
	}

	digest := cache.Fingerprint(t.version, maskBytes, targetBytes)
	result.Digest = digest.String()
	skip, err := t.store.Gate(ctx, outputURL, digest)
	if err != nil {
		return nil, err
	}
	if skip {
		result.Skipped = true
		t.logger.Info().Str("target", targetURL).Msg("already publicized, skipping")
	} else {
		t.logger.Info().Str("target", targetURL).Msg("publicizing")
		if result.Report, err = t.publicize(ctx, targetBytes, maskBytes, outputURL); err != nil {
			return nil, err
		}
		if err = t.copyDocumentation(ctx, targetURL, outputURL); err != nil {
			return nil, err
		}
		if err = t.store.Save(ctx, outputURL, digest); err != nil {
			return nil, err
		}
		t.logger.Info().
			Str("target", targetURL).
			Int("types", result.Report.Types).
			Int("methods", result.Report.Methods).
			Int("fields", result.Report.Fields).
			Msg("publicized")
	}

	result.Output = NewItem(outputURL, nil)
	pkg.CopyMetadataTo(result.Output)
	result.Output.RemoveMetadata(t.config.ReferenceAssemblyMetadata)
	return result, nil
}

func (t *Task) resolvePackage(references []*Item) (*Item, error) {
	var matched []*Item
	for _, item := range references {
		if item.Identity == t.config.PackageName {
			matched = append(matched, item)
		}
	}
	switch len(matched) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("%w: specified %v package more than once", ErrDuplicatePackage, t.config.PackageName)
	}
	pkg := matched[0]
	if _, ok := pkg.GetMetadata(t.config.AssemblyMetadata); !ok {
		return nil, fmt.Errorf("%w: the %q property needs to be specified for the %v package", ErrMissingMetadata, t.config.AssemblyMetadata, t.config.PackageName)
	}
	return pkg, nil
}

func (t *Task) publicize(ctx context.Context, targetBytes, maskBytes []byte, outputURL string) (*publicizer.Report, error) {
	target, err := t.codec.Read(targetBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to load target module: %w", err)
	}
	maskModule, err := t.codec.Read(maskBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to load mask module: %w", err)
	}
	service := publicizer.New(
		publicizer.WithExceptions(t.config.ExceptionTable()),
		publicizer.WithLogger(t.logger),
	)
	report := service.Publicize(target, maskModule)
	data, err := t.codec.Write(target)
	if err != nil {
		return nil, fmt.Errorf("failed to build %v: %w", outputURL, err)
	}
	if err = t.fs.Upload(ctx, outputURL, os.FileMode(0644), bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to write %v: %w", outputURL, err)
	}
	return report, nil
}

func (t *Task) copyDocumentation(ctx context.Context, targetURL, outputURL string) error {
	source := changeExtension(targetURL, documentationExt)
	ok, err := t.fs.Exists(ctx, source)
	if err != nil || !ok {
		return err
	}
	dest := changeExtension(outputURL, documentationExt)
	if err = t.fs.Copy(ctx, source, dest); err != nil {
		return fmt.Errorf("failed to copy documentation %v: %w", source, err)
	}
	return nil
}

func changeExtension(location, ext string) string {
	return strings.TrimSuffix(location, path.Ext(location)) + ext
}
