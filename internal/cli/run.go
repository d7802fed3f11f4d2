package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/discokit/disco-gen/pkg/config"
	"github.com/discokit/disco-gen/pkg/discovery"
	"github.com/discokit/disco-gen/pkg/gen"
	"github.com/discokit/disco-gen/pkg/runtime"
	"github.com/discokit/disco-gen/pkg/utils"
)

// GenerateParams carries the generate command's flag values.
type GenerateParams struct {
	Input         string
	ConfigPath    string
	Package       string
	Out           string
	RuntimeImport string
	Force         bool
}

// RunGenerate drives one generation: load the document from a file or URL,
// render the source unit and write it in one atomic step. It returns the
// path of the written file.
func RunGenerate(ctx context.Context, p GenerateParams) (string, error) {
	cfg, err := loadConfig(p.ConfigPath)
	if err != nil {
		return "", err
	}
	p = mergeConfig(p, cfg)

	doc, err := discovery.LoadWithClient(ctx, runtime.RobustHTTPClient(), p.Input)
	if err != nil {
		return "", err
	}
	return generateTo(p, doc)
}

// RunValidate checks that a document would generate cleanly: it runs the
// whole pipeline and discards the output, so it fails on exactly the
// inputs generate fails on.
func RunValidate(ctx context.Context, input string) error {
	doc, err := discovery.LoadWithClient(ctx, runtime.RobustHTTPClient(), input)
	if err != nil {
		return err
	}
	_, err = gen.NewGenerator(gen.Options{}).Generate(doc)
	return err
}

// generateTo renders doc and writes the unit for it.
func generateTo(p GenerateParams, doc *discovery.Document) (string, error) {
	src, err := gen.NewGenerator(gen.Options{
		PackageName:   p.Package,
		RuntimeImport: p.RuntimeImport,
	}).Generate(doc)
	if err != nil {
		return "", err
	}

	outPath := resolveOutputPath(p.Out, p.Input, doc)
	if !p.Force {
		if _, err := os.Stat(outPath); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
		}
	}
	if err := WriteFileAtomic(outPath, src); err != nil {
		return "", err
	}
	return outPath, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := &config.Config{}
		cfg.ApplyDefaults()
		return cfg, nil
	}
	return config.Load(path)
}

// mergeConfig fills flag values the user left unset from the config file.
func mergeConfig(p GenerateParams, cfg *config.Config) GenerateParams {
	if p.Package == "" {
		p.Package = cfg.Package
	}
	if p.Out == "" {
		p.Out = cfg.Out
	}
	if p.RuntimeImport == "" {
		p.RuntimeImport = cfg.RuntimeImport
	}
	return p
}

// resolveOutputPath decides where the unit lands: --out verbatim when it
// names a file, joined with the derived name when it names a directory,
// the derived name in the working directory otherwise.
func resolveOutputPath(out, input string, doc *discovery.Document) string {
	name := outputFileName(input, doc)
	if out == "" {
		return name
	}
	if fi, err := os.Stat(out); err == nil && fi.IsDir() {
		return filepath.Join(out, name)
	}
	if strings.HasSuffix(out, string(os.PathSeparator)) {
		return filepath.Join(out, name)
	}
	return out
}

// outputFileName derives the generated file's name: the input file's base
// name for local documents, the service name and version for URLs.
func outputFileName(input string, doc *discovery.Document) string {
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		name := doc.Name
		if doc.Version != "" {
			name += "_" + doc.Version
		}
		return utils.ToSnakeCase(name) + ".go"
	}
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return utils.ToSnakeCase(base) + ".go"
}

// WriteFileAtomic writes through a sibling temp file and renames it into
// place, so an interrupted run never leaves a half-written unit behind.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", tmp.Name(), err)
	}
	return nil
}
