package load

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/syssam/regen/feature"
	"github.com/syssam/regen/gen"
	"github.com/syssam/regen/naming"
	"github.com/syssam/regen/registry"
	"github.com/syssam/regen/rewriter"
)

// DefaultJobFile is the job file name looked up when none is given.
const DefaultJobFile = "regen.yaml"

// Job is a declarative generation job. Relative paths are resolved against
// the directory of the job file.
//
//	version: 1.21.4
//	registries: generated/reports/registries.json
//	features: features.yaml
//	root: paper-api/src/main/java
//	mirror:
//	  dir: registryid
//	targets:
//	  - class: org.bukkit.Material
//	    rewriters:
//	      - {registry: block, pattern: Blocks, keyed: true}
type Job struct {
	Version    string       `yaml:"version"`
	Registries string       `yaml:"registries"`
	Features   string       `yaml:"features"`
	Root       string       `yaml:"root"`
	Workers    int          `yaml:"workers"`
	Mirror     *MirrorSpec  `yaml:"mirror"`
	Targets    []TargetSpec `yaml:"targets"`

	dir string
}

// MirrorSpec configures the Go registry mirror.
type MirrorSpec struct {
	Dir        string   `yaml:"dir"`
	Package    string   `yaml:"package"`
	Registries []string `yaml:"registries"`
}

// TargetSpec is one Java source file. File defaults to the source path of
// Class under the job root.
type TargetSpec struct {
	Class     string         `yaml:"class"`
	File      string         `yaml:"file"`
	Rewriters []RewriterSpec `yaml:"rewriters"`
}

// RewriterSpec configures one enum region of a target.
type RewriterSpec struct {
	// Class overrides the target class for this region.
	Class    string `yaml:"class"`
	Registry string `yaml:"registry"`
	Pattern  string `yaml:"pattern"`
	Keyed    bool   `yaml:"keyed"`
	// Naming is a naming style name; upper_snake when empty.
	Naming string `yaml:"naming"`
}

// ReadJob reads a job file.
func ReadJob(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	job, err := ParseJob(f, filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	return job, nil
}

// ParseJob decodes a job document whose relative paths are resolved
// against dir.
func ParseJob(r io.Reader, dir string) (*Job, error) {
	job := &Job{dir: dir}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(job); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty job file")
		}
		return nil, fmt.Errorf("decode job: %w", err)
	}
	if job.Registries == "" {
		return nil, errors.New("registries: path is required")
	}
	for i, t := range job.Targets {
		if t.Class == "" && t.File == "" {
			return nil, fmt.Errorf("targets[%d]: class or file is required", i)
		}
		if len(t.Rewriters) == 0 {
			return nil, fmt.Errorf("targets[%d]: no rewriters", i)
		}
	}
	return job, nil
}

// Path resolves p against the job directory.
func (j *Job) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(j.dir, p)
}

// Inputs returns the files a generation depends on besides the targets:
// the registry dump and the policy file.
func (j *Job) Inputs() []string {
	in := []string{j.Path(j.Registries)}
	if j.Features != "" {
		in = append(in, j.Path(j.Features))
	}
	return in
}

// Config reads the job inputs and builds a generation config. Extra
// options are applied last.
func (j *Job) Config(opts ...gen.Option) (*gen.Config, error) {
	var (
		policy   *feature.Policy
		required Required
	)
	if j.Features != "" {
		feats, err := ReadPolicy(j.Path(j.Features))
		if err != nil {
			return nil, err
		}
		policy, required = feats.Policy, feats.Required
	}

	access, err := ReadDump(j.Path(j.Registries), required)
	if err != nil {
		return nil, err
	}

	root := j.dir
	if j.Root != "" {
		root = j.Path(j.Root)
	}
	all := []gen.Option{
		gen.WithRoot(root),
		gen.WithVersion(j.Version),
		gen.WithWorkers(j.Workers),
	}

	for i, ts := range j.Targets {
		target, err := j.target(access, policy, ts)
		if err != nil {
			return nil, fmt.Errorf("load: targets[%d]: %w", i, err)
		}
		all = append(all, gen.WithTargets(target))
	}

	if m := j.Mirror; m != nil {
		keys := make([]registry.Location, 0, len(m.Registries))
		for _, name := range m.Registries {
			key, err := registry.ParseLocation(name)
			if err != nil {
				return nil, fmt.Errorf("load: mirror: %w", err)
			}
			keys = append(keys, key)
		}
		all = append(all, gen.WithMirror(access, j.Path(m.Dir), m.Package, keys...))
	}

	return gen.NewConfig(append(all, opts...)...)
}

// target builds fresh rewriters for one file; rewriters are never shared
// between targets.
func (j *Job) target(access *registry.Access, policy *feature.Policy, ts TargetSpec) (gen.Target, error) {
	var class rewriter.TypeRef
	if ts.Class != "" {
		var err error
		if class, err = rewriter.ParseTypeRef(ts.Class); err != nil {
			return gen.Target{}, err
		}
	}

	file := ts.File
	if file == "" {
		file = class.SourcePath()
	}
	file = filepath.FromSlash(file)

	t := gen.Target{File: file}
	for _, rs := range ts.Rewriters {
		r, err := newRewriter(access, policy, class, rs)
		if err != nil {
			return gen.Target{}, fmt.Errorf("rewriter %q: %w", rs.Pattern, err)
		}
		t.Rewriters = append(t.Rewriters, r)
	}
	return t, nil
}

func newRewriter(access *registry.Access, policy *feature.Policy, class rewriter.TypeRef, rs RewriterSpec) (rewriter.Rewriter, error) {
	if rs.Class != "" {
		var err error
		if class, err = rewriter.ParseTypeRef(rs.Class); err != nil {
			return nil, err
		}
	}
	if class.Name == "" {
		return nil, errors.New("class is required")
	}
	key, err := registry.ParseLocation(rs.Registry)
	if err != nil {
		return nil, err
	}
	style, err := naming.ParseStyle(rs.Naming)
	if err != nil {
		return nil, err
	}
	return rewriter.NewEnumRegistry[Entry](access, class, key, rs.Pattern, rs.Keyed,
		rewriter.WithPolicy[Entry](policy),
		rewriter.WithNamingStyle[Entry](style),
	)
}
