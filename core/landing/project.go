package landing

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

const (
	descriptorFile  = "pom.xml"
	defaultBuildDir = "target"
)

// Project is a Maven project and the modules of its reactor.
type Project struct {
	ArtifactID string
	Name       string
	Packaging  string
	BuildDir   string
	Modules    []Module
}

// Aggregator reports whether the project builds other modules.
func (p *Project) Aggregator() bool {
	return p.Packaging == "pom"
}

type descriptor struct {
	artifactID  string
	name        string
	description string
	packaging   string
	modules     []string
}

// LoadProject reads the project descriptor in dir and, recursively, those
// of the modules it lists.
func LoadProject(dir string) (*Project, error) {
	d, err := readDescriptor(dir)
	if err != nil {
		return nil, err
	}
	p := &Project{
		ArtifactID: d.artifactID,
		Name:       d.name,
		Packaging:  d.packaging,
		BuildDir:   filepath.Join(dir, defaultBuildDir),
	}
	if p.Name == "" {
		p.Name = p.ArtifactID
	}

	seen := map[string]bool{filepath.Clean(dir): true}
	if err := p.addModules(dir, d.modules, seen); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) addModules(dir string, names []string, seen map[string]bool) error {
	for _, name := range names {
		mdir := filepath.Clean(filepath.Join(dir, filepath.FromSlash(name)))
		if seen[mdir] {
			continue
		}
		seen[mdir] = true

		d, err := readDescriptor(mdir)
		if err != nil {
			return err
		}
		p.Modules = append(p.Modules, Module{
			ArtifactID:  d.artifactID,
			Description: d.description,
			BuildDir:    filepath.Join(mdir, defaultBuildDir),
		})
		if err := p.addModules(mdir, d.modules, seen); err != nil {
			return err
		}
	}
	return nil
}

func readDescriptor(dir string) (*descriptor, error) {
	path := filepath.Join(dir, descriptorFile)

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{CharsetReader: charset.NewReaderLabel}
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	root := doc.SelectElement("project")
	if root == nil {
		return nil, fmt.Errorf("%s: no <project> element", path)
	}

	text := func(tag string) string {
		if e := root.SelectElement(tag); e != nil {
			return strings.TrimSpace(e.Text())
		}
		return ""
	}
	d := &descriptor{
		artifactID:  text("artifactId"),
		name:        text("name"),
		description: text("description"),
		packaging:   text("packaging"),
	}
	if d.artifactID == "" {
		d.artifactID = filepath.Base(dir)
	}
	if d.packaging == "" {
		d.packaging = "jar"
	}
	if modules := root.SelectElement("modules"); modules != nil {
		for _, m := range modules.SelectElements("module") {
			if name := strings.TrimSpace(m.Text()); name != "" {
				d.modules = append(d.modules, name)
			}
		}
	}
	return d, nil
}
