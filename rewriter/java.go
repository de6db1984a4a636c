package rewriter

import (
	"bufio"
	"fmt"
	"path"
	"strings"
)

// TypeRef names a Java type. Name may be nested ("ApiStatus.Experimental").
type TypeRef struct {
	Package string
	Name    string
}

// ParseTypeRef splits a fully qualified name on the first upper case
// segment: "org.jetbrains.annotations.ApiStatus.Experimental" has package
// "org.jetbrains.annotations" and name "ApiStatus.Experimental".
func ParseTypeRef(fqn string) (TypeRef, error) {
	segments := strings.Split(fqn, ".")
	for i, s := range segments {
		if s == "" {
			return TypeRef{}, fmt.Errorf("rewriter: invalid type name %q", fqn)
		}
		if s[0] >= 'A' && s[0] <= 'Z' {
			return TypeRef{
				Package: strings.Join(segments[:i], "."),
				Name:    strings.Join(segments[i:], "."),
			}, nil
		}
	}
	return TypeRef{}, fmt.Errorf("rewriter: no type segment in %q", fqn)
}

// MustParseTypeRef is like ParseTypeRef but panics on error.
func MustParseTypeRef(fqn string) TypeRef {
	t, err := ParseTypeRef(fqn)
	if err != nil {
		panic(err)
	}
	return t
}

// TopLevel returns the outermost class name.
func (t TypeRef) TopLevel() string {
	top, _, _ := strings.Cut(t.Name, ".")
	return top
}

// String returns the fully qualified name.
func (t TypeRef) String() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// SourcePath returns the path of the file declaring the type, relative to
// a source root: org.bukkit.Material is declared in org/bukkit/Material.java.
func (t TypeRef) SourcePath() string {
	return path.Join(append(strings.Split(t.Package, "."), t.TopLevel()+".java")...)
}

// ImportSet holds the package and single-type imports of a Java file.
type ImportSet struct {
	pkg       string
	types     map[string]bool
	wildcards map[string]bool
}

// ParseImports scans a Java source for its package and import declarations.
// Static imports are ignored.
func ParseImports(src string) *ImportSet {
	s := &ImportSet{types: make(map[string]bool), wildcards: make(map[string]bool)}
	sc := bufio.NewScanner(strings.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "package "):
			s.pkg = strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(line, "package ")), ";")
		case strings.HasPrefix(line, "import static "):
		case strings.HasPrefix(line, "import "):
			name := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(line, "import ")), ";")
			if pkg, ok := strings.CutSuffix(name, ".*"); ok {
				s.wildcards[pkg] = true
			} else {
				s.types[name] = true
			}
		case strings.HasPrefix(line, "public "), strings.HasPrefix(line, "@"):
			// Imports precede the first declaration.
			return s
		}
	}
	return s
}

// Package returns the declared package.
func (s *ImportSet) Package() string {
	if s == nil {
		return ""
	}
	return s.pkg
}

// Imported reports whether t can be referenced by its simple name.
func (s *ImportSet) Imported(t TypeRef) bool {
	if t.Package == "java.lang" {
		return true
	}
	if s == nil {
		return false
	}
	return t.Package == s.pkg ||
		s.types[t.Package+"."+t.TopLevel()] ||
		s.wildcards[t.Package]
}

// Reference returns how t is written in the file: its simple name when
// imported, its fully qualified name otherwise.
func (s *ImportSet) Reference(t TypeRef) string {
	if s.Imported(t) {
		return t.Name
	}
	return t.String()
}
