package shadow

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Runtime string       `yaml:"runtime"`
	MinAPI  int          `yaml:"minApi"`
	MaxAPI  int          `yaml:"maxApi,omitempty"`
	Shadows []shadowFile `yaml:"shadows"`
}

type shadowFile struct {
	Kind    string      `yaml:"kind"`
	Name    string      `yaml:"name"`
	Base    string      `yaml:"base,omitempty"`
	Fields  []fieldFile `yaml:"fields"`
	Statics []fieldFile `yaml:"statics,omitempty"`
	Methods []string    `yaml:"methods,omitempty"`
}

type fieldFile struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadCatalogFile reads a YAML catalog from filePath.
func LoadCatalogFile(filePath string) (*Catalog, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file - %w", err)
	}
	defer f.Close()

	return LoadCatalog(f)
}

// LoadCatalog parses a YAML catalog describing the shadows of another
// runtime version. Shadows refer to their base by kind and may appear
// in any order.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var cf catalogFile

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	err := decoder.Decode(&cf)
	if err != nil {
		return nil, &Error{
			Kind:   KindInvalidShadow,
			Detail: "failed to decode catalog",
			Cause:  err,
		}
	}

	decls := make(map[Kind]shadowFile, len(cf.Shadows))
	for _, sf := range cf.Shadows {
		kind, err := parseDeclaredKind(sf.Name, "kind", sf.Kind)
		if err != nil {
			return nil, err
		}

		if _, dup := decls[kind]; dup {
			return nil, invalidShadow(sf.Name, "kind "+kind.String()+" is declared more than once")
		}

		decls[kind] = sf
	}

	b := catalogBuilder{
		decls:    decls,
		built:    make(map[Kind]*Type, len(decls)),
		visiting: make(map[Kind]bool),
	}

	for _, kind := range Kinds() {
		if _, hasIt := decls[kind]; !hasIt {
			continue
		}

		_, err := b.build(kind)
		if err != nil {
			return nil, err
		}
	}

	return NewCatalog(RuntimeVersion{
		Runtime: cf.Runtime,
		MinAPI:  cf.MinAPI,
		MaxAPI:  cf.MaxAPI,
	}, b.built)
}

type catalogBuilder struct {
	decls    map[Kind]shadowFile
	built    map[Kind]*Type
	visiting map[Kind]bool
}

func (o *catalogBuilder) build(kind Kind) (*Type, error) {
	if t, done := o.built[kind]; done {
		return t, nil
	}

	sf := o.decls[kind]

	if o.visiting[kind] {
		return nil, invalidShadow(sf.Name, "base chain contains a cycle")
	}
	o.visiting[kind] = true
	defer delete(o.visiting, kind)

	var opts []TypeOption

	if sf.Base != "" {
		baseKind, err := parseDeclaredKind(sf.Name, "base", sf.Base)
		if err != nil {
			return nil, err
		}

		if _, hasIt := o.decls[baseKind]; !hasIt {
			return nil, invalidShadow(sf.Name, "base kind "+baseKind.String()+" is not declared")
		}

		base, err := o.build(baseKind)
		if err != nil {
			return nil, err
		}

		opts = append(opts, WithBase(base))
	}

	fields, err := parseFields(sf.Name, sf.Fields)
	if err != nil {
		return nil, err
	}

	statics, err := parseFields(sf.Name, sf.Statics)
	if err != nil {
		return nil, err
	}

	opts = append(opts, WithStatics(statics...), WithMethods(sf.Methods...))

	t, err := NewType(sf.Name, fields, opts...)
	if err != nil {
		return nil, err
	}

	o.built[kind] = t

	return t, nil
}

// parseDeclaredKind parses a kind named by a catalog file. Unknown
// names are invalid shadows, not configuration errors.
func parseDeclaredKind(shadowName string, key string, s string) (Kind, error) {
	kind, err := ParseKind(s)
	if err != nil {
		return 0, invalidShadow(shadowName, fmt.Sprintf("unknown %s '%s'", key, s))
	}
	return kind, nil
}

func parseFields(shadowName string, ffs []fieldFile) ([]Field, error) {
	fields := make([]Field, 0, len(ffs))

	for _, ff := range ffs {
		kind, err := ParseFieldKind(ff.Type)
		if err != nil {
			return nil, &Error{
				Kind:   KindInvalidShadow,
				Shadow: shadowName,
				Field:  ff.Name,
				Cause:  err,
			}
		}

		fields = append(fields, F(ff.Name, kind))
	}

	return fields, nil
}

// MarshalCatalog encodes c in the format read by LoadCatalog.
func MarshalCatalog(c *Catalog) ([]byte, error) {
	kindOf := make(map[*Type]Kind, len(c.shadows))
	for k, t := range c.shadows {
		kindOf[t] = k
	}

	cf := catalogFile{
		Runtime: c.version.Runtime,
		MinAPI:  c.version.MinAPI,
		MaxAPI:  c.version.MaxAPI,
	}

	for _, k := range c.Kinds() {
		t := c.shadows[k]

		sf := shadowFile{
			Kind:    k.String(),
			Name:    t.name,
			Fields:  marshalFields(t.fields),
			Statics: marshalFields(t.statics),
			Methods: t.Methods(),
		}

		if t.base != nil {
			baseKind, hasIt := kindOf[t.base]
			if !hasIt {
				return nil, invalidShadow(t.name, "base "+t.base.name+" is not cataloged")
			}
			sf.Base = baseKind.String()
		}

		cf.Shadows = append(cf.Shadows, sf)
	}

	buf := bytes.NewBuffer(nil)
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)

	err := encoder.Encode(cf)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog - %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to flush catalog encoder - %w", err)
	}

	return buf.Bytes(), nil
}

func marshalFields(fields []Field) []fieldFile {
	if len(fields) == 0 {
		return nil
	}

	out := make([]fieldFile, len(fields))
	for i, f := range fields {
		out[i] = fieldFile{Name: f.Name, Type: f.Kind.String()}
	}
	return out
}
