package params

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a parameter file on top of the defaults.
//
// Files ending in .yaml or .yml are read as YAML, anything else as a
// PMU conf file.
func Load(path string) (Params, error) {
	p := Default()

	f, err := os.Open(path)
	if err != nil {
		return p, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = ReadYAML(f, &p)
	default:
		err = ReadConf(f, &p)
	}
	if err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}

	return p, p.Validate()
}

// ReadYAML sets every top-level key of a YAML mapping.
func ReadYAML(r io.Reader, p *Params) error {
	var m map[string]interface{}
	err := yaml.NewDecoder(r).Decode(&m)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		err = p.Set(k, m[k])
		if err != nil {
			return err
		}
	}
	return nil
}

var (
	rxEntry = regexp.MustCompile(`^\s*([^\s=#]+)\s*=\s*([^#]*)`)
	rxVar   = regexp.MustCompile(`\$\((\w*)\)`)
)

// ReadConf reads "name = value" lines. Text after # is a comment and
// $(name) expands to a value defined earlier in the file or already in p.
func ReadConf(r io.Reader, p *Params) error {
	defined := make(map[string]string)
	lookup := func(name string) (string, bool) {
		if v, ok := defined[name]; ok {
			return v, true
		}
		return p.Get(name)
	}

	s := bufio.NewScanner(r)
	var n int
	for s.Scan() {
		n++
		line := s.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		m := rxEntry.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, value := m[1], strings.TrimSpace(m[2])
		if value == "" {
			continue
		}

		var undefined string
		value = rxVar.ReplaceAllStringFunc(value, func(ref string) string {
			v, ok := lookup(rxVar.FindStringSubmatch(ref)[1])
			if !ok {
				undefined = ref
			}
			return v
		})
		if undefined != "" {
			return fmt.Errorf("line %d: undefined variable %s", n, undefined)
		}

		err := p.Set(name, value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		defined[name] = value
	}

	return s.Err()
}
