package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GeneratedFile is a parsed generated publication file.
type GeneratedFile struct {
	Name        string
	Fields      map[string]string
	Weight      int
	YearHeading int // 0 when absent
}

// ListGenerated returns the names of generated publication files in
// dir, sorted. A missing directory yields no names.
func ListGenerated(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &IOError{Op: "read", Path: dir, Err: err}
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && IsGenerated(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadFile parses a generated publication file back into key/value
// form. Used by the check command to verify the output directory
// against the source table.
func ReadFile(path string) (*GeneratedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	body, err := stripDelimiters(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("%s: parsing front matter: %w", path, err)
	}

	gf := &GeneratedFile{
		Name:   filepath.Base(path),
		Fields: make(map[string]string, len(raw)),
	}
	for k, v := range raw {
		switch k {
		case "weight":
			w, ok := v.(int)
			if !ok {
				return nil, fmt.Errorf("%s: weight is not an integer", path)
			}
			gf.Weight = w
		case "year_heading":
			h, ok := v.(int)
			if !ok {
				return nil, fmt.Errorf("%s: year_heading is not an integer", path)
			}
			gf.YearHeading = h
		default:
			gf.Fields[k] = fmt.Sprintf("%v", v)
		}
	}

	if gf.Weight == 0 {
		return nil, fmt.Errorf("%s: missing weight", path)
	}
	return gf, nil
}

// stripDelimiters removes the opening and closing "---" marker lines.
func stripDelimiters(s string) (string, error) {
	s = strings.TrimRight(s, "\n")
	lines := strings.Split(s, "\n")
	if len(lines) < 2 || lines[0] != "---" || lines[len(lines)-1] != "---" {
		return "", fmt.Errorf("not a generated publication file (missing --- delimiters)")
	}
	return strings.Join(lines[1:len(lines)-1], "\n"), nil
}
