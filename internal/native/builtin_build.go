// buildManifest reads a YAML project manifest and exposes its fields as a
// ClassInstance, grounded on spec.md §1's mention of an external build tool
// companion to the language. github.com/goccy/go-yaml is a teacher indirect
// dependency (pulled in transitively, never exercised by the teacher's own
// code) promoted to direct use here.
package native

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/nola/internal/value"
)

func init() {
	Default.Register("buildManifest", nativeBuildManifest)
}

// nativeBuildManifest reads the YAML file named by args[0] and returns its
// top-level mapping as a ClassInstance named "Manifest". Nested mappings and
// sequences are folded the same way builtin_json.go folds JSON.
func nativeBuildManifest(args []value.Value) value.Value {
	if len(args) != 1 || args[0].Kind != value.String {
		return value.Null()
	}
	raw, err := os.ReadFile(args[0].S)
	if err != nil {
		return value.Null()
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return value.Null()
	}

	fields := make(map[string]value.Value, len(doc))
	for k, v := range doc {
		fields[k] = yamlToValue(v)
	}
	return value.NewClass(&value.ClassInstance{
		ClassName: "Manifest",
		Fields:    fields,
		Methods:   map[string]string{},
	})
}

func yamlToValue(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.NewBool(t)
	case int:
		return value.NewInt(int64(t))
	case int64:
		return value.NewInt(t)
	case uint64:
		return value.NewInt(int64(t))
	case float64:
		return value.NewFloat(float32(t))
	case string:
		return value.NewString(t)
	case []interface{}:
		elems := make([]value.Value, len(t))
		for i, e := range t {
			elems[i] = yamlToValue(e)
		}
		return value.NewVec(value.NewVector(elems))
	case map[string]interface{}:
		fields := make(map[string]value.Value, len(t))
		for k, e := range t {
			fields[k] = yamlToValue(e)
		}
		return value.NewClass(&value.ClassInstance{
			ClassName: "ManifestSection",
			Fields:    fields,
			Methods:   map[string]string{},
		})
	default:
		return value.Null()
	}
}
