// Package workload loads the items a pacer run dispatches.
package workload

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// Load reads items from a workload file.
//
// format "lines" yields one item per non-empty line. format "json"
// selects an array from a JSON document with a gjson path ("requests" or
// "requests.#.url"); an empty path means the document root must be an
// array. Items are returned as strings in file order.
func Load(path, format, jsonPath string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload: %w", err)
	}

	switch format {
	case "", "lines":
		return fromLines(string(data)), nil
	case "json":
		return fromJSON(data, jsonPath)
	default:
		return nil, fmt.Errorf("unknown workload format %q", format)
	}
}

func fromLines(data string) []string {
	var items []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

func fromJSON(data []byte, path string) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("workload is not valid JSON")
	}

	var result gjson.Result
	if path == "" {
		result = gjson.ParseBytes(data)
	} else {
		result = gjson.GetBytes(data, path)
		if !result.Exists() {
			return nil, fmt.Errorf("workload path %q matched nothing", path)
		}
	}

	if !result.IsArray() {
		return nil, fmt.Errorf("workload path %q does not select an array", path)
	}

	var items []string
	for _, el := range result.Array() {
		items = append(items, el.String())
	}
	return items, nil
}
