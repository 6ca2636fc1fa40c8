package tools

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
)

// NewListFilesTool creates the directory listing tool.
func NewListFilesTool() *Tool {
	return &Tool{
		Spec: ToolSpec{
			Name:        "list_files",
			Description: "List files in a given directory",
			Params: []ParameterSpec{
				{
					Name:        "path",
					Type:        ParamString,
					Description: "Directory path to list files from (defaults to current directory)",
					Default:     ".",
				},
			},
		},
		Run: func(_ context.Context, args map[string]any) (string, error) {
			path := ArgString(args, "path")

			info, err := os.Stat(path)
			if os.IsNotExist(err) {
				return "", &PathNotFoundError{Path: path}
			}
			if err != nil {
				return "", fmt.Errorf("listing files in '%s': %w", path, err)
			}
			if !info.IsDir() {
				return "", &NotADirectoryError{Path: path}
			}

			entries, err := os.ReadDir(path)
			if err != nil {
				return "", fmt.Errorf("listing files in '%s': %w", path, err)
			}
			if len(entries) == 0 {
				return fmt.Sprintf("Directory '%s' is empty", path), nil
			}

			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			sort.Strings(names)

			var b strings.Builder
			fmt.Fprintf(&b, "Files in '%s':\n", path)
			for i, name := range names {
				b.WriteString("- " + name)
				if i < len(names)-1 {
					b.WriteByte('\n')
				}
			}
			return b.String(), nil
		},
	}
}
