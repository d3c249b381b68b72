// Package assets provides embedded default pipeline definitions.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed pipelines/*.yaml
var pipelinesFS embed.FS

// LoadPipeline returns the YAML definition of a pipeline by name.
// Override lookup order: project .lmchat/pipelines/ > user
// ~/.lmchat/pipelines/ > embedded default.
func LoadPipeline(name string) ([]byte, error) {
	filename := name + ".yaml"

	projectPath := filepath.Join(".lmchat", "pipelines", filename)
	if data, err := os.ReadFile(projectPath); err == nil {
		return data, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".lmchat", "pipelines", filename)
		if data, err := os.ReadFile(userPath); err == nil {
			return data, nil
		}
	}

	data, err := pipelinesFS.ReadFile("pipelines/" + filename)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q not found", name)
	}
	return data, nil
}

// PipelineNames returns the names of all embedded pipelines.
func PipelineNames() ([]string, error) {
	entries, err := fs.ReadDir(pipelinesFS, "pipelines")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names, nil
}
