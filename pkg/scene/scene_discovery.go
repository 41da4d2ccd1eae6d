package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// SceneInfo describes a scene that can be rendered
type SceneInfo struct {
	Name        string // Built-in name or file name without extension
	DisplayName string // Human readable name
	Description string // Optional description
	Type        string // "builtin" or "nff"
	FilePath    string // Path to the NFF file (nff type only)
}

// metadataReaders bounds how many scene files are read at once
const metadataReaders = 8

// ListNFFScenes scans dir for .nff files and reads their header metadata
func ListNFFScenes(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.nff"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, len(files))
	var g errgroup.Group
	g.SetLimit(metadataReaders)
	for i, filePath := range files {
		i, filePath := i, filePath
		g.Go(func() error {
			info, err := ParseNFFMetadata(filePath)
			if err != nil {
				return fmt.Errorf("failed to read metadata for %s: %w", filePath, err)
			}
			scenes[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the NFF scenes in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	var all []SceneInfo
	for _, name := range BuiltinSceneNames() {
		all = append(all, SceneInfo{
			Name:        name,
			DisplayName: titleCase(name),
			Type:        "builtin",
		})
	}

	nffScenes, err := ListNFFScenes(dir)
	if err != nil {
		return nil, err
	}
	return append(all, nffScenes...), nil
}

// ParseNFFMetadata extracts metadata from the comment lines at the top of an
// NFF file:
//
//	# Scene: Mount
//	# Description: Fractal mountain with four glass spheres
func ParseNFFMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		Name:        nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Type:        "nff",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if v, ok := strings.CutPrefix(content, "Scene:"); ok {
			info.DisplayName = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(v)
		}
	}

	return info, scanner.Err()
}

func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
