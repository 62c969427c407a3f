package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// Media types understood by the minifier.
const (
	mediaCSS  = "text/css"
	mediaHTML = "text/html"
	mediaJS   = "application/javascript"
)

func main() {
	var (
		inputFile  = flag.String("input", "", "Input file path (single-file mode)")
		outputFile = flag.String("output", "", "Output file path (single-file mode)")
		fileType   = flag.String("type", "", "File type (CSS, JS, or HTML) for single-file mode")
		distDir    = flag.String("dist", "dist", "Output directory for templates/ and static/")
	)
	flag.Parse()

	m := newMinifier()

	if *inputFile != "" || *outputFile != "" {
		if *inputFile == "" || *outputFile == "" || *fileType == "" {
			log.Fatal("Usage: go run ./cmd/minify -input=<file> -output=<file> -type=<css|js|html>")
		}
		mediaType, ok := mediaTypeForName(*fileType)
		if !ok {
			log.Fatalf("Unsupported file type: %s (supported: css, js, html)", *fileType)
		}
		if err := minifyFile(m, *inputFile, *outputFile, mediaType); err != nil {
			log.Fatalf("Failed to minify %s: %v", *inputFile, err)
		}
		fmt.Printf("Successfully minified %s -> %s\n", *inputFile, *outputFile)
		return
	}

	for _, dir := range []string{"templates", "static"} {
		n, err := minifyDir(m, dir, filepath.Join(*distDir, dir))
		if err != nil {
			log.Fatalf("Failed to build %s: %v", dir, err)
		}
		fmt.Printf("Wrote %d files from %s/ to %s\n", n, dir, filepath.Join(*distDir, dir))
	}
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(mediaCSS, css.Minify)
	m.AddFunc(mediaHTML, html.Minify)
	m.AddFunc(mediaJS, js.Minify)
	return m
}

func mediaTypeForName(name string) (string, bool) {
	switch strings.ToLower(name) {
	case "css":
		return mediaCSS, true
	case "js":
		return mediaJS, true
	case "html":
		return mediaHTML, true
	}
	return "", false
}

// mediaTypeForPath picks the minifier from the file extension; other files
// are copied unchanged.
func mediaTypeForPath(path string) (string, bool) {
	return mediaTypeForName(strings.TrimPrefix(filepath.Ext(path), "."))
}

func minifyFile(m *minify.M, in, out, mediaType string) error {
	input, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	minified, err := m.Bytes(mediaType, input)
	if err != nil {
		return err
	}
	return os.WriteFile(out, minified, 0644)
}

func copyFile(in, out string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	return os.WriteFile(out, data, 0644)
}

// minifyDir mirrors src into dst, minifying what it can. It returns the
// number of files written.
func minifyDir(m *minify.M, src, dst string) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, rel)
		if mediaType, ok := mediaTypeForPath(path); ok {
			err = minifyFile(m, path, out, mediaType)
		} else {
			err = copyFile(path, out)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		count++
		return nil
	})
	return count, err
}
