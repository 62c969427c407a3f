package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestHTMLMinification checks that HTML is minified as expected
func TestHTMLMinification(t *testing.T) {
	m := newMinifier()

	input := `<html>
	<head>
		<title>Test</title>
	</head>
	<body>
		<p> Hello   World! </p>
	</body>
</html>`
	expected := `<title>Test</title><p>Hello World!`

	var b strings.Builder
	if err := m.Minify(mediaHTML, &b, strings.NewReader(input)); err != nil {
		t.Fatalf("HTML minification failed: %v", err)
	}
	got := strings.ReplaceAll(b.String(), "\n", "")
	if got != expected {
		t.Errorf("HTML minification mismatch:\nGot:      %q\nExpected: %q", got, expected)
	}
}

// TestCSSMinification checks that CSS is minified as expected
func TestCSSMinification(t *testing.T) {
	m := newMinifier()

	input := `
		body {
			color: #fff;
			margin: 0  ;
		}
	`
	expected := `body{color:#fff;margin:0}`

	got, err := m.String(mediaCSS, input)
	if err != nil {
		t.Fatalf("CSS minification failed: %v", err)
	}
	if got != expected {
		t.Errorf("CSS minification mismatch:\nGot:      %q\nExpected: %q", got, expected)
	}
}

// TestJSMinification checks that JavaScript is minified as expected
func TestJSMinification(t *testing.T) {
	m := newMinifier()

	input := `
		function add(a, b) {
			return a + b;
		}
	`
	expected := `function add(e,t){return e+t}`

	got, err := m.String(mediaJS, input)
	if err != nil {
		t.Fatalf("JS minification failed: %v", err)
	}
	if got != expected {
		t.Errorf("JS minification mismatch:\nGot:      %q\nExpected: %q", got, expected)
	}
}

func TestMediaTypeForPath(t *testing.T) {
	cases := map[string]string{
		"static/app.js":        mediaJS,
		"static/style.CSS":     mediaCSS,
		"templates/index.html": mediaHTML,
		"static/icon.png":      "",
	}
	for path, want := range cases {
		got, ok := mediaTypeForPath(path)
		if got != want || ok != (want != "") {
			t.Errorf("mediaTypeForPath(%q) = %q, %t; want %q", path, got, ok, want)
		}
	}
}

// TestMinifyDir mirrors a tree, minifying CSS and copying everything else
func TestMinifyDir(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dist", "static")

	if err := os.MkdirAll(filepath.Join(src, "img"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "style.css"), []byte("a {  color : red ; }"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "img", "tile.png"), []byte("PNGDATA"), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := minifyDir(newMinifier(), src, dst)
	if err != nil {
		t.Fatalf("minifyDir failed: %v", err)
	}
	if n != 2 {
		t.Errorf("minifyDir wrote %d files, want 2", n)
	}

	css, err := os.ReadFile(filepath.Join(dst, "style.css"))
	if err != nil {
		t.Fatal(err)
	}
	if string(css) != "a{color:red}" {
		t.Errorf("minified css = %q, want %q", css, "a{color:red}")
	}
	png, err := os.ReadFile(filepath.Join(dst, "img", "tile.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(png) != "PNGDATA" {
		t.Errorf("copied png = %q, want PNGDATA", png)
	}
}
