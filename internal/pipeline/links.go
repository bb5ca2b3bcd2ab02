package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveRelativePaths turns relative img[src] and a[href] paths into
// file:// URLs under baseDir. The PDF printer loads the book from a temp
// file, so images referenced by the preface would not be found otherwise.
// An empty baseDir returns the content unchanged.
//
// Anchors, URLs, absolute paths and paths escaping baseDir are left alone.
func ResolveRelativePaths(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}

	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	root, fragment, err := parse(htmlContent)
	if err != nil {
		return "", err
	}

	walk(root, func(n *html.Node) {
		switch n.DataAtom {
		case atom.Img:
			resolveAttr(n, "src", absDir)
		case atom.A:
			resolveAttr(n, "href", absDir)
		}
	})

	return render(root, fragment)
}

// MissingAnchors returns the in-page links ("#T03") whose target id does not
// exist in htmlContent, in document order without duplicates.
func MissingAnchors(htmlContent string) ([]string, error) {
	root, _, err := parse(htmlContent)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool)
	var hrefs []string
	walk(root, func(n *html.Node) {
		for _, a := range n.Attr {
			switch {
			case a.Key == "id":
				ids[a.Val] = true
			case a.Key == "href" && n.DataAtom == atom.A && strings.HasPrefix(a.Val, "#"):
				hrefs = append(hrefs, a.Val)
			}
		}
	})

	var missing []string
	seen := make(map[string]bool)
	for _, h := range hrefs {
		target, err := url.PathUnescape(h[1:])
		if err != nil {
			target = h[1:]
		}
		if ids[target] || seen[h] {
			continue
		}
		seen[h] = true
		missing = append(missing, h)
	}
	return missing, nil
}

// parse reads a full document or a body fragment. Fragments are collected
// under a synthetic document node so both cases walk the same way.
func parse(content string) (root *html.Node, fragment bool, err error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		root, err = html.Parse(strings.NewReader(content))
		return root, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}
	root = &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

// render writes the tree back. Fragments render their top-level nodes only,
// so no <html><body> wrapper appears.
func render(root *html.Node, fragment bool) (string, error) {
	var buf strings.Builder
	if !fragment {
		if err := html.Render(&buf, root); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// walk calls fn for every element node, depth first.
func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func resolveAttr(n *html.Node, key, dir string) {
	for i, a := range n.Attr {
		if a.Key != key || !isRelativePath(a.Val) {
			continue
		}
		abs := filepath.Join(dir, a.Val)
		if !isPathUnderDir(abs, dir) {
			continue
		}
		n.Attr[i].Val = pathToFileURL(abs)
	}
}

// isRelativePath reports whether p is a local relative path.
func isRelativePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") {
		return false
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false // http:, mailto:, data:, file: (a one-letter scheme is a drive)
	}
	return !filepath.IsAbs(p)
}

func isPathUnderDir(p, dir string) bool {
	dir = filepath.Clean(dir)
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(p)+string(filepath.Separator), dir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(p string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
	return u.String()
}
