// Package posts loads and normalizes the post records shown on cards.
//
// Post lists are read from JSON, YAML or TOML files. Each format accepts
// either a bare list or a document with a top-level "posts" key:
//
//	[[posts]]
//	title = "Hello"
//	date  = "2024-03-01"
//	path  = "2024/03/01/hello"
//
// Paths are normalized to start with "/" and end with ".html", matching the
// static-site layout the cards link into.
package posts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/orbitcards/pkg/errors"
)

// Supported source formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Post is one externally supplied record.
type Post struct {
	Title string `json:"title" yaml:"title" toml:"title"`
	Date  string `json:"date" yaml:"date" toml:"date"`
	Path  string `json:"path" yaml:"path" toml:"path"`
}

// dateLayouts are tried in order by [Post.Time].
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
}

// Time parses Date. It returns false if no known layout matches.
func (p Post) Time() (time.Time, bool) {
	s := strings.TrimSpace(p.Date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate formats Date for a card, falling back to the raw string.
func (p Post) DisplayDate() string {
	if t, ok := p.Time(); ok {
		return t.Format("Jan 2, 2006")
	}
	return p.Date
}

// Link resolves Path against origin. A post without a path yields a
// MISSING_LINK_TARGET error.
func (p Post) Link(origin string) (string, error) {
	if p.Path == "" {
		return "", errors.New(errors.ErrCodeMissingLinkTarget, "post %q has no path", p.Title)
	}
	base, err := url.Parse(origin)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse origin %q", origin)
	}
	ref, err := url.Parse(p.Path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMissingLinkTarget, err, "parse path of %q", p.Title)
	}
	return base.ResolveReference(ref).String(), nil
}

// NormalizePath ensures a non-empty path starts with "/" and ends with
// ".html". Empty paths are returned unchanged.
func NormalizePath(path string) string {
	if path == "" {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, ".html") {
		path += ".html"
	}
	return path
}

// Normalize returns a copy of posts with every path normalized.
func Normalize(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		p.Path = NormalizePath(p.Path)
		out[i] = p
	}
	return out
}

// Load reads and normalizes a post list from path, choosing the decoder by
// file extension. A missing file yields DATA_SOURCE_ABSENT.
func Load(path string) ([]Post, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeDataSourceAbsent, err, "post source %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPosts, err, "read %s", path)
	}
	return Decode(bytes.NewReader(data), format)
}

// FormatFromPath maps a file extension to a source format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported post source %q (want .json, .yaml or .toml)", path)
}

type document struct {
	Posts []Post `json:"posts" yaml:"posts" toml:"posts"`
}

// Decode reads a post list in the given format and normalizes it.
func Decode(r io.Reader, format string) ([]Post, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPosts, err, "read post source")
	}

	var list []Post
	switch format {
	case FormatJSON:
		list, err = decodeJSON(data)
	case FormatYAML:
		list, err = decodeYAML(data)
	case FormatTOML:
		var doc document
		_, err = toml.Decode(string(data), &doc)
		list = doc.Posts
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown post format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPosts, err, "decode %s posts", format)
	}
	if list == nil {
		list = []Post{}
	}
	return Normalize(list), nil
}

func decodeJSON(data []byte) ([]Post, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Post
		err := json.Unmarshal(trimmed, &list)
		return list, err
	}
	var doc document
	err := json.Unmarshal(trimmed, &doc)
	return doc.Posts, err
}

func decodeYAML(data []byte) ([]Post, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var list []Post
		err := root.Decode(&list)
		return list, err
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Posts, nil
}

// String implements fmt.Stringer for log output.
func (p Post) String() string {
	return fmt.Sprintf("%q (%s)", p.Title, p.Path)
}
