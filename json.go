package dumd

import (
	"encoding/json"
	"fmt"
)

type tokenJSON struct {
	Kind  string `json:"kind"`
	Char  string `json:"char,omitempty"`
	Count int    `json:"count,omitempty"`
	Text  string `json:"text,omitempty"`
}

func (t Token) MarshalJSON() ([]byte, error) {
	v := tokenJSON{Kind: t.Kind.String(), Text: t.Text}
	if t.Kind == tokenRun {
		v.Char, v.Count = string(t.Char), t.Count
	}
	return json.Marshal(v)
}

type linkJSON struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Ref   string `json:"ref,omitempty"`
	Image bool   `json:"image,omitempty"`
}

type elementJSON struct {
	Type    string          `json:"type"`
	Level   int             `json:"level,omitempty"`
	Kind    string          `json:"kind,omitempty"`
	Text    string          `json:"text,omitempty"`
	Lang    string          `json:"lang,omitempty"`
	Fence   int             `json:"fence,omitempty"`
	Link    *linkJSON       `json:"link,omitempty"`
	Name    string          `json:"name,omitempty"`
	Href    string          `json:"href,omitempty"`
	Title   string          `json:"title,omitempty"`
	Ordered bool            `json:"ordered,omitempty"`
	Start   int             `json:"start,omitempty"`
	Entries []listEntryJSON `json:"entries,omitempty"`
	Lines   [][]elementJSON `json:"lines,omitempty"`
}

type listEntryJSON struct {
	Content string   `json:"content"`
	Sub     []string `json:"sub,omitempty"`
}

func (l Link) toJSON() *linkJSON {
	v := &linkJSON{Name: l.name, Image: l.img}
	if l.src.kind == SourceURL {
		v.URL = l.src.value
	} else {
		v.Ref = l.src.value
	}
	return v
}

func elementToJSON(e Element) elementJSON {
	switch e := e.(type) {
	case Heading:
		return elementJSON{Type: "heading", Level: e.level.Int(), Text: e.content}
	case Code:
		return elementJSON{Type: "code", Lang: e.kind.TagString(), Fence: e.kind.Fence, Text: e.content}
	case Item:
		v := elementJSON{Type: "item", Kind: e.kind.String(), Text: e.text}
		if e.kind == ItemLink {
			v.Link = e.link.toJSON()
		}
		return v
	case Reference:
		return elementJSON{Type: "reference", Name: e.name, Href: e.href, Title: e.title}
	case List:
		v := elementJSON{Type: "list", Ordered: e.ordered, Start: e.start}
		for _, en := range e.entries {
			v.Entries = append(v.Entries, listEntryJSON{Content: en.content, Sub: en.sub})
		}
		return v
	case Paragraph:
		v := elementJSON{Type: "paragraph"}
		for _, line := range e.lines {
			out := make([]elementJSON, 0, len(line))
			for _, in := range line {
				out = append(out, elementToJSON(in))
			}
			v.Lines = append(v.Lines, out)
		}
		return v
	}
	return elementJSON{Type: "unknown", Text: e.String()}
}

func (h Heading) MarshalJSON() ([]byte, error)   { return json.Marshal(elementToJSON(h)) }
func (c Code) MarshalJSON() ([]byte, error)      { return json.Marshal(elementToJSON(c)) }
func (it Item) MarshalJSON() ([]byte, error)     { return json.Marshal(elementToJSON(it)) }
func (r Reference) MarshalJSON() ([]byte, error) { return json.Marshal(elementToJSON(r)) }
func (l List) MarshalJSON() ([]byte, error)      { return json.Marshal(elementToJSON(l)) }
func (p Paragraph) MarshalJSON() ([]byte, error) { return json.Marshal(elementToJSON(p)) }

type documentJSON struct {
	Meta   map[string]any `json:"meta,omitempty"`
	Blocks []elementJSON  `json:"blocks"`
}

// MarshalJSON encodes the decoded front matter and the blocks. Nested YAML
// maps are converted so that they encode as JSON objects.
func (d Document) MarshalJSON() ([]byte, error) {
	v := documentJSON{Blocks: make([]elementJSON, 0, len(d.Blocks))}
	if d.Meta != nil {
		v.Meta = jsonSafeMap(d.Meta)
	}
	for _, b := range d.Blocks {
		v.Blocks = append(v.Blocks, elementToJSON(b))
	}
	return json.Marshal(v)
}

func jsonSafeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = jsonSafe(v)
	}
	return out
}

func jsonSafe(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return jsonSafeMap(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = jsonSafe(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = jsonSafe(val)
		}
		return out
	}
	return v
}
