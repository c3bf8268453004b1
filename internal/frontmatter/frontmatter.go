// Package frontmatter encodes and decodes the flat "key: value" metadata block
// that prefixes every stored recipe file.
//
// The format is deliberately simpler than YAML: values are never quoted or
// escaped, and list values are written as "[a, b]" but read back as plain
// strings. Callers that need the list form use SplitList.
package frontmatter

import "strings"

// Delimiter opens and closes the metadata block.
const Delimiter = "---"

const bom = "\ufeff"

// Field is a single metadata entry. List fields carry their items in List.
type Field struct {
	Key    string
	Value  string
	List   []string
	IsList bool
}

// Render returns the value as it appears after "key: " in the encoded block.
func (f Field) Render() string {
	if f.IsList {
		return "[" + strings.Join(f.List, ", ") + "]"
	}
	return f.Value
}

// Metadata is an insertion-ordered set of fields.
type Metadata struct {
	fields []Field
}

// Set stores a string field, replacing an existing field with the same key in place.
func (m *Metadata) Set(key, value string) {
	m.put(Field{Key: key, Value: value})
}

// SetList stores a list field, replacing an existing field with the same key in place.
func (m *Metadata) SetList(key string, items []string) {
	m.put(Field{Key: key, List: append([]string(nil), items...), IsList: true})
}

func (m *Metadata) put(f Field) {
	for i := range m.fields {
		if m.fields[i].Key == f.Key {
			m.fields[i] = f
			return
		}
	}
	m.fields = append(m.fields, f)
}

// Get returns the rendered value for key.
func (m Metadata) Get(key string) (string, bool) {
	for _, f := range m.fields {
		if f.Key == key {
			return f.Render(), true
		}
	}
	return "", false
}

// Fields returns a copy of the fields in insertion order.
func (m Metadata) Fields() []Field {
	return append([]Field(nil), m.fields...)
}

// Len returns the number of fields.
func (m Metadata) Len() int { return len(m.fields) }

// Map flattens the metadata into rendered string values.
func (m Metadata) Map() map[string]string {
	out := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		out[f.Key] = f.Render()
	}
	return out
}

// Encode renders the metadata block: opening delimiter, one line per field in
// insertion order, closing delimiter, and one blank separator line.
func Encode(m Metadata) string {
	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	for _, f := range m.fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Render())
		b.WriteString("\n")
	}
	b.WriteString(Delimiter + "\n\n")
	return b.String()
}

// Decode splits content into its metadata block and body. It never fails:
// content without an opening delimiter, or with an unterminated block, is
// returned unchanged as body with empty metadata.
//
// Values are decoded as trimmed strings only; "[a, b]" stays "[a, b]".
func Decode(content string) (Metadata, string) {
	text := strings.TrimPrefix(content, bom)

	first, rest, ok := cutLine(text)
	if first != Delimiter || !ok {
		return Metadata{}, content
	}

	var m Metadata
	for {
		line, next, found := cutLine(rest)
		if line == Delimiter {
			return m, trimSeparator(next)
		}
		if !found {
			return Metadata{}, content
		}
		if key, value, hasColon := strings.Cut(line, ":"); hasColon {
			if key = strings.TrimSpace(key); key != "" {
				m.Set(key, strings.TrimSpace(value))
			}
		}
		rest = next
	}
}

// SplitList reads a bracketed list value ("[a, b]") back into its items.
// Blank items are dropped; the result is never nil.
func SplitList(value string) []string {
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(strings.TrimPrefix(value, "["), "]")
	out := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// cutLine returns the first line of s (without its line ending), the rest of
// s after the newline, and whether a newline was found.
func cutLine(s string) (line, rest string, found bool) {
	line, rest, found = strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r"), rest, found
}

func trimSeparator(body string) string {
	if strings.HasPrefix(body, "\r\n") {
		return body[2:]
	}
	return strings.TrimPrefix(body, "\n")
}
