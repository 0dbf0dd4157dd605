package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Doc is the structured form of a method doc comment.
type Doc struct {
	Summary string // first line of the description
	Params  []ParamDoc
	Returns *ReturnDoc
}

// ParamDoc documents one parameter.
type ParamDoc struct {
	Name        string
	Type        string
	Description string
	Default     string
	HasDefault  bool
	Optional    bool
}

// ReturnDoc documents the return value.
type ReturnDoc struct {
	TypeName    string
	Description string
}

// DocParser turns raw doc text into a Doc.
type DocParser interface {
	Parse(raw string) (Doc, error)
}

// ErrEmptyDoc is returned when there is no doc text at all.
var ErrEmptyDoc = errors.New("empty doc comment")

// GoogleDocParser parses doc comments laid out as a description followed by
// "Args:" and "Returns:" sections:
//
//	ToHex converts the state to hex.
//
//	Args:
//	  - delimiter (string, optional): separator. Defaults to "".
//
//	Returns:
//	  - Chepy: the Chepy object.
type GoogleDocParser struct{}

const (
	sectionNone    = ""
	sectionArgs    = "args"
	sectionReturns = "returns"
	sectionOther   = "other"
)

var (
	sectionPattern = regexp.MustCompile(`^([A-Z][A-Za-z ]*):$`)
	paramPattern   = regexp.MustCompile(`^(\w+)\s*(?:\(([^)]*)\))?\s*:\s*(.*)$`)
	returnPattern  = regexp.MustCompile(`^([^:\s][^:]*?)\s*:\s*(.*)$`)
	defaultPattern = regexp.MustCompile(`(?i)\bdefaults? to\s+(.+?)\.?\s*$`)
)

var sections = map[string]string{
	"args":       sectionArgs,
	"arguments":  sectionArgs,
	"params":     sectionArgs,
	"parameters": sectionArgs,
	"returns":    sectionReturns,
	"return":     sectionReturns,
	"raises":     sectionOther,
	"example":    sectionOther,
	"examples":   sectionOther,
	"notes":      sectionOther,
}

// Parse implements DocParser.
func (GoogleDocParser) Parse(raw string) (Doc, error) {
	if strings.TrimSpace(raw) == "" {
		return Doc{}, ErrEmptyDoc
	}

	var (
		doc        Doc
		summary    string
		section    = sectionNone
		itemIndent = -1
		lastParam  = -1
	)

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := sectionPattern.FindStringSubmatch(trimmed); m != nil {
			if s, ok := sections[strings.ToLower(m[1])]; ok {
				section = s
				itemIndent, lastParam = -1, -1
				continue
			}
		}

		switch section {
		case sectionNone:
			if summary == "" {
				summary = trimmed
			}

		case sectionArgs:
			if trimmed == "" {
				continue
			}
			indent := len(line) - len(strings.TrimLeft(line, " \t"))
			if itemIndent < 0 {
				itemIndent = indent
			}
			if indent > itemIndent && lastParam >= 0 {
				p := &doc.Params[lastParam]
				p.Description = strings.TrimSpace(p.Description + " " + trimmed)
				applyDefault(p)
				continue
			}
			param, err := parseParam(trimListMarker(trimmed))
			if err != nil {
				return Doc{}, err
			}
			doc.Params = append(doc.Params, param)
			lastParam = len(doc.Params) - 1

		case sectionReturns:
			if trimmed == "" {
				continue
			}
			if doc.Returns != nil {
				doc.Returns.Description = strings.TrimSpace(doc.Returns.Description + " " + trimmed)
				continue
			}
			doc.Returns = parseReturn(trimListMarker(trimmed))
		}
	}

	doc.Summary = summary
	return doc, nil
}

func trimListMarker(s string) string {
	for _, marker := range []string{"- ", "* "} {
		if strings.HasPrefix(s, marker) {
			return strings.TrimSpace(s[len(marker):])
		}
	}
	return s
}

func parseParam(item string) (ParamDoc, error) {
	m := paramPattern.FindStringSubmatch(item)
	if m == nil {
		return ParamDoc{}, fmt.Errorf("malformed parameter entry %q", item)
	}

	param := ParamDoc{Name: m[1], Description: strings.TrimSpace(m[3])}
	for i, part := range strings.Split(m[2], ",") {
		part = strings.TrimSpace(part)
		switch {
		case i == 0:
			param.Type = part
		case part == "optional":
			param.Optional = true
		}
	}
	applyDefault(&param)
	return param, nil
}

func applyDefault(p *ParamDoc) {
	m := defaultPattern.FindStringSubmatch(p.Description)
	if m == nil {
		return
	}
	p.Default = unquote(strings.TrimSpace(m[1]))
	p.HasDefault = true
}

func unquote(s string) string {
	if len(s) >= 2 {
		switch {
		case s[0] == '"' && s[len(s)-1] == '"':
			if v, err := strconv.Unquote(s); err == nil {
				return v
			}
			return s[1 : len(s)-1]
		case s[0] == '\'' && s[len(s)-1] == '\'':
			return s[1 : len(s)-1]
		}
	}
	return s
}

func parseReturn(item string) *ReturnDoc {
	if m := returnPattern.FindStringSubmatch(item); m != nil {
		return &ReturnDoc{TypeName: m[1], Description: strings.TrimSpace(m[2])}
	}
	return &ReturnDoc{Description: item}
}
