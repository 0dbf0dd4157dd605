package executor

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Tokenize splits a command line into words the way a POSIX shell would, removing
// quotes and backslash escapes. Nothing is expanded: parameter expansions, command
// substitutions and globs are kept as written.
func Tokenize(command string) ([]string, error) {
	file, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(command), "")
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize command: %w", err)
	}

	printer := syntax.NewPrinter()
	var tokens []string
	for _, stmt := range file.Stmts {
		call, ok := stmt.Cmd.(*syntax.CallExpr)
		if !ok || stmt.Negated || stmt.Background || len(stmt.Redirs) > 0 {
			return nil, fmt.Errorf("unsupported shell syntax at %s", stmt.Pos())
		}
		for _, assign := range call.Assigns {
			var sb strings.Builder
			if err := printer.Print(&sb, assign); err != nil {
				return nil, fmt.Errorf("failed to print assignment: %w", err)
			}
			tokens = append(tokens, sb.String())
		}
		for _, word := range call.Args {
			token, err := wordString(word, printer)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
		}
	}
	return tokens, nil
}

func wordString(word *syntax.Word, printer *syntax.Printer) (string, error) {
	var sb strings.Builder
	for _, part := range word.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(unescape(p.Value, nil))
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				if lit, ok := inner.(*syntax.Lit); ok {
					sb.WriteString(unescape(lit.Value, doubleQuoteEscapes))
					continue
				}
				if err := printer.Print(&sb, inner); err != nil {
					return "", fmt.Errorf("failed to print word: %w", err)
				}
			}
		default:
			if err := printer.Print(&sb, part); err != nil {
				return "", fmt.Errorf("failed to print word: %w", err)
			}
		}
	}
	return sb.String(), nil
}

// doubleQuoteEscapes are the characters a backslash escapes inside double quotes.
var doubleQuoteEscapes = map[rune]bool{'$': true, '`': true, '"': true, '\\': true, '\n': true}

// unescape removes backslash escapes. A nil set escapes every character.
func unescape(s string, escapable map[rune]bool) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var sb strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' || i+1 >= len(runes) {
			sb.WriteRune(r)
			continue
		}
		next := runes[i+1]
		if escapable != nil && !escapable[next] {
			sb.WriteRune(r)
			continue
		}
		i++
		if next != '\n' {
			sb.WriteRune(next)
		}
	}
	return sb.String()
}
