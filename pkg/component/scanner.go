package component

import (
	"strings"
	"unicode"
)

// scanTemplate extracts the top-level identifiers a template references so
// definitions can check them against declared fields and props up front.
// It understands {{ output }} and {% control %} tags, skips string and
// numeric literals, filter names, attribute lookups, and loop-local
// variables, and reports unterminated tags as errors.
//
// The scan is intentionally shallow: it resolves which names a template
// needs, not whether the expressions using them are well formed. Expression
// errors surface from the engine at render time.
func scanTemplate(template string) ([]string, error) {
	var (
		refs   []string
		seen   = make(map[string]struct{})
		locals = make(map[string]struct{})
	)

	rest := template
	for {
		open := strings.IndexAny(rest, "{")
		if open < 0 || open+1 >= len(rest) {
			break
		}
		switch rest[open+1] {
		case '{':
			end := strings.Index(rest[open+2:], "}}")
			if end < 0 {
				return nil, &TemplateError{Reason: "unterminated {{ tag"}
			}
			expr := rest[open+2 : open+2+end]
			collectRoots(expr, locals, seen, &refs)
			rest = rest[open+2+end+2:]
		case '%':
			end := strings.Index(rest[open+2:], "%}")
			if end < 0 {
				return nil, &TemplateError{Reason: "unterminated {% tag"}
			}
			tag := rest[open+2 : open+2+end]
			collectTagRoots(tag, locals, seen, &refs)
			rest = rest[open+2+end+2:]
		case '#':
			end := strings.Index(rest[open+2:], "#}")
			if end < 0 {
				return nil, &TemplateError{Reason: "unterminated {# tag"}
			}
			rest = rest[open+2+end+2:]
		default:
			rest = rest[open+1:]
		}
	}

	// Closers with no opener are plain text to the engine, so they pass
	// through here untouched.
	return refs, nil
}

// keywords the expression grammar treats as operators or literals rather
// than variable lookups.
var exprKeywords = map[string]struct{}{
	"and": {}, "or": {}, "not": {}, "in": {}, "is": {},
	"true": {}, "false": {}, "True": {}, "False": {},
	"nil": {}, "none": {}, "None": {},
}

// names the engine provides at render time, never resolved against the
// declared schema. forloop carries the loop metadata (Counter, First, ...)
// inside {% for %} bodies.
var engineBuiltins = map[string]struct{}{
	"forloop": {},
}

// tags whose trailing identifiers name blocks or macros, not variables.
var namedTags = map[string]struct{}{
	"block": {}, "endblock": {}, "macro": {}, "endmacro": {},
	"filter": {}, "endfilter": {}, "cycle": {},
}

func collectRoots(expr string, locals, seen map[string]struct{}, refs *[]string) {
	tokens := tokenize(expr)
	for i, tok := range tokens {
		if !isIdentifier(tok) {
			continue
		}
		if i > 0 && (tokens[i-1] == "." || tokens[i-1] == "|" || tokens[i-1] == ":") {
			continue
		}
		addRoot(tok, locals, seen, refs)
	}
}

func collectTagRoots(tag string, locals, seen map[string]struct{}, refs *[]string) {
	tokens := tokenize(tag)
	if len(tokens) == 0 {
		return
	}

	switch name := tokens[0]; name {
	case "for":
		// {% for a, b in expr %}: identifiers before "in" are loop locals.
		inAt := -1
		for i, tok := range tokens {
			if tok == "in" {
				inAt = i
				break
			}
		}
		if inAt < 0 {
			return
		}
		for _, tok := range tokens[1:inAt] {
			if isIdentifier(tok) {
				locals[tok] = struct{}{}
			}
		}
		collectRoots(strings.Join(tokens[inAt+1:], " "), locals, seen, refs)
	case "set", "with":
		// {% set name = expr %}: the left-hand side becomes a local.
		eqAt := -1
		for i, tok := range tokens {
			if tok == "=" {
				eqAt = i
				break
			}
		}
		if eqAt < 0 {
			return
		}
		for _, tok := range tokens[1:eqAt] {
			if isIdentifier(tok) {
				locals[tok] = struct{}{}
			}
		}
		collectRoots(strings.Join(tokens[eqAt+1:], " "), locals, seen, refs)
	default:
		if _, named := namedTags[name]; named {
			return
		}
		collectRoots(strings.Join(tokens[1:], " "), locals, seen, refs)
	}
}

func addRoot(name string, locals, seen map[string]struct{}, refs *[]string) {
	if _, keyword := exprKeywords[name]; keyword {
		return
	}
	if _, builtin := engineBuiltins[name]; builtin {
		return
	}
	if _, local := locals[name]; local {
		return
	}
	if _, dup := seen[name]; dup {
		return
	}
	seen[name] = struct{}{}
	*refs = append(*refs, name)
}

func tokenize(expr string) []string {
	var tokens []string
	runes := []rune(expr)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '"' || r == '\'':
			quote := r
			j := i + 1
			for j < len(runes) && runes[j] != quote {
				if runes[j] == '\\' {
					j++
				}
				j++
			}
			if j < len(runes) {
				j++
			}
			i = j
		case isIdentStart(r):
			j := i + 1
			for j < len(runes) && isIdentPart(runes[j]) {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
		case unicode.IsDigit(r):
			j := i + 1
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			i = j
		default:
			tokens = append(tokens, string(r))
			i++
		}
	}
	return tokens
}

func isIdentifier(tok string) bool {
	if tok == "" {
		return false
	}
	for i, r := range tok {
		if i == 0 && !isIdentStart(r) {
			return false
		}
		if i > 0 && !isIdentPart(r) {
			return false
		}
	}
	return true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
