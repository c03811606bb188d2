// Package langdetect guesses the language of code block content. It uses
// go-enry together with a few strong textual patterns, and is used to decide
// whether an unlabelled code block holds TeX math.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for detected languages.
const (
	LangTeX  = "tex"
	LangText = "text"

	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langHTML       = "html"
	langBash       = "bash"
)

// texCommandRegexp matches constructs that rarely appear outside TeX math.
var texCommandRegexp = regexp.MustCompile(
	`\\(?:begin|end)\{|` +
		`\\(?:frac|dfrac|tfrac|sqrt|sum|prod|int|oint|lim|infty|partial|nabla|` +
		`cdot|cdots|ldots|times|leq|geq|neq|approx|equiv|pm|mp|` +
		`alpha|beta|gamma|delta|epsilon|varepsilon|theta|lambda|mu|pi|sigma|phi|omega|` +
		`Gamma|Delta|Theta|Lambda|Sigma|Phi|Omega|` +
		`mathbb|mathrm|mathbf|mathcal|operatorname|left|right|over|binom)\b|` +
		`[\^_]\{`,
)

// classifierCandidates are the languages offered to the enry classifier.
var classifierCandidates = []string{
	"TeX", "Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "C", "SQL", "JSON", "YAML", "HTML", "Markdown",
}

// Detect returns the detected language for code content as a lower-case
// fence tag. Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return LangText
	}

	// Strategy 1: Check shebang first (most reliable).
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	// Strategy 2: Check for language-specific patterns before using classifier.
	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Strategy 3: Only use the classifier result if it is unambiguous.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// IsTeX reports whether content is detected as TeX.
func IsTeX(content []byte) bool {
	return Detect(content) == LangTeX
}

// detectByPattern checks patterns that are highly indicative of a language.
// Programming languages are checked first so that code containing
// backslashes is not mistaken for TeX.
func detectByPattern(content []byte) string {
	contentStr := string(content)
	trimmed := bytes.TrimSpace(content)

	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return langGo
	}
	if lang := detectPython(contentStr); lang != "" {
		return lang
	}
	if lang := detectHTML(trimmed); lang != "" {
		return lang
	}
	if lang := detectJSON(trimmed); lang != "" {
		return lang
	}
	if texCommandRegexp.Match(content) {
		return LangTeX
	}
	if lang := detectJavaScript(contentStr); lang != "" {
		return lang
	}

	return ""
}

// detectPython checks for Python language patterns.
func detectPython(contentStr string) string {
	// def/class definitions with colon.
	if strings.Contains(contentStr, "def ") && strings.Contains(contentStr, "):") {
		return langPython
	}
	// Python dunder variables.
	if strings.Contains(contentStr, "__name__") || strings.Contains(contentStr, "__main__") {
		return langPython
	}
	return ""
}

// detectHTML checks for HTML language patterns.
func detectHTML(trimmed []byte) string {
	lowerTrimmed := bytes.ToLower(trimmed)
	if bytes.Contains(lowerTrimmed, []byte("<!doctype html")) ||
		bytes.Contains(lowerTrimmed, []byte("<html")) ||
		bytes.Contains(lowerTrimmed, []byte("<body>")) {
		return langHTML
	}
	return ""
}

// detectJSON checks for JSON patterns.
func detectJSON(trimmed []byte) string {
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`":`)) {
		return langJSON
	}
	return ""
}

// detectJavaScript checks for JavaScript patterns.
func detectJavaScript(contentStr string) string {
	if strings.Contains(contentStr, "=>") ||
		strings.Contains(contentStr, "console.log") {
		return langJavaScript
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
