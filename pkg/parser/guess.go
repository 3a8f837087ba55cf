package parser

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// Editor mode-line expressions. Compiled once; effectively read-only.
var (
	emacsModeOnce sync.Once
	reEmacsMode   *regexp.Regexp
	reEmacsShort  *regexp.Regexp
	reVimFt       *regexp.Regexp
)

func modeRegexes() (*regexp.Regexp, *regexp.Regexp, *regexp.Regexp) {
	emacsModeOnce.Do(func() {
		reEmacsMode = regexp.MustCompile(`(?i)-\*-.*[^-\w]mode\s*:\s*([^:;\s]+)`)
		reEmacsShort = regexp.MustCompile(`-\*-\s*([^:;\s]+)\s*-\*-`)
		reVimFt = regexp.MustCompile(`(?i)vim\s*:.*[^\w]ft\s*=\s*([^:\s]+)`)
	})
	return reEmacsMode, reEmacsShort, reVimFt
}

// editorMode scans the first four lines of a buffer for an Emacs or Vim
// mode hint, then the last four lines for a Vim hint only, and returns the
// first hint found lowercased.
func editorMode(buf []byte) string {
	reMode, reShort, reVim := modeRegexes()

	head := bytes.SplitN(buf, []byte{'\n'}, 5)
	for i, line := range head {
		if i == 4 {
			break
		}
		if m := reMode.FindSubmatch(line); m != nil {
			return strings.ToLower(string(m[1]))
		}
		if m := reShort.FindSubmatch(line); m != nil {
			return strings.ToLower(string(m[1]))
		}
		if m := reVim.FindSubmatch(line); m != nil {
			return strings.ToLower(string(m[1]))
		}
	}

	tail := buf
	for i := 0; i < 4 && len(tail) > 0; i++ {
		var line []byte
		if idx := bytes.LastIndexByte(tail, '\n'); idx >= 0 {
			line = tail[idx+1:]
			tail = tail[:idx]
		} else {
			line = tail
			tail = nil
		}
		if m := reVim.FindSubmatch(line); m != nil {
			return strings.ToLower(string(m[1]))
		}
	}

	return ""
}

// languageFromMode maps an editor mode hint to a language.
func languageFromMode(mode string) Language {
	switch mode {
	case "python":
		return LangPython
	case "rust":
		return LangRust
	case "java":
		return LangJava
	case "go":
		return LangGo
	case "javascript", "js":
		return LangJavaScript
	case "typescript":
		return LangTypeScript
	case "c":
		return LangC
	case "c++", "cpp", "cc", "objc", "objc++", "objective-c", "objective-c++":
		return LangCPP
	default:
		return LangUnknown
	}
}

// fakeName returns the display name for extensions and modes whose real
// language is mapped onto another grammar.
func fakeName(ext, mode string) string {
	switch {
	case ext == "mm" || mode == "objc++" || mode == "objective-c++":
		return "obj-c/c++"
	case ext == "m" || mode == "objc" || mode == "objective-c":
		return "obj-c/c++"
	default:
		return ""
	}
}

// GuessLanguage guesses the language of a buffer using the file extension
// and the editor mode lines. The extension wins when the two disagree.
// Returns the detected language and its display name; the name may be
// non-empty even when the language is unknown.
func GuessLanguage(buf []byte, path string) (Language, string) {
	ext := strings.ToLower(strings.TrimPrefix(strings.ToLower(filepathExt(path)), "."))
	fromExt := DetectLanguage(path)

	mode := editorMode(buf)
	fromMode := languageFromMode(mode)

	switch {
	case fromExt != LangUnknown && fromMode != LangUnknown:
		if fromExt == fromMode {
			if name := fakeName(ext, mode); name != "" {
				return fromMode, name
			}
			return fromMode, fromMode.Name()
		}
		// Extensions are more trustworthy than stale mode lines.
		return fromExt, fromExt.Name()
	case fromExt != LangUnknown:
		if name := fakeName(ext, mode); name != "" {
			return fromExt, name
		}
		return fromExt, fromExt.Name()
	case fromMode != LangUnknown:
		if name := fakeName(ext, mode); name != "" {
			return fromMode, name
		}
		return fromMode, fromMode.Name()
	default:
		return LangUnknown, fakeName(ext, mode)
	}
}

func filepathExt(path string) string {
	if idx := strings.LastIndexByte(path, '.'); idx >= 0 && !strings.ContainsRune(path[idx:], '/') {
		return path[idx:]
	}
	return ""
}

// ReadSource reads a file, strips a leading BOM, rejects buffers whose head
// is not valid UTF-8, and normalizes trailing line endings to one newline.
func ReadSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	normalized, ok := NormalizeSource(data)
	if !ok {
		return nil, fmt.Errorf("binary or non-utf8 content: %s", path)
	}
	return normalized, nil
}

// NormalizeSource strips a BOM, validates the first 64 bytes as UTF-8, and
// collapses all trailing carriage returns and newlines into a single
// newline. Returns false when the buffer does not look like text.
func NormalizeSource(data []byte) ([]byte, bool) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		data = data[3:]
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}), bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		data = data[2:]
	}

	head := data
	if len(head) > 64 {
		head = head[:64]
		// The last rune may be split across the boundary.
		for len(head) > 0 && !utf8.RuneStart(head[len(head)-1]) {
			head = head[:len(head)-1]
		}
		if len(head) > 0 {
			head = head[:len(head)-1]
		}
	}
	if !utf8.Valid(head) {
		return nil, false
	}

	trimmed := len(data)
	for trimmed > 0 && (data[trimmed-1] == '\n' || data[trimmed-1] == '\r') {
		trimmed--
	}
	if trimmed == 0 {
		return []byte{}, true
	}
	out := make([]byte, trimmed, trimmed+1)
	copy(out, data[:trimmed])
	out = append(out, '\n')
	return out, true
}
