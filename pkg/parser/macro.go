package parser

// Predefined compiler macros that are blanked even when they do not appear
// in any collected macro set.
var predefinedMacros = map[string]struct{}{
	"__has_include":          {},
	"__has_include_next":     {},
	"__has_feature":          {},
	"__has_extension":        {},
	"__has_cpp_attribute":    {},
	"__has_c_attribute":      {},
	"__has_attribute":        {},
	"__has_declspec_attribute": {},
	"__has_builtin":          {},
	"__has_warning":          {},
	"__is_identifier":        {},
	"__building_module":      {},
	"__is_target_arch":       {},
	"__is_target_vendor":     {},
	"__is_target_os":         {},
	"__is_target_environment": {},
}

func isIdentStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isKnownMacro(name string, macros map[string]struct{}) bool {
	if _, ok := macros[name]; ok {
		return true
	}
	_, ok := predefinedMacros[name]
	return ok
}

// BlankMacros rewrites every maximal identifier that names a known macro
// into an equal-length run of '$' bytes. Byte offsets, and therefore all
// downstream spans, are unchanged. Returns nil when nothing was replaced.
func BlankMacros(code []byte, macros map[string]struct{}) []byte {
	var out []byte
	codeStart := 0
	identStart := -1

	replace := func(start, end int) {
		name := string(code[start:end])
		if !isKnownMacro(name, macros) {
			return
		}
		if out == nil {
			out = make([]byte, 0, len(code))
		}
		out = append(out, code[codeStart:start]...)
		for i := start; i < end; i++ {
			out = append(out, '$')
		}
		codeStart = end
	}

	for i := 0; i < len(code); i++ {
		c := code[i]
		if identStart >= 0 {
			if !isIdentPart(c) {
				replace(identStart, i)
				identStart = -1
			}
		} else if isIdentStart(c) {
			identStart = i
		}
	}
	if identStart >= 0 {
		replace(identStart, len(code))
	}

	if out == nil {
		return nil
	}
	if codeStart < len(code) {
		out = append(out, code[codeStart:]...)
	}
	return out
}
