package scip

import (
	"regexp"
	"strings"
)

// SCIP symbols look like
//
//	rust-analyzer cargo my_crate 0.1.0 module/submodule/my_function().
//
// The first four space-separated fields are tool, package manager, package name
// and version; the rest is the symbol path. Methods on types use '#'
// (Type#method().) and generic parameters appear in angle brackets.

var genericsPattern = regexp.MustCompile(`<[^>]*>`)

// DisplayNameFromSymbol extracts the human-readable name from a symbol string.
func DisplayNameFromSymbol(symbol string) string {
	parts := strings.Split(symbol, " ")
	if len(parts) < 5 {
		return symbol
	}
	pathPart := strings.Join(parts[4:], " ")

	name := pathPart
	if idx := strings.LastIndex(pathPart, "/"); idx != -1 {
		name = pathPart[idx+1:]
	}
	name = strings.TrimSuffix(name, ".")
	return strings.TrimSuffix(name, "()")
}

// PathInfoFromSymbol splits a symbol into (fullPath, name, parentFolder),
// where fullPath is package::module::...::name.
func PathInfoFromSymbol(symbol string) (fullPath, name, parentFolder string) {
	parts := strings.Split(symbol, " ")
	if len(parts) < 5 {
		return symbol, "", ""
	}

	pkgName := parts[2]
	pathPart := strings.Join(parts[4:], " ")
	pathPart = strings.TrimSuffix(strings.TrimSuffix(pathPart, "."), "()")

	components := strings.Split(pathPart, "/")
	fullPath = pkgName + "::" + strings.Join(components, "::")
	name = components[len(components)-1]
	if len(components) > 1 {
		parentFolder = strings.Join(components[:len(components)-1], "::")
	} else {
		parentFolder = pkgName
	}
	return fullPath, name, parentFolder
}

// CleanIdentifier converts a raw symbol into a readable qualified path: the
// tool/package/version prefix is stripped, '/' and '#' become '::', generic
// parameters and trailing '()'/'.' are dropped, and the display name is
// appended when the path does not already end with it.
func CleanIdentifier(symbol, displayName string) string {
	s := symbol

	fields := strings.Fields(symbol)
	if len(fields) >= 2 && fields[1] == "cargo" {
		if pos := strings.Index(symbol, "cargo "); pos != -1 {
			s = symbol[pos+len("cargo "):]
		}
	}

	// Skip past the version field: first digit up to the following space.
	if pos := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }); pos != -1 {
		if spacePos := strings.Index(s[pos:], " "); spacePos != -1 {
			s = strings.TrimSpace(s[pos+spacePos+1:])
		}
	}

	path := strings.NewReplacer("impl#", "", "/", "::", "#", "::", "`", "").Replace(s)
	path = genericsPattern.ReplaceAllString(path, "")
	path = strings.TrimSuffix(path, ".")
	path = strings.TrimSuffix(path, "()")

	if path == displayName || strings.HasSuffix(path, "::"+displayName) {
		return path
	}
	return path + "::" + displayName
}
