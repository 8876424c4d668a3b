package app

import (
	"net/url"
	"path/filepath"
	"strings"
)

func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

// dbNameFromURL extracts the database name for trace attributes. Plain
// sqlite paths yield the file name without extension.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if path, ok := sqlitePath(trimmed); ok {
		return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}

func sqlitePath(raw string) (string, bool) {
	if strings.HasPrefix(raw, "file:") {
		path, _, _ := strings.Cut(strings.TrimPrefix(raw, "file:"), "?")
		return path, path != ""
	}
	if raw == "" || strings.Contains(raw, "://") || strings.Contains(raw, "=") {
		return "", false
	}
	return raw, true
}
