package postgres

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	preparedBinaryParam = "disable_prepared_binary_result"
	maxTraceQueryLen    = 512
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeDSN adds disable_prepared_binary_result=yes to URL-style DSNs
// unless the caller already set it. Key/value DSNs are returned as is.
func NormalizeDSN(dsn string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return dsn
	}
	parsed, err := url.Parse(dsn)
	if err != nil || parsed.Scheme == "" {
		return dsn
	}

	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return dsn
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// DatabaseName extracts the database name from either DSN form.
func DatabaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if parsed, err := url.Parse(dsn); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(dsn) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(value, `"' `); name != "" {
			return name
		}
	}
	return ""
}

// TraceQuery collapses whitespace and truncates statements recorded on spans.
func TraceQuery(query string) string {
	query = whitespaceRun.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(query) > maxTraceQueryLen {
		return query[:maxTraceQueryLen] + "..."
	}
	return query
}
