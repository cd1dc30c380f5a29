package format

import "strings"

// numberPattern is the parsed form of an Excel style number format such as
// "$#,0.00", "0.0%" or `0 "ms"`.
type numberPattern struct {
	prefix   string
	suffix   string
	decimals int
	grouping bool
	percent  bool
}

func isPlaceholder(r byte) bool {
	return r == '0' || r == '#'
}

func parseNumberPattern(format string) numberPattern {
	format = strings.TrimSpace(format)
	// multi section formats use the first (positive) section
	if i := strings.IndexByte(format, ';'); i >= 0 {
		format = format[:i]
	}

	first := strings.IndexFunc(format, func(r rune) bool { return r < 128 && isPlaceholder(byte(r)) })
	if first < 0 || strings.EqualFold(format, "general") {
		return numberPattern{grouping: true}
	}
	last := strings.LastIndexFunc(format, func(r rune) bool { return r < 128 && isPlaceholder(byte(r)) })

	core := format[first : last+1]
	p := numberPattern{
		prefix:   unquote(format[:first]),
		suffix:   unquote(format[last+1:]),
		grouping: strings.Contains(core, ","),
	}
	if dot := strings.IndexByte(core, '.'); dot >= 0 {
		for i := dot + 1; i < len(core); i++ {
			if isPlaceholder(core[i]) {
				p.decimals++
			}
		}
	}
	p.percent = strings.Contains(p.suffix, "%")
	return p
}

func unquote(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, `\`, "")
	return s
}

var standardDateLayouts = map[string]string{
	"d": "1/2/2006",
	"D": "Monday, January 2, 2006",
	"f": "Monday, January 2, 2006 3:04 PM",
	"F": "Monday, January 2, 2006 3:04:05 PM",
	"g": "1/2/2006 3:04 PM",
	"G": "1/2/2006 3:04:05 PM",
	"t": "3:04 PM",
	"T": "3:04:05 PM",
	"s": "2006-01-02T15:04:05",
	"u": "2006-01-02 15:04:05Z",
}

var dateTokens = map[string]string{
	"yyyy": "2006",
	"yy":   "06",
	"MMMM": "January",
	"MMM":  "Jan",
	"MM":   "01",
	"M":    "1",
	"dddd": "Monday",
	"ddd":  "Mon",
	"dd":   "02",
	"d":    "2",
	"HH":   "15",
	"H":    "15",
	"hh":   "03",
	"h":    "3",
	"mm":   "04",
	"m":    "4",
	"ss":   "05",
	"s":    "5",
	"tt":   "PM",
	"fff":  "000",
}

// dateLayout converts a .NET style date format to a Go time layout.
// It returns "" when the format carries no date tokens.
func dateLayout(format string) string {
	format = strings.TrimSpace(format)
	if layout, ok := standardDateLayouts[format]; ok {
		return layout
	}

	var b strings.Builder
	found := false
	for i := 0; i < len(format); {
		c := format[i]
		j := i
		for j < len(format) && format[j] == c {
			j++
		}
		run := format[i:j]
		if token, ok := dateTokens[run]; ok {
			b.WriteString(token)
			found = true
		} else if c == '"' || c == '\'' || c == '\\' {
			// quoting characters are dropped, the quoted text is kept
		} else {
			b.WriteString(run)
		}
		i = j
	}
	if !found {
		return ""
	}
	return b.String()
}
