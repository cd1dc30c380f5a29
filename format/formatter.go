package format

import (
	"strconv"
	"time"

	"github.com/uyouii/percentile-chart/model"
	"github.com/uyouii/percentile-chart/utils"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// MaxDecimals bounds the fraction digits of a number formatter.
	MaxDecimals = 15

	DefaultDateLayout     = "2006-01-02"
	DefaultDateTimeLayout = "2006-01-02 15:04"
)

// ValueFormatter turns a data value into display text. Implementations are
// pure: the same value always yields the same text.
type ValueFormatter interface {
	Format(v float64) string
}

// Func adapts a function to ValueFormatter.
type Func func(v float64) string

func (f Func) Format(v float64) string { return f(v) }

type Options struct {
	// Format is the column format string, Excel style for numbers and
	// .NET style for dates.
	Format string
	Kind   model.ValueKind
	// Precision is the number of decimals, it overrides the decimals of
	// Format when positive.
	Precision int
	// Min and Max bound the values that will be formatted, they choose the
	// display unit and the default date layout.
	Min, Max float64
}

// New builds the formatter for opts.
func New(opts Options) ValueFormatter {
	if opts.Kind == model.TemporalValue {
		return newDateFormatter(opts)
	}
	return newNumberFormatter(opts)
}

type NumberFormatter struct {
	pattern  numberPattern
	unit     DisplayUnit
	decimals int
	printer  *message.Printer
}

func newNumberFormatter(opts Options) *NumberFormatter {
	pattern := parseNumberPattern(opts.Format)
	f := &NumberFormatter{
		pattern:  pattern,
		unit:     NoUnit,
		decimals: pattern.decimals,
		printer:  message.NewPrinter(language.English),
	}
	if opts.Precision > 0 {
		f.decimals = opts.Precision
	}
	f.decimals = min(f.decimals, MaxDecimals)
	if !pattern.percent {
		f.unit = ChooseDisplayUnit(opts.Min, opts.Max)
	}
	return f
}

func (f *NumberFormatter) Unit() DisplayUnit {
	return f.unit
}

func (f *NumberFormatter) Format(v float64) string {
	if f.pattern.percent {
		v *= 100
	}
	v /= f.unit.Value
	// no "-0" for values that round to zero
	if utils.RoundFloat(v, f.decimals) == 0 {
		v = 0
	}

	var text string
	if f.pattern.grouping {
		text = f.printer.Sprint(number.Decimal(v,
			number.MinFractionDigits(f.decimals), number.MaxFractionDigits(f.decimals)))
	} else {
		text = strconv.FormatFloat(v, 'f', f.decimals, 64)
	}
	return f.pattern.prefix + text + f.unit.Suffix + f.pattern.suffix
}

type DateFormatter struct {
	layout string
}

func newDateFormatter(opts Options) *DateFormatter {
	layout := dateLayout(opts.Format)
	if layout == "" {
		layout = DefaultDateTimeLayout
		if opts.Max-opts.Min >= float64((24 * time.Hour).Milliseconds()) {
			layout = DefaultDateLayout
		}
	}
	return &DateFormatter{layout: layout}
}

func (f *DateFormatter) Layout() string {
	return f.layout
}

// Format expects unix milliseconds and formats in UTC.
func (f *DateFormatter) Format(v float64) string {
	return model.MillisToTime(v).Format(f.layout)
}
