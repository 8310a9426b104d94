package waterfall

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/waterfall/pkg/errors"
)

// LabelKind identifies the variant held by a LabelMode.
type LabelKind int

const (
	LabelValues LabelKind = iota // thousands-separated integer delta
	LabelNone                    // no labels
	LabelFixed                   // the same text on every bar
	LabelList                    // one explicit label per bar
)

func (k LabelKind) String() string {
	switch k {
	case LabelValues:
		return "values"
	case LabelNone:
		return "none"
	case LabelFixed:
		return "text"
	case LabelList:
		return "list"
	default:
		return fmt.Sprintf("LabelKind(%d)", int(k))
	}
}

// allowedLabelModes is quoted in configuration errors.
const allowedLabelModes = "true|values, false|none, text:<label>, list:<a,b,...>"

// LabelMode selects the text drawn above each bar. The zero value shows
// values.
type LabelMode struct {
	kind  LabelKind
	text  string
	items []string
}

// ValueLabels labels each bar with its delta truncated to an integer and
// grouped by thousands ("-3,000").
func ValueLabels() LabelMode { return LabelMode{kind: LabelValues} }

// NoLabels disables bar labels.
func NoLabels() LabelMode { return LabelMode{kind: LabelNone} }

// FixedLabel puts s on every bar.
func FixedLabel(s string) LabelMode { return LabelMode{kind: LabelFixed, text: s} }

// ListLabels gives bar i the label items[i]. The list must have one entry
// per record, including the trailing one.
func ListLabels(items ...string) LabelMode {
	return LabelMode{kind: LabelList, items: append([]string(nil), items...)}
}

// ListLabelsOf is ListLabels for arbitrary values, formatted with fmt.Sprint.
func ListLabelsOf[T any](items []T) LabelMode {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = fmt.Sprint(it)
	}
	return LabelMode{kind: LabelList, items: out}
}

// Kind returns the variant of m.
func (m LabelMode) Kind() LabelKind { return m.kind }

// Enabled reports whether labels are drawn at all.
func (m LabelMode) Enabled() bool { return m.kind != LabelNone }

// String returns the textual form accepted by ParseLabelMode.
func (m LabelMode) String() string {
	switch m.kind {
	case LabelValues:
		return "values"
	case LabelNone:
		return "none"
	case LabelFixed:
		return "text:" + m.text
	case LabelList:
		return "list:" + strings.Join(m.items, ",")
	default:
		return m.kind.String()
	}
}

// ParseLabelMode reads a label mode from text:
//
//	true, values, ""    value labels
//	false, none         no labels
//	text:<label>        the same label on every bar
//	list:<a,b,...>      explicit comma-separated labels
func ParseLabelMode(s string) (LabelMode, error) {
	if label, ok := strings.CutPrefix(s, "text:"); ok {
		return FixedLabel(label), nil
	}
	if list, ok := strings.CutPrefix(s, "list:"); ok {
		if list == "" {
			return ListLabels(), nil
		}
		items := strings.Split(list, ",")
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		return ListLabels(items...), nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "true", "values", "value":
		return ValueLabels(), nil
	case "false", "none":
		return NoLabels(), nil
	}
	return LabelMode{}, errors.New(errors.ErrCodeInvalidConfiguration,
		"invalid label mode %q (must be one of: %s)", s, allowedLabelModes)
}

// MarshalText implements encoding.TextMarshaler.
func (m LabelMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler using ParseLabelMode.
func (m *LabelMode) UnmarshalText(b []byte) error {
	parsed, err := ParseLabelMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// FormatDelta formats a delta the way value labels show it: truncated toward
// zero and grouped by thousands.
func FormatDelta(delta float64) string {
	p := message.NewPrinter(language.English)
	t := math.Trunc(delta)
	if t >= math.MinInt64 && t < math.MaxInt64 {
		return p.Sprintf("%d", int64(t))
	}
	return p.Sprintf("%.0f", t)
}

// ResolveLabel returns the label of record i. It must not be called for
// NoLabels; list bounds are checked by ResolveLabels.
func ResolveLabel(mode LabelMode, i int, rec StepRecord) (string, error) {
	switch mode.kind {
	case LabelValues:
		return FormatDelta(rec.Delta), nil
	case LabelFixed:
		return mode.text, nil
	case LabelList:
		if i < 0 || i >= len(mode.items) {
			return "", errors.New(errors.ErrCodeShapeMismatch,
				"no label for bar %d: label list has %d entries", i+1, len(mode.items))
		}
		return mode.items[i], nil
	default:
		return "", errors.New(errors.ErrCodeInvalidConfiguration,
			"label mode %s does not produce labels (must be one of: %s)", mode.kind, allowedLabelModes)
	}
}

// ResolveLabels returns the label of every record, or nil when labels are
// disabled. A list mode must have exactly one entry per record.
func ResolveLabels(mode LabelMode, records []StepRecord) ([]string, error) {
	switch mode.kind {
	case LabelNone:
		return nil, nil
	case LabelList:
		if len(mode.items) != len(records) {
			return nil, errors.New(errors.ErrCodeShapeMismatch,
				"got %d bar labels for %d bars", len(mode.items), len(records))
		}
	}
	labels := make([]string, len(records))
	for i, rec := range records {
		l, err := ResolveLabel(mode, i, rec)
		if err != nil {
			return nil, err
		}
		labels[i] = l
	}
	return labels, nil
}
