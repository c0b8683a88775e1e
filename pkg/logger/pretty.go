package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// ANSI sequences used by the pretty encoder. Colors come from the
// 256-color palette so the output survives most terminal emulators.
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiFaint = "\033[2m"

	colorTimestamp = "\033[38;5;245m"
	colorText      = "\033[38;5;252m"
	colorKey       = "\033[38;5;80m"
	colorWarnKey   = "\033[38;5;214m"
	colorWarnVal   = "\033[38;5;222m"
	colorErrorKey  = "\033[38;5;203m"
	colorErrorVal  = "\033[38;5;217m"

	fieldIndent = "  "
)

//nolint:gochecknoglobals // static palette shared by all encoder instances
var levelColors = map[zapcore.Level]string{
	zapcore.DebugLevel:  "\033[38;5;75m",
	zapcore.InfoLevel:   "\033[38;5;42m",
	zapcore.WarnLevel:   "\033[38;5;214m",
	zapcore.ErrorLevel:  "\033[38;5;203m",
	zapcore.DPanicLevel: "\033[38;5;199m",
	zapcore.PanicLevel:  "\033[38;5;199m",
	zapcore.FatalLevel:  "\033[38;5;201m",
}

var errNotObject = errors.New("logger: entry is not a JSON object")

// prettyEncoder re-renders zap's JSON output as a colorized header line
// followed by the remaining fields as indented JSON.
type prettyEncoder struct {
	zapcore.Encoder
}

// newPrettyLogger builds a terminal-oriented zap logger from cfg.
func newPrettyLogger(cfg *zap.Config) *zap.Logger {
	core := zapcore.NewCore(
		&prettyEncoder{Encoder: zapcore.NewJSONEncoder(cfg.EncoderConfig)},
		zapcore.AddSync(os.Stdout),
		cfg.Level,
	)
	return zap.New(core, zap.ErrorOutput(zapcore.AddSync(os.Stderr)))
}

// Clone keeps derived loggers on the pretty encoder.
func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{Encoder: e.Encoder.Clone()}
}

// EncodeEntry delegates to the JSON encoder and reshapes its output.
// Entries that cannot be parsed back are passed through unchanged.
func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}

	payload, parseErr := parseOrdered(bytes.TrimSpace(line.Bytes()))
	if parseErr != nil {
		return line, nil
	}

	var b strings.Builder
	writeHeader(&b, entry)
	writeFields(&b, contextFields(payload), entry.Level)

	line.Reset()
	if _, err := line.WriteString(b.String()); err != nil {
		return nil, err
	}
	return line, nil
}

// writeHeader renders the "[time] LEVEL message" line.
func writeHeader(b *strings.Builder, entry zapcore.Entry) {
	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	b.WriteString(ansiFaint + colorTimestamp + "[" + ts.Format(time.DateTime) + "]" + ansiReset)
	b.WriteByte(' ')
	b.WriteString(ansiBold + levelColor(entry.Level) + strings.ToUpper(entry.Level.String()) + ansiReset)
	if entry.Message != "" {
		b.WriteByte(' ')
		_, valColor := fieldPalette(entry.Level)
		b.WriteString(valColor + entry.Message + ansiReset)
	}
	b.WriteByte('\n')
}

// writeFields renders the non-reserved entry fields as an indented,
// colorized JSON object. Nothing is written when no fields remain.
func writeFields(b *strings.Builder, fields *orderedmap.OrderedMap[string, any], lvl zapcore.Level) {
	if fields.Len() == 0 {
		return
	}

	keyColor, valColor := fieldPalette(lvl)
	r := fieldRenderer{b: b, keyColor: keyColor, valColor: valColor}
	r.object(fields, 0)
	b.WriteByte('\n')
}

// contextFields strips the reserved header keys from the decoded payload.
func contextFields(payload *orderedmap.OrderedMap[string, any]) *orderedmap.OrderedMap[string, any] {
	fields := orderedmap.New[string, any]()
	for pair := payload.Oldest(); pair != nil; pair = pair.Next() {
		switch pair.Key {
		case timeKey, levelKey, messageKey:
		default:
			fields.Set(pair.Key, pair.Value)
		}
	}
	return fields
}

func levelColor(lvl zapcore.Level) string {
	if c, ok := levelColors[lvl]; ok {
		return c
	}
	return levelColors[zapcore.InfoLevel]
}

func fieldPalette(lvl zapcore.Level) (keyColor, valColor string) {
	switch {
	case lvl >= zapcore.ErrorLevel:
		return colorErrorKey, colorErrorVal
	case lvl == zapcore.WarnLevel:
		return colorWarnKey, colorWarnVal
	default:
		return colorKey, colorText
	}
}

// fieldRenderer writes ordered JSON values with per-token coloring.
type fieldRenderer struct {
	b        *strings.Builder
	keyColor string
	valColor string
}

func (r fieldRenderer) value(v any, depth int) {
	switch t := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		r.object(t, depth)
	case []any:
		r.list(t, depth)
	default:
		r.scalar(t)
	}
}

func (r fieldRenderer) object(om *orderedmap.OrderedMap[string, any], depth int) {
	if om.Len() == 0 {
		r.b.WriteString("{}")
		return
	}

	r.b.WriteString("{\n")
	first := true
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			r.b.WriteString(",\n")
		}
		first = false

		r.writeIndent(depth + 1)
		r.b.WriteString(r.keyColor + jsonToken(pair.Key) + ansiReset + ": ")
		r.value(pair.Value, depth+1)
	}
	r.b.WriteByte('\n')
	r.writeIndent(depth)
	r.b.WriteByte('}')
}

func (r fieldRenderer) list(items []any, depth int) {
	if len(items) == 0 {
		r.b.WriteString("[]")
		return
	}

	r.b.WriteString("[\n")
	for i, item := range items {
		if i > 0 {
			r.b.WriteString(",\n")
		}
		r.writeIndent(depth + 1)
		r.value(item, depth+1)
	}
	r.b.WriteByte('\n')
	r.writeIndent(depth)
	r.b.WriteByte(']')
}

func (r fieldRenderer) scalar(v any) {
	r.b.WriteString(ansiFaint + r.valColor + jsonToken(v) + ansiReset)
}

func (r fieldRenderer) writeIndent(depth int) {
	for range depth {
		r.b.WriteString(fieldIndent)
	}
}

// jsonToken renders a decoded scalar back to its JSON form.
func jsonToken(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
	return string(raw)
}

// parseOrdered decodes a JSON object preserving key order.
func parseOrdered(data []byte) (*orderedmap.OrderedMap[string, any], error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	return parseObject(dec)
}

func parseObject(dec *json.Decoder) (*orderedmap.OrderedMap[string, any], error) {
	om := orderedmap.New[string, any]()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		om.Set(key, val)
	}

	// Consume the closing brace.
	_, err := dec.Token()
	return om, err
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			return parseObject(dec)
		case '[':
			return parseList(dec)
		}
	}
	return tok, nil
}

func parseList(dec *json.Decoder) ([]any, error) {
	var items []any
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, val)
	}

	// Consume the closing bracket.
	_, err := dec.Token()
	return items, err
}
