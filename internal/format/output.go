package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Write encodes v as json (default) or edn.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return writeJSON(w, v, pretty)
	case "edn":
		return writeEDN(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s (expected json|edn)", format)
	}
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// writeEDN round-trips v through JSON so struct tags decide key names, then
// prints maps as keyword maps and arrays as vectors.
func writeEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	var buf bytes.Buffer
	ednValue(&buf, x, pretty, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

func ednValue(buf *bytes.Buffer, v any, pretty bool, depth int) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case string:
		buf.WriteString(strconv.Quote(t))
	case float64:
		if t == float64(int64(t)) {
			buf.WriteString(strconv.FormatInt(int64(t), 10))
		} else {
			buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
		}
	case []any:
		buf.WriteByte('[')
		for i, it := range t {
			ednSep(buf, i, pretty, depth+1)
			ednValue(buf, it, pretty, depth+1)
		}
		ednClose(buf, len(t), pretty, depth)
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			ednSep(buf, i, pretty, depth+1)
			buf.WriteString(":" + strings.ReplaceAll(strings.TrimSpace(k), " ", "-") + " ")
			ednValue(buf, t[k], pretty, depth+1)
		}
		ednClose(buf, len(t), pretty, depth)
		buf.WriteByte('}')
	default:
		buf.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

func ednSep(buf *bytes.Buffer, i int, pretty bool, depth int) {
	switch {
	case pretty:
		buf.WriteString("\n" + strings.Repeat("  ", depth))
	case i > 0:
		buf.WriteByte(' ')
	}
}

func ednClose(buf *bytes.Buffer, n int, pretty bool, depth int) {
	if pretty && n > 0 {
		buf.WriteString("\n" + strings.Repeat("  ", depth))
	}
}
