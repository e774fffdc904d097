// Package sqlgen turns extracted row tuples into batched, transactional SQL
// insert scripts. It owns value sanitization, batch partitioning, part
// naming, and file output; it never talks to a database.
package sqlgen

import (
	"strconv"
	"strings"
	"time"

	stringpool "github.com/zenevan/sde2sql/pkg/strings"
)

// Row is one ordered value tuple. Its length and positional meaning match
// the column list of the table spec it was extracted for; nil marks NULL.
type Row []interface{}

// timestampLayout is the quoted form for time values.
const timestampLayout = "2006-01-02 15:04:05"

// Sanitize converts a value into its SQL literal text. Every input has a
// defined form; the function never fails. Embedded quotes are doubled,
// which is the single mechanism keeping untrusted text inside its literal.
func Sanitize(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		return "'" + v.Format(timestampLayout) + "'"
	case string:
		return quote(v)
	default:
		return quote(stringpool.Sprintf("%v", v))
	}
}

// quote doubles embedded quote characters and wraps s in single quotes.
func quote(s string) string {
	if !strings.ContainsRune(s, '\'') {
		return "'" + s + "'"
	}

	b := stringpool.GetBuilder(stringpool.Small)
	defer stringpool.PutBuilder(b, stringpool.Small)

	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			b.WriteByte('\'')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('\'')
	return stringpool.Clone(b.String())
}
