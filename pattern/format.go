package pattern

import (
	"strconv"
	"strings"
)

// String renders the pattern as a parenthesized list of columns, each a
// parenthesized list of values.
func (p *Pattern) String() string {
	var builder strings.Builder
	builder.WriteByte('(')
	for x := 0; x < p.size; x++ {
		if x > 0 {
			builder.WriteString(", ")
		}
		writeValues(&builder, p.values[x*p.size:(x+1)*p.size])
	}
	builder.WriteByte(')')
	return builder.String()
}

// String renders the signature as a parenthesized list of values.
func (s Signature) String() string {
	var builder strings.Builder
	writeValues(&builder, s)
	return builder.String()
}

func writeValues(builder *strings.Builder, values []float32) {
	builder.WriteByte('(')
	for index, value := range values {
		if index > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(strconv.FormatFloat(float64(value), 'g', -1, 32))
	}
	builder.WriteByte(')')
}
