package mapfile

import (
	"strconv"
	"strings"

	"trenchcore/internal/brush"
)

// WriteMap serializes entities back into map-file text, the inverse of
// Parse, so that Parse(WriteMap(entities)) round-trips.
func WriteMap(entities []*Entity) []byte {
	var sb strings.Builder
	for _, e := range entities {
		writeEntity(&sb, e)
	}
	return []byte(sb.String())
}

func writeEntity(sb *strings.Builder, e *Entity) {
	sb.WriteString("{\n")
	for _, k := range sortedKeys(e.Properties) {
		sb.WriteString("\"" + k + "\" \"" + e.Properties[k] + "\"\n")
	}
	for _, b := range e.Brushes {
		writeBrush(sb, b)
	}
	sb.WriteString("}\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func writeBrush(sb *strings.Builder, b *Brush) {
	sb.WriteString("{\n")
	for _, f := range b.Faces {
		writeFace(sb, f)
	}
	sb.WriteString("}\n")
}

func writeFace(sb *strings.Builder, f Face) {
	writePoint(sb, f.P1)
	sb.WriteString(" ")
	writePoint(sb, f.P2)
	sb.WriteString(" ")
	writePoint(sb, f.P3)
	sb.WriteString(" " + f.Texture + " ")
	if f.Tex.Format == brush.FormatValve220 {
		writeValveAxis(sb, f.Tex.ValveXAxis, f.Tex.ValveXAxisOffset)
		sb.WriteString(" ")
		writeValveAxis(sb, f.Tex.ValveYAxis, f.Tex.ValveYAxisOffset)
		sb.WriteString(" " + num(f.Tex.Rotation) + " " + num(f.Tex.XScale) + " " + num(f.Tex.YScale) + "\n")
	} else {
		sb.WriteString(num(f.Tex.XOffset) + " " + num(f.Tex.YOffset) + " " + num(f.Tex.Rotation) + " " + num(f.Tex.XScale) + " " + num(f.Tex.YScale) + "\n")
	}
}

func writePoint(sb *strings.Builder, v [3]float64) {
	sb.WriteString("( " + num(v[0]) + " " + num(v[1]) + " " + num(v[2]) + " )")
}

func writeValveAxis(sb *strings.Builder, v [3]float64, off float64) {
	sb.WriteString("[ " + num(v[0]) + " " + num(v[1]) + " " + num(v[2]) + " " + num(off) + " ]")
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
