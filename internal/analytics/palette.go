package analytics

// DefaultPalette holds the chart colors for category segments.
var DefaultPalette = Palette{"#FFBB28", "#00C49F", "#FF8042", "#0088FE", "#FF0000", "#800080"}

// Palette assigns colors round-robin so the same category ordering always
// produces the same colors. No color repeats until the palette is exhausted.
type Palette []string

func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// Assign maps each key to a color following the order of keys.
func (p Palette) Assign(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	next := 0
	for _, k := range keys {
		if _, ok := out[k]; ok {
			continue
		}
		out[k] = p.Color(next)
		next++
	}
	return out
}
