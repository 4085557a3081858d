// internal/style/shorthand.go
package style

import (
	"strconv"
	"strings"
)

// expandShorthands rewrites shorthand declarations into their longhands.
// A shorthand overwrites longhands declared in the same attribute.
func expandShorthands(styles map[string]string) {
	expandFlexShorthand(styles)
	expand1To4Shorthand(styles, "margin", "margin-top", "margin-right", "margin-bottom", "margin-left")
	expand1To4Shorthand(styles, "padding", "padding-top", "padding-right", "padding-bottom", "padding-left")
	expand1To4Shorthand(styles, "border-width", "border-top-width", "border-right-width", "border-bottom-width", "border-left-width")
	expand1To4Shorthand(styles, "inset", "top", "right", "bottom", "left")
	expandBorderShorthand(styles)
	expandGapShorthand(styles)
	expandGridLineShorthand(styles, "grid-column", "grid-column-start", "grid-column-end")
	expandGridLineShorthand(styles, "grid-row", "grid-row-start", "grid-row-end")
}

func expand1To4Shorthand(styles map[string]string, shorthand, top, right, bottom, left string) {
	val, ok := styles[shorthand]
	if !ok {
		return
	}
	parts := strings.Fields(val)
	switch len(parts) {
	case 1:
		styles[top], styles[right], styles[bottom], styles[left] = parts[0], parts[0], parts[0], parts[0]
	case 2:
		styles[top], styles[right], styles[bottom], styles[left] = parts[0], parts[1], parts[0], parts[1]
	case 3:
		styles[top], styles[right], styles[bottom], styles[left] = parts[0], parts[1], parts[2], parts[1]
	case 4:
		styles[top], styles[right], styles[bottom], styles[left] = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	delete(styles, shorthand)
}

// expandBorderShorthand only extracts the width component of `border`.
func expandBorderShorthand(styles map[string]string) {
	val, ok := styles["border"]
	if !ok {
		return
	}
	width := ""
	for _, part := range strings.Fields(val) {
		switch part {
		case "thin":
			width = "1px"
		case "medium":
			width = "3px"
		case "thick":
			width = "5px"
		case "none", "hidden":
			width = "0"
		default:
			if isLengthToken(part) {
				width = part
			}
		}
	}
	if width == "" {
		width = "3px"
	}
	for _, side := range []string{"top", "right", "bottom", "left"} {
		styles["border-"+side+"-width"] = width
	}
	delete(styles, "border")
}

func expandFlexShorthand(styles map[string]string) {
	flexVal, ok := styles["flex"]
	if !ok {
		return
	}
	grow, shrink, basis := "0", "1", "auto"
	parts := strings.Fields(flexVal)

	switch len(parts) {
	case 0:
		return
	case 1:
		switch parts[0] {
		case "none":
			grow, shrink, basis = "0", "0", "auto"
		case "auto":
			grow, shrink, basis = "1", "1", "auto"
		case "initial":
		default:
			if isNumberToken(parts[0]) {
				grow, basis = parts[0], "0"
			} else {
				grow, basis = "1", parts[0]
			}
		}
	case 2:
		grow = parts[0]
		if isNumberToken(parts[1]) {
			shrink, basis = parts[1], "0"
		} else {
			basis = parts[1]
		}
	default:
		grow, shrink, basis = parts[0], parts[1], parts[2]
	}

	styles["flex-grow"] = grow
	styles["flex-shrink"] = shrink
	styles["flex-basis"] = basis
	delete(styles, "flex")
}

// expandGapShorthand maps `gap: <row> [<column>]`.
func expandGapShorthand(styles map[string]string) {
	val, ok := styles["gap"]
	if !ok {
		return
	}
	parts := strings.Fields(val)
	switch len(parts) {
	case 1:
		styles["row-gap"], styles["column-gap"] = parts[0], parts[0]
	case 2:
		styles["row-gap"], styles["column-gap"] = parts[0], parts[1]
	default:
		return
	}
	delete(styles, "gap")
}

// expandGridLineShorthand maps `grid-column: <start> [/ <end>]`.
func expandGridLineShorthand(styles map[string]string, shorthand, start, end string) {
	val, ok := styles[shorthand]
	if !ok {
		return
	}
	parts := strings.SplitN(val, "/", 2)
	styles[start] = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		styles[end] = strings.TrimSpace(parts[1])
	}
	delete(styles, shorthand)
}

func isNumberToken(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isLengthToken(s string) bool {
	if isNumberToken(s) {
		return true
	}
	if strings.HasSuffix(s, "%") {
		return isNumberToken(strings.TrimSuffix(s, "%"))
	}
	_, ok := parseLength(s, Units{})
	return ok
}
