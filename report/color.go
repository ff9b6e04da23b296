package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soderasen-au/go-common/util"
	"github.com/xuri/excelize/v2"
)

type ARGBColor struct {
	A int `json:"a,omitempty" yaml:"a,omitempty"`
	R int `json:"r" yaml:"r"`
	G int `json:"g" yaml:"g"`
	B int `json:"b" yaml:"b"`
}

var PredefinedColorMap = map[string]*ARGBColor{
	"white":     {R: 255, G: 255, B: 255},
	"black":     {R: 0, G: 0, B: 0},
	"red":       {R: 128, G: 0, B: 0},
	"lightred":  {R: 255, G: 0, B: 0},
	"green":     {R: 0, G: 238, B: 0},
	"blue":      {R: 0, G: 0, B: 128},
	"lightblue": {R: 0, G: 0, B: 255},
	"lightgray": {R: 192, G: 192, B: 192},
	"darkgray":  {R: 128, G: 128, B: 128},
	"yellow":    {R: 255, G: 255, B: 0},
}

func (c ARGBColor) IsZero() bool {
	return c.A == 0 && c.R == 0 && c.G == 0 && c.B == 0
}

func (c ARGBColor) RGB() (int, int, int) {
	return c.R, c.G, c.B
}

func (c ARGBColor) HexCode() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c ARGBColor) Luminance() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255.0
}

// ContrastFont picks white text on a dark background and black on a light one.
func (c ARGBColor) ContrastFont() ARGBColor {
	if c.Luminance() > 0.5 {
		return ARGBColor{R: 0, G: 0, B: 0}
	}
	return ARGBColor{R: 255, G: 255, B: 255}
}

func (c ARGBColor) AssignBgStyle(excelStyle *excelize.Style) {
	excelStyle.Fill.Type = "pattern"
	excelStyle.Fill.Pattern = 1
	excelStyle.Fill.Color = []string{c.HexCode()}
	excelStyle.Font = &excelize.Font{Color: c.ContrastFont().HexCode()}
}

func (c ARGBColor) AssignFontStyle(excelStyle *excelize.Style) {
	excelStyle.Font = &excelize.Font{Color: c.HexCode()}
}

// NewARGBFromText parses "#RRGGBB", "RGB(r,g,b)", "ARGB(a,r,g,b)" or a
// predefined color name.
func NewARGBFromText(t string) (*ARGBColor, *util.Result) {
	t = strings.ToUpper(strings.ReplaceAll(t, " ", ""))

	if strings.HasPrefix(t, "#") {
		hex := t[1:]
		if len(hex) != 6 {
			return nil, util.MsgError("ParseColor", "hex color needs 6 digits")
		}
		r, err1 := strconv.ParseInt(hex[0:2], 16, 32)
		g, err2 := strconv.ParseInt(hex[2:4], 16, 32)
		b, err3 := strconv.ParseInt(hex[4:6], 16, 32)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, util.MsgError("ParseColor", "invalid hex color code")
		}
		return &ARGBColor{R: int(r), G: int(g), B: int(b)}, nil
	}

	if strings.HasPrefix(t, "ARGB(") && strings.HasSuffix(t, ")") {
		cv := strings.Split(t[5:len(t)-1], ",")
		if len(cv) != 4 {
			return nil, util.MsgError("ParseColor", "invalid color sections")
		}
		a, err0 := strconv.Atoi(cv[0])
		r, err1 := strconv.Atoi(cv[1])
		g, err2 := strconv.Atoi(cv[2])
		b, err3 := strconv.Atoi(cv[3])
		if err0 != nil || err1 != nil || err2 != nil || err3 != nil {
			return nil, util.MsgError("ParseColor", "invalid color code")
		}
		return &ARGBColor{A: a, R: r, G: g, B: b}, nil
	}

	if strings.HasPrefix(t, "RGB(") && strings.HasSuffix(t, ")") {
		cv := strings.Split(t[4:len(t)-1], ",")
		if len(cv) != 3 {
			return nil, util.MsgError("ParseColor", "invalid RGB color sections")
		}
		r, err1 := strconv.Atoi(cv[0])
		g, err2 := strconv.Atoi(cv[1])
		b, err3 := strconv.Atoi(cv[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, util.MsgError("ParseColor", "invalid color code")
		}
		return &ARGBColor{R: r, G: g, B: b}, nil
	}

	if argb, ok := PredefinedColorMap[strings.ToLower(t)]; ok {
		return argb, nil
	}

	return nil, util.MsgError("ParseColor", "unknown color: "+t)
}
