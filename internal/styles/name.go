package styles

import (
	"errors"
	"fmt"
	"strings"
)

// Name identifies one of the fixed document styles.
type Name string

const (
	Modern   Name = "modern"
	Classic  Name = "classic"
	Colorful Name = "colorful"
	Business Name = "business"
)

var ErrUnknownStyle = errors.New("unknown style")

// Names lists every style in display order.
func Names() []Name {
	return []Name{Modern, Classic, Colorful, Business}
}

func ParseName(raw string) (Name, error) {
	name := Name(strings.ToLower(strings.TrimSpace(raw)))
	if !name.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, raw)
	}
	return name, nil
}

func (n Name) Valid() bool {
	switch n {
	case Modern, Classic, Colorful, Business:
		return true
	default:
		return false
	}
}

// FoldsBankInfo reports whether the style prints bank details inside the
// footer instead of a standalone bank section.
func (n Name) FoldsBankInfo() bool {
	return n == Colorful
}

type Description struct {
	Name        Name   `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Describe returns the human-readable title and summary of a style.
func Describe(n Name) Description {
	switch n {
	case Modern:
		return Description{Name: n, Title: "모던 & 미니멀", Description: "깔끔하고 현대적인 디자인. 파란색 포인트"}
	case Classic:
		return Description{Name: n, Title: "클래식 & 전문적", Description: "전통적이고 격식있는 디자인. 흑백 위주"}
	case Colorful:
		return Description{Name: n, Title: "컬러풀 & 창의적", Description: "밝고 친근한 디자인. 보라색 테마"}
	case Business:
		return Description{Name: n, Title: "비즈니스 & 공식적", Description: "전문적인 기업 스타일. 영문 혼용"}
	default:
		return Description{Name: n}
	}
}
