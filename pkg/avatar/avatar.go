// Package avatar generates a deterministic terminal avatar from a seed
// string: a mirrored 5x5 identicon and an initials badge sharing one color.
package avatar

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/zeebo/blake3"
)

// Size is the width and height of the identicon grid.
const Size = 5

var palette = []lipgloss.Color{
	"#E06C75", "#D19A66", "#E5C07B", "#98C379",
	"#56B6C2", "#61AFEF", "#C678DD", "#BE5046",
	"#7EC699", "#F08D49", "#6C8EBF", "#B48EAD",
}

// Avatar is the rendered identity of a seed.
type Avatar struct {
	Seed     string
	Initials string
	Color    lipgloss.Color
	Grid     [Size][Size]bool
}

// New derives an avatar from seed. Equal seeds always produce equal avatars.
func New(seed string) Avatar {
	sum := blake3.Sum256([]byte(seed))

	a := Avatar{
		Seed:     seed,
		Initials: Initials(seed),
		Color:    palette[int(sum[0])%len(palette)],
	}

	half := (Size + 1) / 2
	bit := 0
	for row := range Size {
		for col := range half {
			b := sum[1+bit/8]
			on := b&(1<<(bit%8)) != 0
			a.Grid[row][col] = on
			a.Grid[row][Size-1-col] = on
			bit++
		}
	}

	return a
}

// Initials returns up to two uppercase initials from the words of s, or "?"
// when s has no letters or digits.
func Initials(s string) string {
	var out []rune
	for _, word := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out = append(out, unicode.ToUpper([]rune(word)[0]))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// Identicon renders the grid as colored blocks, two columns per cell.
func (a Avatar) Identicon() string {
	on := lipgloss.NewStyle().Foreground(a.Color)

	var b strings.Builder
	for row := range Size {
		for col := range Size {
			if a.Grid[row][col] {
				b.WriteString(on.Render("██"))
			} else {
				b.WriteString("  ")
			}
		}
		if row < Size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Badge renders the initials on the avatar color.
func (a Avatar) Badge() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1E1E1E")).
		Background(a.Color).
		Padding(0, 1).
		Render(a.Initials)
}

// View renders the identicon with the badge beneath it.
func (a Avatar) View() string {
	return lipgloss.JoinVertical(lipgloss.Center, a.Identicon(), a.Badge())
}
